// Package migrations holds the market schema, one migration per table.
// Importing it registers them with pkg/migration.
package migrations
