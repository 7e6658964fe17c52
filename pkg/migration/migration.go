// Package migration runs and tracks schema migrations in batches.
//
// Migrations register themselves from init():
//
//	func init() {
//	    migration.Register("20260101000000_create_products_table", &CreateProductsTable{})
//	}
//
// and are applied from the CLI:
//
//	market migrate             // run all pending
//	market migrate:rollback    // roll back the last batch
//	market migrate:status
package migration

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/market/pkg/logger"
)

// Migration is one reversible schema change.
type Migration interface {
	Up(db *gorm.DB) error
	Down(db *gorm.DB) error
}

// Named pairs a migration with its timestamp-prefixed name.
type Named struct {
	Name      string
	Migration Migration
}

type record struct {
	ID    uint      `gorm:"primaryKey;autoIncrement"`
	Name  string    `gorm:"uniqueIndex;size:255;not null"`
	Batch int       `gorm:"not null"`
	RunAt time.Time `gorm:"autoCreateTime"`
}

func (record) TableName() string { return "market_migrations" }

var registry []Named

// Register adds a migration to the default set.
func Register(name string, m Migration) {
	registry = append(registry, Named{Name: name, Migration: m})
}

// Registered returns the default set sorted by name.
func Registered() []Named {
	out := make([]Named, len(registry))
	copy(out, registry)
	sortByName(out)
	return out
}

func sortByName(ms []Named) {
	sort.SliceStable(ms, func(i, j int) bool { return ms[i].Name < ms[j].Name })
}

// Runner executes and tracks migrations.
type Runner struct {
	db         *gorm.DB
	migrations []Named
	out        io.Writer
}

type Option func(*Runner)

// WithMigrations replaces the default set.
func WithMigrations(ms []Named) Option {
	return func(r *Runner) {
		r.migrations = append([]Named(nil), ms...)
		sortByName(r.migrations)
	}
}

// WithOutput sends progress lines to w instead of stdout.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) { r.out = w }
}

func New(db *gorm.DB, opts ...Option) *Runner {
	r := &Runner{db: db, migrations: Registered(), out: os.Stdout}
	for _, o := range opts {
		o(r)
	}
	return r
}

func (r *Runner) ensureTable() error {
	if err := r.db.AutoMigrate(&record{}); err != nil {
		return fmt.Errorf("migration: ensure table: %w", err)
	}
	return nil
}

func (r *Runner) ran() (map[string]record, error) {
	var rows []record
	if err := r.db.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]record, len(rows))
	for _, rec := range rows {
		out[rec.Name] = rec
	}
	return out, nil
}

// Pending returns the migrations that have not run yet, in name order.
func (r *Runner) Pending() ([]Named, error) {
	if err := r.ensureTable(); err != nil {
		return nil, err
	}
	ran, err := r.ran()
	if err != nil {
		return nil, err
	}
	var pending []Named
	for _, m := range r.migrations {
		if _, ok := ran[m.Name]; !ok {
			pending = append(pending, m)
		}
	}
	return pending, nil
}

// Run applies every pending migration as one new batch. It returns the
// number applied.
func (r *Runner) Run() (int, error) {
	pending, err := r.Pending()
	if err != nil {
		return 0, fmt.Errorf("migration: fetch pending: %w", err)
	}
	if len(pending) == 0 {
		fmt.Fprintln(r.out, "Nothing to migrate.")
		return 0, nil
	}

	batch, err := r.lastBatch()
	if err != nil {
		return 0, err
	}
	batch++

	for i, m := range pending {
		logger.Info("migration: running", "name", m.Name, "batch", batch)
		if err := m.Migration.Up(r.db); err != nil {
			return i, fmt.Errorf("migration: %s up: %w", m.Name, err)
		}
		if err := r.db.Create(&record{Name: m.Name, Batch: batch}).Error; err != nil {
			return i, fmt.Errorf("migration: record %s: %w", m.Name, err)
		}
		fmt.Fprintf(r.out, "Migrated:    %s\n", m.Name)
	}
	return len(pending), nil
}

// Rollback reverses the most recent batch, newest first. It returns the
// number rolled back.
func (r *Runner) Rollback() (int, error) {
	if err := r.ensureTable(); err != nil {
		return 0, err
	}
	batch, err := r.lastBatch()
	if err != nil {
		return 0, err
	}
	if batch == 0 {
		fmt.Fprintln(r.out, "Nothing to roll back.")
		return 0, nil
	}

	var rows []record
	if err := r.db.Where("batch = ?", batch).Order("id desc").Find(&rows).Error; err != nil {
		return 0, err
	}

	known := make(map[string]Migration, len(r.migrations))
	for _, m := range r.migrations {
		known[m.Name] = m.Migration
	}

	for i, rec := range rows {
		m, ok := known[rec.Name]
		if !ok {
			return i, fmt.Errorf("migration: cannot roll back %s: not registered", rec.Name)
		}
		logger.Info("migration: rolling back", "name", rec.Name, "batch", batch)
		if err := m.Down(r.db); err != nil {
			return i, fmt.Errorf("migration: %s down: %w", rec.Name, err)
		}
		if err := r.db.Delete(&rec).Error; err != nil {
			return i, err
		}
		fmt.Fprintf(r.out, "Rolled back: %s\n", rec.Name)
	}
	return len(rows), nil
}

// State is one line of Status.
type State struct {
	Name  string
	Ran   bool
	Batch int
}

// Status lists every known migration and whether it has run.
func (r *Runner) Status() ([]State, error) {
	if err := r.ensureTable(); err != nil {
		return nil, err
	}
	ran, err := r.ran()
	if err != nil {
		return nil, err
	}
	states := make([]State, 0, len(r.migrations))
	for _, m := range r.migrations {
		rec, ok := ran[m.Name]
		states = append(states, State{Name: m.Name, Ran: ok, Batch: rec.Batch})
	}
	return states, nil
}

// PrintStatus writes Status as a table.
func (r *Runner) PrintStatus() error {
	states, err := r.Status()
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "%-56s  %-8s  %s\n", "Migration", "Status", "Batch")
	for _, s := range states {
		if s.Ran {
			fmt.Fprintf(r.out, "%-56s  %-8s  %d\n", s.Name, "Ran", s.Batch)
		} else {
			fmt.Fprintf(r.out, "%-56s  %-8s  -\n", s.Name, "Pending")
		}
	}
	return nil
}

func (r *Runner) lastBatch() (int, error) {
	var last struct{ Max int }
	if err := r.db.Model(&record{}).Select("COALESCE(MAX(batch), 0) AS max").Scan(&last).Error; err != nil {
		return 0, fmt.Errorf("migration: last batch: %w", err)
	}
	return last.Max, nil
}
