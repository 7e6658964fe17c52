package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// market token:issue <email>
var tokenIssueCmd = &cobra.Command{
	Use:   "token:issue <email>",
	Short: "Print a bearer token for an existing user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := bootDB()
		if err != nil {
			return err
		}
		s := bootServices(db, nil)

		u, err := s.Users.FindByEmail(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		token, err := s.Tokens.Issue(u.Email)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}
