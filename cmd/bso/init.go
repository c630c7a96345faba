package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/erazemk/bso/internal/db"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create or migrate the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := db.Migrate(a.cfg.DBPath); err != nil {
				return err
			}

			version, dirty, err := db.SchemaVersion(a.cfg.DBPath)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Database ready: %s\n", a.cfg.DBPath)
			fmt.Fprintf(cmd.OutOrStdout(), "Schema version: %d (dirty: %t)\n", version, dirty)
			return nil
		},
	}
}
