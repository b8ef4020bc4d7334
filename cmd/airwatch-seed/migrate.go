package main

import (
	"fmt"

	"airwatch/internal/platform/config"
	"airwatch/internal/platform/store"
	"airwatch/internal/platform/store/migrations"

	"github.com/spf13/cobra"
)

// migrateCommand groups schema commands
func migrateCommand(cfg config.Conf) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or inspect the embedded schema migrations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply every pending migration",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return migrations.Up(store.FromEnv(cfg).PG.URL)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Print the applied and latest schema versions",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			st, err := migrations.Status(store.FromEnv(cfg).PG.URL)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.OutOrStdout(), "version=%d latest=%d dirty=%t pending=%t\n", st.Version, st.Latest, st.Dirty, st.Pending())
			return nil
		},
	})

	return cmd
}
