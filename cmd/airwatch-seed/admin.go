package main

import (
	modkit "airwatch/internal/modkit"
	"airwatch/internal/modkit/module"
	"airwatch/internal/platform/config"
	"airwatch/internal/services/seed"

	authmod "airwatch/internal/services/api/auth/module"

	"github.com/spf13/cobra"
)

// adminCommand ensures the admin account named by SEED_ADMIN_* exists
func adminCommand(cfg config.Conf) *cobra.Command {
	return &cobra.Command{
		Use:   "admin",
		Short: "Create the admin account unless it already exists",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			ctx := c.Context()
			st, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeStore(st)

			auth := authmod.New(modkit.Deps{Cfg: cfg, PG: st.PG}, authmod.FromConfig(cfg))
			users := module.MustPortsOf[authmod.Ports](auth).Users
			_, err = seed.Admin(ctx, users, seed.AdminFromConfig(cfg))
			return err
		},
	}
}
