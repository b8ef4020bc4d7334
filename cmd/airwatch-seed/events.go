package main

import (
	"context"
	"fmt"
	"time"

	modkit "airwatch/internal/modkit"
	"airwatch/internal/modkit/module"
	"airwatch/internal/platform/config"
	"airwatch/internal/platform/logger"
	"airwatch/internal/platform/store"
	"airwatch/internal/services/seed"

	devicesmod "airwatch/internal/services/api/devices/module"
	eventsmod "airwatch/internal/services/api/events/module"

	"github.com/spf13/cobra"
)

// eventsCommand inserts random detection events spread over the past week
func eventsCommand(cfg config.Conf) *cobra.Command {
	var (
		count      int
		devices    []string
		newDevices int
		batch      int
	)

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Insert sample events for a set of devices",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			if count <= 0 {
				return fmt.Errorf("--count must be positive")
			}
			ctx := c.Context()
			st, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeStore(st)

			deps := modkit.Deps{Cfg: cfg, PG: st.PG}
			s := &seed.Seeder{
				DB:        st.PG,
				Events:    module.MustPortsOf[eventsmod.Ports](eventsmod.New(deps)).Events,
				Devices:   module.MustPortsOf[devicesmod.Ports](devicesmod.New(deps)).Devices,
				Gen:       seed.NewGenerator(uint64(time.Now().UnixNano())),
				BatchSize: batch,
			}
			ids := seed.Devices(devices, newDevices)
			n, err := s.Run(ctx, ids, count)
			if err != nil {
				return err
			}
			logger.C(ctx).Info().Int("events", n).Strs("devices", ids).Msg("events seeded")
			return nil
		},
	}

	cmd.Flags().IntVar(&count, "count", 50, "Total events to insert, split evenly across devices")
	cmd.Flags().StringSliceVar(&devices, "devices", []string{"R-1001", "R-1002", "R-1003"}, "Device ids to seed")
	cmd.Flags().IntVar(&newDevices, "new-devices", 0, "Extra devices with generated ids")
	cmd.Flags().IntVar(&batch, "batch", 10, "Events per transaction")

	return cmd
}

func openStore(ctx context.Context, cfg config.Conf) (*store.Store, error) {
	st, err := store.Open(ctx, store.FromEnv(cfg), store.WithLogger(*logger.Get()))
	if err != nil {
		return nil, err
	}
	if err := st.Guard(ctx); err != nil {
		_ = st.Close()
		return nil, err
	}
	return st, nil
}

func closeStore(st *store.Store) {
	if err := st.Close(); err != nil {
		logger.Get().Warn().Err(err).Msg("close store")
	}
}
