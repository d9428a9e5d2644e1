package cmd

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"gitlab.com/paramountdax-exchange/site_maintenance/maintenance"
	"gitlab.com/paramountdax-exchange/site_maintenance/model"
	"gitlab.com/paramountdax-exchange/site_maintenance/server"
	"gitlab.com/paramountdax-exchange/site_maintenance/settings"
)

func init() {
	rootCmd.AddCommand(activateCmd)
	rootCmd.AddCommand(deactivateCmd)
	rootCmd.AddCommand(enableCmd)
	rootCmd.AddCommand(disableCmd)
}

// withMaintenance opens the configured storage for the duration of fn
func withMaintenance(fn func(ctx context.Context, svc *maintenance.Service) error) {
	cfg := loadConfig()
	store, err := settings.Open(cfg.Storage, cfg.Redis, cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Str("section", "cmd").Msg("Unable to open settings store")
	}
	defer settings.Close(store)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := fn(ctx, server.NewMaintenance(cfg, store)); err != nil {
		log.Fatal().Err(err).Str("section", "cmd").Msg("Command failed")
	}
}

var activateCmd = &cobra.Command{
	Use:   "activate",
	Short: "Create the maintenance options with their default values",
	Long:  `Existing options are left untouched so running it again keeps the current settings`,
	Run: func(cmd *cobra.Command, args []string) {
		withMaintenance(func(ctx context.Context, svc *maintenance.Service) error {
			if err := svc.Repository().Activate(ctx); err != nil {
				return err
			}
			log.Info().Str("section", "cmd").Msg("Maintenance options created")
			return nil
		})
	},
}

var deactivateCmd = &cobra.Command{
	Use:   "deactivate",
	Short: "Remove every maintenance option from the storage",
	Run: func(cmd *cobra.Command, args []string) {
		withMaintenance(func(ctx context.Context, svc *maintenance.Service) error {
			if err := svc.Repository().Deactivate(ctx); err != nil {
				return err
			}
			log.Info().Str("section", "cmd").Msg("Maintenance options removed")
			return nil
		})
	},
}

var enableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Turn on manual maintenance mode",
	Run: func(cmd *cobra.Command, args []string) {
		setManual(true)
	},
}

var disableCmd = &cobra.Command{
	Use:   "disable",
	Short: "Turn off manual maintenance mode",
	Run: func(cmd *cobra.Command, args []string) {
		setManual(false)
	},
}

func setManual(enabled bool) {
	withMaintenance(func(ctx context.Context, svc *maintenance.Service) error {
		if err := svc.Repository().SetBool(ctx, model.OptionMaintenanceEnabled, enabled); err != nil {
			return err
		}
		log.Info().Str("section", "cmd").Bool("enabled", enabled).Msg("Manual maintenance mode updated")
		return nil
	})
}
