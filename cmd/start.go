package cmd

import (
	"github.com/rs/zerolog/log"

	"gitlab.com/paramountdax-exchange/site_maintenance/cmd/commands"
	"gitlab.com/paramountdax-exchange/site_maintenance/server"
	"gitlab.com/paramountdax-exchange/site_maintenance/settings"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(startCmd)
}

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the maintenance gate and the admin API",
	Long:  `Open the option storage and serve visitor requests, answering with the maintenance page while the site is in maintenance`,
	Run: func(cmd *cobra.Command, args []string) {
		// load server configuration from server
		log.Debug().Msg("Loading server configuration")
		cfg := loadConfig()
		if cfg.Storage.Driver == settings.DriverPostgres {
			log.Debug().Msg("Running migrations")
			commands.Migrate(cfg.Database)
		}

		// start a new server
		log.Debug().Str("section", "init").Msg("Starting new server instance")
		srv := server.NewServer(cfg)
		log.Info().Str("section", "init").Msg("Listening for incoming requests")
		srv.Listen()
	},
}
