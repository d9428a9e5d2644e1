package cmd

import (
	"github.com/spf13/cobra"

	"gitlab.com/paramountdax-exchange/site_maintenance/cmd/commands"
)

func init() {
	rootCmd.AddCommand(migrateCmd)
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or upgrade the option table of the postgres storage",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		commands.Migrate(cfg.Database)
	},
}
