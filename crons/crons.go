package crons

import (
	"github.com/robfig/cron"
	"github.com/rs/zerolog/log"

	"gitlab.com/paramountdax-exchange/site_maintenance/config"
	"gitlab.com/paramountdax-exchange/site_maintenance/maintenance"
)

var cronService *cron.Cron

// Dependencies of the scheduled jobs
type Dependencies struct {
	Maintenance *maintenance.Service
	// Permissions returns the current role to permission mapping
	Permissions func() map[string][]string
}

// Start Initiate the crons based on the given configuration file
func Start(crons config.Crons, deps Dependencies) {
	cronService = cron.New()
	for id, schedule := range crons {
		callback := GetCronByID(id, deps)
		if err := cronService.AddFunc(schedule, callback); err != nil {
			log.Error().Err(err).Str("section", "crons").Str("cron", id).Str("schedule", schedule).Msg("Unable to schedule cron")
			continue
		}
		// call the caching functions at least once at startup to init caching
		callback()
	}
	cronService.Start()
}

// GetCronByID get a function to execute based on the id
func GetCronByID(id string, deps Dependencies) func() {
	switch id {
	case "update_auth_cache":
		return func() {
			CronUpdateAuthCache(deps.Permissions)
		}
	case "maintenance_sync":
		return func() {
			CronMaintenanceSync(deps.Maintenance)
		}
	}
	log.Warn().Str("section", "crons").Str("cron", id).Msg("Unknown cron id")
	return func() {}
}

// Close godoc
func Close() {
	if cronService != nil {
		cronService.Stop()
	}
}
