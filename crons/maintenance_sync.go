package crons

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"gitlab.com/paramountdax-exchange/site_maintenance/featureflags"
	"gitlab.com/paramountdax-exchange/site_maintenance/maintenance"
)

// CronMaintenanceSync evaluates the schedule so transitions happen without traffic
func CronMaintenanceSync(svc *maintenance.Service) {
	// on by default, the flag only switches a configured cron off
	if svc == nil || !featureflags.IsEnabledOr(featureflags.MaintenanceBackgroundSync, true) {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ev, err := svc.Check(ctx)
	if err != nil {
		log.Error().Err(err).Str("section", "cron:maintenance_sync").Msg("Unable to evaluate maintenance state")
		return
	}
	if len(ev.Mutations) > 0 {
		log.Info().
			Str("section", "cron:maintenance_sync").
			Bool("active", ev.Decision.Active).
			Str("reason", ev.Decision.Reason.String()).
			Bool("completed", ev.Decision.Completed).
			Msg("Maintenance schedule transition applied")
	}
}
