package crons

import (
	"github.com/rs/zerolog/log"

	cache "gitlab.com/paramountdax-exchange/site_maintenance/cache/auth"
)

// CronUpdateAuthCache godoc
func CronUpdateAuthCache(source func() map[string][]string) {
	if source == nil {
		return
	}
	permissions := source()
	if len(permissions) == 0 {
		log.Warn().Str("section", "cron:auth_cache").Msg("No role permissions configured, keeping cached values")
		return
	}
	cache.SetAll(cache.FormatRolePermissions(permissions))
	log.Debug().Str("section", "cron:auth_cache").Int("roles", len(permissions)).Msg("Role permissions cache updated")
}
