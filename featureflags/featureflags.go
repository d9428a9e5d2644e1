package featureflags

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/Unleash/unleash-client-go/v3"
	"github.com/rs/zerolog/log"
)

// Flags used by the service
const (
	// MaintenanceGate turns the request gate on. Switch it off to serve every request.
	MaintenanceGate = "maintenance.gate"
	// MaintenanceBackgroundSync enables the cron evaluating the schedule without traffic
	MaintenanceBackgroundSync = "maintenance.background-sync"
)

// Config structure
type Config struct {
	Enabled         bool
	URL             string `mapstructure:"url"`
	AppName         string `mapstructure:"app_name"`
	InstanceID      string `mapstructure:"instance_id"`
	Token           string
	RefreshInterval int `mapstructure:"refresh_interval"`
}

var initialized int32

type listener struct{}

func (listener) OnError(err error) {
	log.Error().Err(err).Str("lib", "unleash").Msg("Feature flags error")
}

func (listener) OnWarning(err error) {
	log.Warn().Err(err).Str("lib", "unleash").Msg("Feature flags warning")
}

func (listener) OnReady() {
	log.Info().Str("lib", "unleash").Msg("Feature flags ready")
}

// Initialize the unleash client. Nothing is started when the client is disabled.
func Initialize(cfg Config) error {
	if !cfg.Enabled {
		log.Info().Str("lib", "unleash").Msg("Feature flags disabled, using defaults")
		return nil
	}
	refresh := time.Duration(cfg.RefreshInterval) * time.Second
	if refresh <= 0 {
		refresh = 15 * time.Second
	}
	err := unleash.Initialize(
		unleash.WithListener(listener{}),
		unleash.WithAppName(cfg.AppName),
		unleash.WithInstanceId(cfg.InstanceID),
		unleash.WithUrl(cfg.URL),
		unleash.WithRefreshInterval(refresh),
		unleash.WithCustomHeaders(http.Header{"Authorization": {cfg.Token}}),
	)
	if err != nil {
		return err
	}
	atomic.StoreInt32(&initialized, 1)
	return nil
}

// IsEnabled checks a flag, false when the client is not running
func IsEnabled(name string, options ...unleash.FeatureOption) bool {
	if atomic.LoadInt32(&initialized) == 0 {
		return false
	}
	return unleash.IsEnabled(name, options...)
}

// IsEnabledOr checks a flag and returns fallback when it is unknown or the client is not running
func IsEnabledOr(name string, fallback bool) bool {
	if atomic.LoadInt32(&initialized) == 0 {
		return fallback
	}
	return unleash.IsEnabled(name, unleash.WithFallback(fallback))
}

// Close the unleash client
func Close() {
	if atomic.CompareAndSwapInt32(&initialized, 1, 0) {
		if err := unleash.Close(); err != nil {
			log.Error().Err(err).Str("lib", "unleash").Msg("Unable to close feature flags client")
		}
	}
}
