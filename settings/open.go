package settings

import (
	"github.com/rs/zerolog/log"

	"gitlab.com/paramountdax-exchange/site_maintenance/net/redis"
)

// Config selects and configures the option storage
type Config struct {
	Driver   string
	RedisKey string `mapstructure:"redis_key"`
}

// Open the store selected by the driver name
func Open(cfg Config, redisCfg redis.Config, dbCfg DatabaseConfig) (Store, error) {
	switch cfg.Driver {
	case "", DriverMemory:
		log.Warn().Str("section", "settings").Msg("Using in-memory option storage, options are lost on restart")
		return NewMemoryStore(), nil
	case DriverRedis:
		client := redis.NewClient(redisCfg)
		if err := client.Connect(); err != nil {
			return nil, err
		}
		return NewRedisStore(client, cfg.RedisKey), nil
	case DriverPostgres:
		return OpenPostgresStore(dbCfg)
	}
	return nil, UnsupportedDriverError{Driver: cfg.Driver}
}

// Close the store if it holds a connection
func Close(store Store) {
	closer, ok := store.(Closer)
	if !ok {
		return
	}
	if err := closer.Close(); err != nil {
		log.Error().Err(err).Str("section", "settings").Msg("Unable to close option storage")
	}
}
