package config

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"gitlab.com/paramountdax-exchange/site_maintenance/featureflags"
	"gitlab.com/paramountdax-exchange/site_maintenance/maintenance"
	"gitlab.com/paramountdax-exchange/site_maintenance/model"
	"gitlab.com/paramountdax-exchange/site_maintenance/monitor"
	"gitlab.com/paramountdax-exchange/site_maintenance/net/redis"
	"gitlab.com/paramountdax-exchange/site_maintenance/settings"
)

// Config structure
type Config struct {
	Server      ServerConfig
	Storage     settings.Config         `mapstructure:"storage"`
	Redis       redis.Config            `mapstructure:"redis"`
	Database    settings.DatabaseConfig `mapstructure:"database"`
	Site        SiteConfig              `mapstructure:"site"`
	Maintenance maintenance.Config      `mapstructure:"maintenance"`
	Permissions map[string][]string     `mapstructure:"permissions"`
	Crons       Crons                   `mapstructure:"crons"`
	Unleash     featureflags.Config     `mapstructure:"unleash"`
}

// ServerConfig structure
type ServerConfig struct {
	Monitoring monitor.Config `mapstructure:"monitoring"`
	API        APIConfig      `mapstructure:"api"`
	Admin      AdminConfig    `mapstructure:"admin"`
}

// APIConfig structure
type APIConfig struct {
	Port           int
	KeepAlive      bool     `mapstructure:"keep_alive"`
	Domain         string
	JWTTokenSecret string   `mapstructure:"jwt_token_secret"`
	CORSOrigins    []string `mapstructure:"cors_origins"`
	// site the allowed requests are forwarded to, empty to answer 204
	Upstream string
}

// AdminConfig structure
type AdminConfig struct {
	// networks allowed to reach the admin routes
	AllowedIPs string `mapstructure:"allowed_ips"`
}

// SiteConfig seeds the site options missing from the option store
type SiteConfig struct {
	Name      string
	Timezone  string
	GMTOffset *float64 `mapstructure:"gmt_offset"`
}

// Defaults converts the seed values into site settings
func (c SiteConfig) Defaults() model.SiteSettings {
	site := model.SiteSettings{Name: c.Name, Timezone: c.Timezone}
	if c.GMTOffset != nil {
		site.GMTOffset = *c.GMTOffset
		site.HasGMTOffset = true
	}
	return site
}

// Crons - mapping of ids to execution frequency
type Crons map[string]string

// LoadConfig Load server configuration from the yaml file
func LoadConfig(viperConf *viper.Viper) Config {
	var config Config

	err := viperConf.Unmarshal(&config)
	if err != nil {
		log.Fatal().Err(err).Msg("Unable to decode config into struct")
	}
	if len(config.Permissions) == 0 {
		config.Permissions = map[string][]string{
			model.Administrator.String(): {model.PermMaintenanceView, model.PermMaintenanceManage, model.PermUpdatesNotify},
		}
	}
	return config
}

// OpenConfig godoc
func OpenConfig(file string) {
	// Don't forget to read config either from cfgFile, from current directory or from home directory!
	if file != "" {
		// Use config file from the flag.
		viper.SetConfigFile(file)
	}

	viper.SetConfigType("yaml")
	viper.SetConfigName(".config")
	viper.AddConfigPath(".")                      // First try to load the config from the current directory
	viper.AddConfigPath("$HOME")                  // Then try to load it from the HOME directory
	viper.AddConfigPath("/etc/site_maintenance/") // As a last resort try to load it from /etc/
	viper.SetEnvPrefix("CFG")
	viper.AutomaticEnv()
	setDefaultVariables(viper.GetViper())

	err := viper.ReadInConfig() // Find and read the config file
	if err != nil {             // Handle errors reading the config file
		log.Fatal().Err(err).Msg("Unable to read configuration file")
	}
}

func setDefaultVariables(v *viper.Viper) {
	v.SetDefault("server.api.port", 8080)
	v.SetDefault("server.api.keep_alive", true)
	v.SetDefault("server.admin.allowed_ips", "127.0.0.1/32")
	v.SetDefault("server.monitoring.enabled", false)
	v.SetDefault("server.monitoring.port", "6060")
	v.SetDefault("storage.driver", settings.DriverMemory)
	v.SetDefault("storage.redis_key", settings.DefaultRedisKey)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.application_name", "site_maintenance")
	v.SetDefault("maintenance.retry_after", maintenance.DefaultRetryAfter)
	v.SetDefault("crons.update_auth_cache", "@every 1m")
	v.SetDefault("unleash.app_name", "site_maintenance")
	v.SetDefault("unleash.refresh_interval", 15)
}
