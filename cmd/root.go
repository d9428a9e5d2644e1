package cmd

import (
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	authCache "gitlab.com/paramountdax-exchange/site_maintenance/cache/auth"
	"gitlab.com/paramountdax-exchange/site_maintenance/config"
	"gitlab.com/paramountdax-exchange/site_maintenance/featureflags"
)

// LogLevel Flag
var LogLevel = "info"

// LogFormat Flag
var LogFormat = "json"
var cfgFile string

// flags that override a single configuration key
var configFlags = []struct {
	name  string
	key   string
	usage string
}{
	{"storage", "storage.driver", "option storage (options: memory|redis|postgres)"},
	{"site-name", "site.name", "site name used when the option store has none"},
	{"timezone", "site.timezone", "IANA timezone used when the option store has none"},
	{"upstream", "server.api.upstream", "site to forward allowed requests to"},
}

var rootCmd = &cobra.Command{
	Use:   "site_maintenance",
	Short: "Maintenance mode gate for a website",
	Long: `Answers visitor requests with a maintenance page while the site is in manual, scheduled or update maintenance.
	Operators manage the settings through the admin API or the activate, deactivate, enable, disable and status commands.`,
}

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	initLoggingEnv()
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is ./.config.yaml)")
	flags.StringVarP(&LogLevel, "log-level", "", LogLevel, "logging level to show (options: debug|info|warn|error|fatal|panic, default: info)")
	flags.StringVarP(&LogFormat, "log-format", "", LogFormat, "log format to generate (Options: json|pretty, default: json)")
	for _, f := range configFlags {
		flags.String(f.name, "", f.usage)
		if err := viper.BindPFlag(f.key, flags.Lookup(f.name)); err != nil {
			log.Fatal().Err(err).Str("section", "cmd").Str("flag", f.name).Msg("Unable to bind flag")
		}
	}
}

func initConfig() {
	config.OpenConfig(cfgFile)
	customizeLogger()
	cfg := loadConfig()
	if err := featureflags.Initialize(cfg.Unleash); err != nil {
		log.Fatal().Err(err).Str("lib", "unleash").Msg("Unable to init feature flags")
	}
}

// loadConfig decodes the configuration and seeds the permission cache from it
func loadConfig() config.Config {
	if viper.ConfigFileUsed() != "" {
		log.Debug().Str("section", "init").Str("path", viper.ConfigFileUsed()).Msg("Configuration file loaded")
	}
	cfg := config.LoadConfig(viper.GetViper())
	authCache.SetAll(authCache.FormatRolePermissions(cfg.Permissions))
	return cfg
}

func initLoggingEnv() {
	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		LogLevel = logLevel
	}
	if logFormat := os.Getenv("LOG_FORMAT"); logFormat != "" {
		LogFormat = logFormat
	}
}

// Execute the commands
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("Command failed")
	}
}

// parseLogLevel falls back to info for unknown names
func parseLogLevel(name string) zerolog.Level {
	name = strings.ToLower(strings.TrimSpace(name))
	level, err := zerolog.ParseLevel(name)
	if err != nil || name == "" {
		return zerolog.InfoLevel
	}
	return level
}

func customizeLogger() {
	if LogFormat == "pretty" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	level := parseLogLevel(LogLevel)
	zerolog.SetGlobalLevel(level)

	// gin debug output only follows debug logging
	if level == zerolog.DebugLevel {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
}
