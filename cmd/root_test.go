package cmd

import (
	"testing"

	"github.com/go-playground/assert/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		name string
		arg  string
		want zerolog.Level
	}{
		{name: "Debug", arg: "debug", want: zerolog.DebugLevel},
		{name: "Upper case warn", arg: "WARN", want: zerolog.WarnLevel},
		{name: "Error with spaces", arg: " error ", want: zerolog.ErrorLevel},
		{name: "Empty falls back to info", arg: "", want: zerolog.InfoLevel},
		{name: "Unknown falls back to info", arg: "verbose", want: zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLogLevel(tt.arg))
		})
	}
}

func TestConfigFlags(t *testing.T) {
	flags := rootCmd.PersistentFlags()
	for _, f := range configFlags {
		assert.NotEqual(t, nil, flags.Lookup(f.name))
	}

	assert.Equal(t, nil, flags.Set("storage", "redis"))
	assert.Equal(t, nil, flags.Set("timezone", "Europe/Warsaw"))
	assert.Equal(t, "redis", viper.GetString("storage.driver"))
	assert.Equal(t, "Europe/Warsaw", viper.GetString("site.timezone"))
}
