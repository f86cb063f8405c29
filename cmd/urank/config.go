package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config holds the runtime configuration of the urank command. Values are
// populated from .urank.toml, URANK_* env vars and CLI flags.
type Config struct {
	Damping      float64       `mapstructure:"damping"`
	Samples      int           `mapstructure:"samples"`
	Seed         int64         `mapstructure:"seed"`
	Threshold    float64       `mapstructure:"threshold"`
	Precision    int           `mapstructure:"precision"`
	MaxSweeps    int           `mapstructure:"max_sweeps"`
	Format       string        `mapstructure:"format"`
	Watch        bool          `mapstructure:"watch"`
	Interval     time.Duration `mapstructure:"interval"`
	ReadWorkers  int           `mapstructure:"read_workers"`
	SkipNoFollow bool          `mapstructure:"skip_nofollow"`
	Verbose      bool          `mapstructure:"verbose"`
}

func initConfig(cmd *cobra.Command, v *viper.Viper) error {
	if cfgFile, _ := cmd.Flags().GetString("config"); cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(".urank")
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	v.SetEnvPrefix("URANK")
	v.AutomaticEnv()

	// A missing default config file is fine; flags carry the defaults.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to load config: %w", err)
		}
	}

	return nil
}

func loadConfig(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to load config: %w", err)
	}

	return cfg, nil
}
