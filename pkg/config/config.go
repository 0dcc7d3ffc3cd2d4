// Package config loads the default board settings and log configuration
// for the gammactl batch host, the way
// junjiewwang-perf-analysis/pkg/config.Load does: an optional YAML file
// plus environment overrides via viper, falling back to sane defaults when
// no file is present.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Config holds gammactl's batch-host configuration. None of it is read by
// the gamma engine itself — the engine takes its width/height/players/max
// areas from the "B"/"I" command line, per spec.md §6. The board values are
// loaded and validated, but the batch host does not read them: a "B" line
// always supplies all four values itself. Log.Level sets the logger level.
type Config struct {
	Board BoardConfig `mapstructure:"board"`
	Log   LogConfig   `mapstructure:"log"`
}

// BoardConfig holds default board dimensions. No batch command reads them;
// a "B" line with a zero-valued field is rejected, not filled in from here.
type BoardConfig struct {
	Width    uint32 `mapstructure:"width"`
	Height   uint32 `mapstructure:"height"`
	Players  uint32 `mapstructure:"players"`
	MaxAreas uint32 `mapstructure:"max_areas"`
}

// LogConfig controls gammactl's leveled logger.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads configuration from configPath (searching the working
// directory and "./configs" when configPath is empty), falling back to
// defaults if no file is found, then applies GAMMA_-prefixed environment
// overrides.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("gammactl")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// no config file present; defaults stand
		} else if os.IsNotExist(err) {
			// explicit path doesn't exist; defaults stand
		} else {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix("GAMMA")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("board.width", 10)
	v.SetDefault("board.height", 10)
	v.SetDefault("board.players", 2)
	v.SetDefault("board.max_areas", 3)
	v.SetDefault("log.level", "info")
}

// Validate rejects configurations the engine could never build a board
// from (spec.md §4.1's constructor preconditions).
func (c *Config) Validate() error {
	if c.Board.Width == 0 || c.Board.Height == 0 {
		return fmt.Errorf("board width and height must be positive")
	}
	if c.Board.Players == 0 {
		return fmt.Errorf("board.players must be positive")
	}
	if c.Board.MaxAreas == 0 {
		return fmt.Errorf("board.max_areas must be positive")
	}
	return nil
}
