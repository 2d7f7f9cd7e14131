// Package config loads the bot's settings from an optional funnel.json or
// funnel.yaml file and FUNNEL_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/eashang1/terminal-s8/recorder"
	"github.com/eashang1/terminal-s8/rules"
	"github.com/eashang1/terminal-s8/strategy"
)

// Config is the decoded settings tree.
type Config struct {
	LogLevel      string              `mapstructure:"logLevel"`
	LogFile       string              `mapstructure:"logFile"`
	Reinforcement ReinforcementConfig `mapstructure:"reinforcement"`
	Offense       OffenseConfig       `mapstructure:"offense"`
	Placement     PlacementConfig     `mapstructure:"placement"`
	Recorder      recorder.Config     `mapstructure:"recorder"`
}

type ReinforcementConfig struct {
	// HistoryLimit caps how many recent breaches are reinforced each turn.
	// 0 walks the whole history.
	HistoryLimit int `mapstructure:"historyLimit"`
}

type OffenseConfig struct {
	RouteThroughEstimator bool                 `mapstructure:"routeThroughEstimator"`
	DemolisherLine        DemolisherLineConfig `mapstructure:"demolisherLine"`
}

type DemolisherLineConfig struct {
	Enabled   bool `mapstructure:"enabled"`
	Threshold int  `mapstructure:"threshold"`
}

// PlacementConfig replaces the built-in build rules when Rules is non-empty.
type PlacementConfig struct {
	Rules []*rules.Rule `mapstructure:"rules"`
}

// Options converts the offense settings for the scheduler.
func (c OffenseConfig) Options() strategy.OffenseOptions {
	return strategy.OffenseOptions{
		RouteThroughEstimator: c.RouteThroughEstimator,
		DemolisherLine: strategy.DemolisherLineOptions{
			Enabled:   c.DemolisherLine.Enabled,
			Threshold: c.DemolisherLine.Threshold,
		},
	}
}

func setDefaults() {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logFile", "")

	viper.SetDefault("reinforcement.historyLimit", 0)

	viper.SetDefault("offense.routeThroughEstimator", false)
	viper.SetDefault("offense.demolisherLine.enabled", false)
	viper.SetDefault("offense.demolisherLine.threshold", 10)

	viper.SetDefault("recorder.enabled", false)
	viper.SetDefault("recorder.driver", "sqlite")
	viper.SetDefault("recorder.dsn", "funnel.db")
}

// Load reads funnel.{json,yaml,...} from the first of dirs that has one.
// A missing file is not an error; defaults and environment still apply.
func Load(dirs ...string) (Config, error) {
	setDefaults()

	viper.SetConfigName("funnel")
	for _, dir := range dirs {
		viper.AddConfigPath(dir)
	}
	viper.SetEnvPrefix("FUNNEL")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	err := viper.Unmarshal(&cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		coordinateHook(),
		mapstructure.TextUnmarshallerHookFunc(),
	)))
	if err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ConfigFile is the file Load read, or "" when none was found.
func ConfigFile() string {
	return viper.ConfigFileUsed()
}

func (c Config) validate() error {
	if c.Reinforcement.HistoryLimit < 0 {
		return fmt.Errorf("reinforcement.historyLimit must not be negative, got %d", c.Reinforcement.HistoryLimit)
	}
	for i, r := range c.Placement.Rules {
		if r == nil || r.Name == "" {
			return fmt.Errorf("placement.rules[%d]: name is required", i)
		}
		if len(r.Intents) == 0 {
			return fmt.Errorf("placement rule %q has no intents", r.Name)
		}
	}
	return nil
}
