package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Window   WindowConfig   `mapstructure:"window"`
	Game     GameConfig     `mapstructure:"game"`
	Prefabs  PrefabsConfig  `mapstructure:"prefabs"`
	Steering SteeringConfig `mapstructure:"steering"`
	Log      LogConfig      `mapstructure:"log"`
}

type WindowConfig struct {
	Title  string `mapstructure:"title"`
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
}

type GameConfig struct {
	TPS   int    `mapstructure:"tps"`
	Arena string `mapstructure:"arena"`
	Debug bool   `mapstructure:"debug"`
	Seed  int64  `mapstructure:"seed"`
}

type PrefabsConfig struct {
	// Dir overrides the embedded prefabs when set.
	Dir   string `mapstructure:"dir"`
	Watch bool   `mapstructure:"watch"`
}

// SteeringConfig holds defaults for archetypes that leave steering fields
// unset.
type SteeringConfig struct {
	Interval   time.Duration `mapstructure:"interval"`
	Resolution int           `mapstructure:"resolution"`
	Selection  string        `mapstructure:"selection"`
}

type LogConfig struct {
	Development bool   `mapstructure:"development"`
	Level       string `mapstructure:"level"`
}

// Load reads config from the YAML file at path. An empty path yields the
// defaults. Every key can be overridden with an ARENA_ environment variable,
// e.g. ARENA_GAME_DEBUG=true.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("arena")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("window.title", "Arena")
	v.SetDefault("window.width", 800)
	v.SetDefault("window.height", 600)
	v.SetDefault("game.tps", 60)
	v.SetDefault("game.arena", "arena")
	v.SetDefault("game.debug", false)
	v.SetDefault("game.seed", 0)
	v.SetDefault("prefabs.dir", "")
	v.SetDefault("prefabs.watch", false)
	v.SetDefault("steering.interval", "100ms")
	v.SetDefault("steering.resolution", 12)
	v.SetDefault("steering.selection", "continuity")
	v.SetDefault("log.development", true)
	v.SetDefault("log.level", "info")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var ErrInvalidConfig = errors.New("config: invalid")

func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}
	if c.Game.TPS <= 0 {
		return fmt.Errorf("%w: tps %d", ErrInvalidConfig, c.Game.TPS)
	}
	if c.Game.Arena == "" {
		return fmt.Errorf("%w: no arena", ErrInvalidConfig)
	}
	if c.Steering.Resolution < 0 {
		return fmt.Errorf("%w: steering resolution %d", ErrInvalidConfig, c.Steering.Resolution)
	}
	return nil
}

// TickDelta is the fixed simulation step.
func (c *Config) TickDelta() time.Duration {
	return time.Second / time.Duration(c.Game.TPS)
}
