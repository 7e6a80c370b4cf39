// Package config loads and watches the tintd configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/tintd/tintd/engine"
	"github.com/tintd/tintd/gamma"
	"github.com/tintd/tintd/solar"
)

// Preset is a named adjustment in the config file.
type Preset struct {
	Brightness float32 `mapstructure:"brightness"`
	Filter     string  `mapstructure:"filter"`
	Intensity  float32 `mapstructure:"intensity"`
}

// Adjustment converts the preset to an engine adjustment. Unknown filter
// names fall back to none.
func (p Preset) Adjustment() engine.Adjustment {
	f, err := gamma.ParseFilter(p.Filter)
	if err != nil {
		f = gamma.FilterNone
	}
	return engine.Adjustment{
		Brightness: gamma.Clamp(p.Brightness, gamma.MinBrightness, 1),
		Filter:     f,
		Intensity:  gamma.Clamp(p.Intensity, 0, 1),
	}
}

// Solar configures the automatic day/night schedule.
type Solar struct {
	Enabled        bool          `mapstructure:"enabled"`
	Latitude       float64       `mapstructure:"latitude"`
	Longitude      float64       `mapstructure:"longitude"`
	ElevationDay   float64       `mapstructure:"elevation-day"`
	ElevationNight float64       `mapstructure:"elevation-night"`
	Interval       time.Duration `mapstructure:"interval"`
	Day            Preset        `mapstructure:"day"`
	Night          Preset        `mapstructure:"night"`
}

// Params converts the solar section to schedule parameters.
func (s Solar) Params() solar.Params {
	return solar.Params{
		Latitude:       s.Latitude,
		Longitude:      s.Longitude,
		ElevationNight: s.ElevationNight,
		ElevationDay:   s.ElevationDay,
		Day:            s.Day.Adjustment(),
		Night:          s.Night.Adjustment(),
		Interval:       s.Interval,
	}
}

// Config is the daemon configuration.
type Config struct {
	Tick    time.Duration `mapstructure:"tick"`
	Display string        `mapstructure:"display"`
	Solar   Solar         `mapstructure:"solar"`
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "tintd", "tintd.yaml"), nil
}

// Load reads the config file at path, which may be absent (defaults apply).
// The returned viper instance is used for watching.
func Load(path string) (*Config, *viper.Viper, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("tick", engine.DefaultPeriod)
	v.SetDefault("display", "")
	v.SetDefault("solar.enabled", false)
	v.SetDefault("solar.elevation-day", solar.DefaultElevationDay)
	v.SetDefault("solar.elevation-night", solar.DefaultElevationNight)
	v.SetDefault("solar.interval", solar.DefaultInterval)
	v.SetDefault("solar.day.brightness", 1.0)
	v.SetDefault("solar.day.filter", "none")
	v.SetDefault("solar.day.intensity", 0.0)
	v.SetDefault("solar.night.brightness", 0.8)
	v.SetDefault("solar.night.filter", "orange")
	v.SetDefault("solar.night.intensity", 0.6)

	if err := v.ReadInConfig(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg, err := unmarshal(v)
	if err != nil {
		return nil, nil, err
	}
	return cfg, v, nil
}

// Watch re-reads the config whenever the file changes and calls onChange
// with the result. Parse failures keep the previous config.
func Watch(v *viper.Viper, onChange func(*Config)) {
	v.OnConfigChange(func(fsnotify.Event) {
		cfg, err := unmarshal(v)
		if err != nil {
			return
		}
		onChange(cfg)
	})
	v.WatchConfig()
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Solar.Enabled && cfg.Solar.ElevationNight >= cfg.Solar.ElevationDay {
		return nil, fmt.Errorf("solar: elevation-night must be smaller than elevation-day")
	}
	return &cfg, nil
}
