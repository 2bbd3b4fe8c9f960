// Package config loads arcade.yaml and keeps the small amount of state the
// arcade remembers between runs.
package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/Garsondee/mini-arcade/internal/games"
	"github.com/Garsondee/mini-arcade/internal/shell"
	"github.com/Garsondee/mini-arcade/internal/wave"
)

// FileName is the config file Load looks for.
const FileName = "arcade"

// ErrInvalid marks a config that parsed but cannot be used.
var ErrInvalid = errors.New("invalid config")

// Window holds the desktop window settings.
type Window struct {
	Width      int  `mapstructure:"width"`
	Height     int  `mapstructure:"height"`
	Fullscreen bool `mapstructure:"fullscreen"`
}

// Config is the whole arcade configuration. Game sections sit at the top
// level: harbor, skirmish, starfield, arena.
type Config struct {
	LogLevel    string `mapstructure:"logLevel"`
	LogFile     string `mapstructure:"logFile"` // optional copy of the log
	Window      Window `mapstructure:"window"`
	TickRate    int    `mapstructure:"tickRate"`
	StartModule string `mapstructure:"startModule"`
	StateFile   string `mapstructure:"stateFile"`

	games.Options `mapstructure:",squash"`
}

func setDefaults() {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logFile", "")
	viper.SetDefault("window.width", 960)
	viper.SetDefault("window.height", 640)
	viper.SetDefault("window.fullscreen", false)
	viper.SetDefault("tickRate", 60)
	viper.SetDefault("startModule", games.HarborName)
	viper.SetDefault("stateFile", "arcade-state.yaml")

	d := games.DefaultOptions()
	viper.SetDefault("harbor.buoys", d.Harbor.Buoys)
	viper.SetDefault("skirmish.units", d.Skirmish.Units)
	viper.SetDefault("starfield.stars", d.Starfield.Stars)
	viper.SetDefault("arena.targets", d.Arena.Targets)
}

// Load reads arcade.yaml from configDir on top of the defaults. A missing
// file is not an error; a malformed one is. Relative state file paths are
// resolved against configDir, as is the log file.
func Load(configDir string) (Config, error) {
	setDefaults()
	viper.SetConfigName(FileName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configDir)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := Config{Options: games.DefaultOptions()}
	if viper.IsSet("harbor.waves") {
		// A configured swell replaces the default one outright.
		cfg.Harbor.Waves = nil
	}
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	cfg.StateFile = resolve(configDir, cfg.StateFile)
	cfg.LogFile = resolve(configDir, cfg.LogFile)
	return cfg, nil
}

func resolve(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

func (c Config) validate() error {
	switch {
	case c.Window.Width <= shell.FeedPanelWidth || c.Window.Height <= 0:
		return fmt.Errorf("%w: window %dx%d leaves no room for a game beside the %dpx feed",
			ErrInvalid, c.Window.Width, c.Window.Height, shell.FeedPanelWidth)
	case c.TickRate <= 0:
		return fmt.Errorf("%w: tickRate %d", ErrInvalid, c.TickRate)
	case c.Skirmish.Units < 0 || c.Starfield.Stars < 0 || c.Arena.Targets < 0 || c.Harbor.Buoys < 0:
		return fmt.Errorf("%w: negative entity count", ErrInvalid)
	}
	if _, err := wave.NewField(c.Harbor.Waves...); err != nil {
		return fmt.Errorf("%w: harbor.waves: %w", ErrInvalid, err)
	}
	if err := c.Harbor.Boat.Validate(); err != nil {
		return fmt.Errorf("%w: harbor.boat: %w", ErrInvalid, err)
	}
	if err := c.Skirmish.World.Validate(); err != nil {
		return fmt.Errorf("%w: skirmish.world: %w", ErrInvalid, err)
	}
	return nil
}
