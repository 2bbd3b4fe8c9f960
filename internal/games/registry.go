package games

import "github.com/Garsondee/mini-arcade/internal/arcade"

// Options gathers the settings of every game.
type Options struct {
	Harbor    HarborOptions    `mapstructure:"harbor"`
	Skirmish  SkirmishOptions  `mapstructure:"skirmish"`
	Starfield StarfieldOptions `mapstructure:"starfield"`
	Arena     ArenaOptions     `mapstructure:"arena"`
}

// DefaultOptions returns stock settings for all games.
func DefaultOptions() Options {
	return Options{
		Harbor:    DefaultHarborOptions(),
		Skirmish:  DefaultSkirmishOptions(),
		Starfield: DefaultStarfieldOptions(),
		Arena:     DefaultArenaOptions(),
	}
}

// Modules returns every game in menu order.
func Modules(o Options) []arcade.Module {
	return []arcade.Module{
		NewHarbor(o.Harbor),
		NewSkirmish(o.Skirmish),
		NewStarfield(o.Starfield),
		NewArena(o.Arena),
	}
}
