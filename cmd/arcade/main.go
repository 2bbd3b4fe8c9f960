package main

import (
	"flag"
	"io"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/mini-arcade/internal/arcade"
	"github.com/Garsondee/mini-arcade/internal/config"
	"github.com/Garsondee/mini-arcade/internal/games"
	"github.com/Garsondee/mini-arcade/internal/logging"
	"github.com/Garsondee/mini-arcade/internal/shell"
)

const feedCapacity = 40

func main() {
	var configDir string
	var module string

	flag.StringVar(&configDir, "config", ".", "directory holding arcade.yaml")
	flag.StringVar(&module, "module", "", "module to open instead of the remembered one")
	flag.Parse()

	cfg, err := config.Load(configDir)
	if err != nil {
		logging.New("info", os.Stderr, nil).Fatal().Err(err).Msg("config")
	}

	var logFile io.Writer
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			logging.New("info", os.Stderr, nil).Fatal().Err(err).Str("path", cfg.LogFile).Msg("log file")
		}
		defer f.Close()
		logFile = f
	}
	logger := logging.New(cfg.LogLevel, os.Stderr, logFile)

	gw, gh := shell.GameSize(cfg.Window.Width, cfg.Window.Height)
	surface := shell.NewSurface(gw, gh)
	overlay := &shell.Overlay{}
	feed := shell.NewFeed(feedCapacity)

	hostOpts := []arcade.HostOption{
		arcade.WithLogger(logger),
		arcade.WithEventFunc(func(e arcade.Event) {
			feed.Record(e)
			logger.Debug().Str("kind", string(e.Kind())).Msg(e.String())
		}),
	}
	if store, err := config.OpenState(cfg.StateFile); err != nil {
		logger.Warn().Err(err).Str("path", cfg.StateFile).Msg("state file unreadable, not remembering modules")
	} else {
		hostOpts = append(hostOpts, arcade.WithStateStore(store))
	}
	host := arcade.NewHost(surface, overlay, hostOpts...)

	mods := games.Modules(cfg.Options)
	order := make([]string, 0, len(mods))
	for _, m := range mods {
		host.Register(m)
		order = append(order, m.Name())
	}

	sh := shell.New(host, surface, overlay, feed, cfg.Window.Width, cfg.Window.Height, order,
		shell.WithLogger(logger),
		shell.WithTickRate(cfg.TickRate),
	)
	if module != "" {
		sh.Mount(module)
	} else if err := sh.Restore(cfg.StartModule); err != nil {
		logger.Error().Err(err).Str("module", cfg.StartModule).Msg("start module")
	}

	ebiten.SetWindowTitle("Mini Arcade")
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetFullscreen(cfg.Window.Fullscreen)
	ebiten.SetTPS(cfg.TickRate)
	err = ebiten.RunGame(sh)
	host.Unmount()
	if err != nil {
		logger.Fatal().Err(err).Msg("run")
	}
}
