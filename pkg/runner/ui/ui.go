// Package ui launches the interactive trip planner.
package ui

import (
	"context"
	"errors"
	"os"

	"github.com/mattn/go-isatty"

	"tableflip.dev/trip/pkg/app"
	"tableflip.dev/trip/pkg/config"
	"tableflip.dev/trip/pkg/logging"
	teaui "tableflip.dev/trip/pkg/tui/app"
)

// ErrNoTerminal is returned when stdout is not a terminal.
var ErrNoTerminal = errors.New("ui: stdout is not a terminal")

type UI struct {
	Service *app.Service
	Config  *config.Config
}

func (u *UI) Do(ctx context.Context) error {
	if u.Service == nil || u.Config == nil {
		return errors.New("can not start ui, no service")
	}
	fd := os.Stdout.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return ErrNoTerminal
	}

	log, closer, err := logging.Open(u.Config.LogFile, u.Config.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	log.Info("starting ui", "path", u.Config.Path,
		"latency", u.Service.Latency, "fail_rate", u.Service.FailRate)
	err = teaui.Run(teaui.Options{
		Context: ctx,
		Service: u.Service,
		Logger:  log,
		Lower:   u.Config.BlockerLower,
		Upper:   u.Config.BlockerUpper,
	})
	if err != nil {
		log.Error("ui exited", "err", err)
	}
	return err
}
