package app

import (
	"context"
	"errors"
	"io"
	"net"

	"golang.org/x/sync/errgroup"

	"github.com/specialistvlad/speechtimer/internal/console"
	"github.com/specialistvlad/speechtimer/internal/ctxlog"
)

// Run starts the event loop, reads console commands from in and serves the
// health check endpoint when enabled. It returns nil when the user quits or
// ctx is cancelled.
func (a *App) Run(ctx context.Context, in io.Reader) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	var ln net.Listener
	if a.config.HealthcheckPort > 0 {
		var err error
		if ln, err = a.listenHealthcheck(); err != nil {
			return err
		}
	} else {
		a.logger.Debug("Health check server not started: disabled")
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return a.loop.Run(gctx)
	})
	if ln != nil {
		g.Go(func() error {
			return a.serveHealthcheck(gctx, ln)
		})
	}

	a.loop.Post(a.engine.Refresh)
	a.terminal.Printf("Type h for help. Press enter to start or pause.")
	a.logger.Info("⏱️ Timer ready.", "preset", a.engine.Preset().Name)

	g.Go(func() error {
		return a.console.Run(gctx, in, a.loop)
	})

	err := g.Wait()
	switch {
	case errors.Is(err, console.ErrQuit):
		a.logger.Info("🏁 Quit requested.")
		err = nil
	case errors.Is(err, context.Canceled) && ctx.Err() != nil:
		a.logger.Info("🏁 Interrupted.")
		err = nil
	}

	a.logger.Debug("App.Run method finished.")
	return err
}
