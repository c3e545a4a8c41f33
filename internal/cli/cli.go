package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	urfave "github.com/urfave/cli/v2"

	"github.com/specialistvlad/speechtimer/internal/app"
	"github.com/specialistvlad/speechtimer/internal/config"
	"github.com/specialistvlad/speechtimer/internal/ctxlog"
	"github.com/specialistvlad/speechtimer/internal/hcl"
	"github.com/specialistvlad/speechtimer/internal/preset"
)

// Exit codes.
const (
	ExitFailure = 1
	ExitUsage   = 2
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) error {
	return &ExitError{Code: ExitUsage, Message: fmt.Sprintf(format, args...)}
}

// Streams are the process's standard streams.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Run parses args, which include the program name, and executes the selected
// command.
func Run(ctx context.Context, args []string, s Streams) error {
	return New(s).RunContext(ctx, args)
}

// New builds the command-line application.
func New(s Streams) *urfave.App {
	return &urfave.App{
		Name:        "speechtimer",
		Usage:       "a green, yellow and red signal timer for speeches",
		UsageText:   "speechtimer [options] [command]",
		HideVersion: true,
		Writer:      s.Out,
		ErrWriter:   s.Err,
		Flags:       globalFlags(),
		Action: func(cctx *urfave.Context) error {
			return runTimer(cctx, s)
		},
		Commands: []*urfave.Command{
			presetsCmd(s),
			checkCmd(s),
			initCmd(s),
		},
		OnUsageError: func(_ *urfave.Context, err error, _ bool) error {
			return usageError("%v", err)
		},
		// Exit codes are handled by the caller, never by the library.
		ExitErrHandler: func(*urfave.Context, error) {},
	}
}

func globalFlags() []urfave.Flag {
	return []urfave.Flag{
		&urfave.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "path to the settings file (default ~/.speechtimer/config.yaml)",
			EnvVars: []string{"SPEECHTIMER_CONFIG"},
		},
		&urfave.StringFlag{
			Name:    "preset",
			Aliases: []string{"p"},
			Usage:   "preset selected at startup",
		},
		&urfave.StringFlag{
			Name:  "presets-path",
			Usage: "HCL preset library, a .hcl file or a directory of them",
		},
		&urfave.DurationFlag{
			Name:  "tick",
			Usage: "display refresh interval",
		},
		&urfave.BoolFlag{
			Name:  "sound",
			Usage: "play audio cues on signal changes",
		},
		&urfave.BoolFlag{
			Name:  "mute",
			Usage: "start with audio cues off, overrides --sound",
		},
		&urfave.Float64Flag{
			Name:  "volume",
			Usage: "cue volume as a power of two, -10 to 10",
		},
		&urfave.BoolFlag{
			Name:  "plain",
			Usage: "uncolored output, one line per change",
		},
		&urfave.StringFlag{
			Name:  "log-level",
			Usage: "logging level: 'debug', 'info', 'warn' or 'error'",
		},
		&urfave.StringFlag{
			Name:  "log-format",
			Usage: "log output format: 'text' or 'json'",
		},
		&urfave.IntFlag{
			Name:  "healthcheck-port",
			Usage: "port for the /health and /metrics server, 0 is disabled",
		},
	}
}

// settingsPath resolves the settings file location.
func settingsPath(cctx *urfave.Context) (string, error) {
	if p := cctx.String("config"); p != "" {
		return p, nil
	}
	return config.DefaultPath()
}

// buildConfig loads the settings file and applies flag overrides.
func buildConfig(cctx *urfave.Context) (*app.Config, error) {
	path, err := settingsPath(cctx)
	if err != nil {
		return nil, usageError("%v", err)
	}
	settings, err := config.Load(path)
	if err != nil {
		return nil, usageError("%v", err)
	}
	ctxlog.FromContext(cctx.Context).Debug("Settings loaded.", "path", path)

	cfg := app.ConfigFromSettings(settings)
	if cctx.IsSet("preset") {
		cfg.Preset = cctx.String("preset")
	}
	if cctx.IsSet("presets-path") {
		cfg.PresetsPath = cctx.String("presets-path")
	}
	if cctx.IsSet("tick") {
		cfg.TickInterval = cctx.Duration("tick")
	}
	if cctx.IsSet("sound") {
		cfg.Sound = cctx.Bool("sound")
	}
	if cctx.Bool("mute") {
		cfg.Sound = false
	}
	if cctx.IsSet("volume") {
		cfg.Volume = cctx.Float64("volume")
	}
	if cctx.IsSet("log-level") {
		cfg.LogLevel = cctx.String("log-level")
	}
	if cctx.IsSet("log-format") {
		cfg.LogFormat = cctx.String("log-format")
	}
	if cctx.IsSet("healthcheck-port") {
		cfg.HealthcheckPort = cctx.Int("healthcheck-port")
	}
	cfg.Plain = cctx.Bool("plain")
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)

	valid, err := app.NewConfig(cfg)
	if err != nil {
		return nil, usageError("%v", err)
	}
	return valid, nil
}

func newApp(cctx *urfave.Context, s Streams) (*app.App, error) {
	cfg, err := buildConfig(cctx)
	if err != nil {
		return nil, err
	}
	a, err := app.NewApp(s.Out, s.Err, cfg, hcl.NewLoader())
	if err != nil {
		return nil, usageError("%v", err)
	}
	return a, nil
}

func runTimer(cctx *urfave.Context, s Streams) error {
	if cctx.NArg() > 0 {
		return usageError("unknown command %q", cctx.Args().First())
	}
	a, err := newApp(cctx, s)
	if err != nil {
		return err
	}
	return a.Run(cctx.Context, s.In)
}

func presetsCmd(s Streams) *urfave.Command {
	return &urfave.Command{
		Name:  "presets",
		Usage: "list the built-in and library presets",
		Action: func(cctx *urfave.Context) error {
			a, err := newApp(cctx, s)
			if err != nil {
				return err
			}
			for i, p := range a.Presets() {
				if p.Description != "" {
					fmt.Fprintf(s.Out, "%d. %s - %s\n", i+1, p, p.Description)
					continue
				}
				fmt.Fprintf(s.Out, "%d. %s\n", i+1, p)
			}
			return nil
		},
	}
}

func checkCmd(s Streams) *urfave.Command {
	return &urfave.Command{
		Name:      "check",
		Usage:     "validate a custom preset",
		UsageText: "speechtimer check --green M:SS --yellow M:SS --red M:SS",
		Flags: []urfave.Flag{
			&urfave.StringFlag{Name: "green", Usage: "green threshold, M:SS or seconds", Required: true},
			&urfave.StringFlag{Name: "yellow", Usage: "yellow threshold, M:SS or seconds", Required: true},
			&urfave.StringFlag{Name: "red", Usage: "red threshold, M:SS or seconds", Required: true},
		},
		Action: func(cctx *urfave.Context) error {
			form, err := preset.FormFromThresholds(cctx.String("green"), cctx.String("yellow"), cctx.String("red"))
			if err != nil {
				return usageError("--%v", err)
			}
			p, err := form.Preset()
			if err != nil {
				return &ExitError{Code: ExitFailure, Message: err.Error()}
			}
			fmt.Fprintf(s.Out, "valid: %s\n", p)
			return nil
		},
	}
}

func initCmd(s Streams) *urfave.Command {
	return &urfave.Command{
		Name:  "init",
		Usage: "write a settings file with default values",
		Flags: []urfave.Flag{
			&urfave.BoolFlag{Name: "force", Usage: "overwrite an existing file"},
		},
		Action: func(cctx *urfave.Context) error {
			path, err := settingsPath(cctx)
			if err != nil {
				return usageError("%v", err)
			}
			if _, err := os.Stat(path); err == nil && !cctx.Bool("force") {
				return usageError("%s already exists, use --force to overwrite", path)
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}
			if err := config.Save(path, config.DefaultSettings()); err != nil {
				return err
			}
			fmt.Fprintf(s.Out, "wrote %s\n", path)
			return nil
		},
	}
}
