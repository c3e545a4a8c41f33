// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package console drives the engine from line-based keyboard commands.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/specialistvlad/speechtimer/internal/preset"
)

var (
	// ErrQuit is returned when the user asks to exit.
	ErrQuit = errors.New("quit requested")
	// ErrUnknownCommand wraps commands Parse could not resolve.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrUnknownPreset wraps preset names missing from the library.
	ErrUnknownPreset = errors.New("unknown preset")
	// ErrMissingArgument is returned when a command needs arguments.
	ErrMissingArgument = errors.New("missing argument")
	// ErrLoopStopped is returned when commands can no longer be executed.
	ErrLoopStopped = errors.New("console: loop stopped")
)

// Controller is the part of the engine the console drives.
type Controller interface {
	Start()
	Pause()
	Toggle()
	Reset()
	ToggleMute() bool
	SetPreset(preset.Preset) error
	RejectPreset(preset.Preset, error)
	Preset() preset.Preset
}

// Poster runs functions on the goroutine that owns the Controller.
type Poster interface {
	Post(fn func()) bool
}

// Printer shows messages to the user.
type Printer interface {
	Printf(format string, args ...any)
}

// Console maps commands onto a Controller.
type Console struct {
	ctl     Controller
	presets []preset.Preset
	out     Printer
	logger  *slog.Logger
}

// New creates a Console offering presets for selection.
func New(ctl Controller, presets []preset.Preset, out Printer, logger *slog.Logger) *Console {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Console{ctl: ctl, presets: presets, out: out, logger: logger}
}

// Execute runs one command. It must be called on the Controller's goroutine.
func (c *Console) Execute(cmd Command) error {
	switch cmd.Name {
	case CmdStart:
		c.ctl.Start()
	case CmdPause:
		c.ctl.Pause()
	case CmdToggle:
		c.ctl.Toggle()
	case CmdReset:
		c.ctl.Reset()
	case CmdMute:
		if c.ctl.ToggleMute() {
			c.out.Printf("Sound off")
		} else {
			c.out.Printf("Sound on")
		}
	case CmdList:
		c.list()
	case CmdPreset:
		return c.selectPreset(cmd.Args)
	case CmdCustom:
		return c.custom(cmd.Args)
	case CmdHelp:
		c.out.Printf("%s", helpText)
	case CmdQuit:
		return ErrQuit
	default:
		return fmt.Errorf("%w %q, type h for help", ErrUnknownCommand, cmd.Name)
	}
	return nil
}

func (c *Console) list() {
	active := c.ctl.Preset().Name
	for i, p := range c.presets {
		mark := " "
		if p.Name == active {
			mark = "*"
		}
		c.out.Printf("%s %d. %s", mark, i+1, p)
	}
	if _, ok := preset.Lookup(c.presets, active); !ok {
		c.out.Printf("* %s", c.ctl.Preset())
	}
}

// selectPreset accepts a preset name or its 1-based position in the list.
func (c *Console) selectPreset(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: preset name", ErrMissingArgument)
	}
	name := strings.Join(args, " ")

	p, ok := preset.Lookup(c.presets, name)
	if !ok {
		if n, err := strconv.Atoi(name); err == nil && n >= 1 && n <= len(c.presets) {
			p, ok = c.presets[n-1], true
		}
	}
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownPreset, name)
	}
	return c.ctl.SetPreset(p)
}

func (c *Console) custom(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: custom gm gs ym ys rm rs", ErrMissingArgument)
	}
	p, err := preset.FormFromFields(args).Preset()
	if err != nil {
		c.ctl.RejectPreset(preset.Preset{Name: preset.CustomName}, err)
		return err
	}
	if err := c.ctl.SetPreset(p); err != nil {
		return err
	}
	c.out.Printf("Custom preset: %s", p.Range())
	return nil
}

// Run reads commands from in and executes each on loop until the input ends,
// ctx is cancelled or the user quits. Command errors other than ErrQuit are
// printed and reading continues. Run returns nil at end of input.
func (c *Console) Run(ctx context.Context, in io.Reader, loop Poster) error {
	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := sc.Err(); err != nil {
			c.logger.Error("Failed to read console input.", "error", err)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				c.logger.Debug("Console input closed.")
				return nil
			}
			if err := c.dispatch(ctx, loop, Parse(line)); err != nil {
				return err
			}
		}
	}
}

// dispatch executes cmd on the loop and waits for it to finish.
func (c *Console) dispatch(ctx context.Context, loop Poster, cmd Command) error {
	result := make(chan error, 1)
	if !loop.Post(func() { result <- c.Execute(cmd) }) {
		if err := ctx.Err(); err != nil {
			return err
		}
		return ErrLoopStopped
	}

	var err error
	select {
	case err = <-result:
	case <-ctx.Done():
		return ctx.Err()
	}

	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrQuit):
		return ErrQuit
	default:
		c.logger.Debug("Command failed.", "command", cmd.Name, "error", err)
		c.out.Printf("%v", err)
		return nil
	}
}
