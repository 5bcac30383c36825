// Package cli wires the routegen commands to configuration, terminal output
// and the route generator. The cobra commands in cmd/routegen stay thin and
// call into this package.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/zoro11031/routegen/internal/config"
	"github.com/zoro11031/routegen/internal/generate"
	"github.com/zoro11031/routegen/internal/system"
	"github.com/zoro11031/routegen/internal/templates"
	"github.com/zoro11031/routegen/internal/ui"
)

// Options selects how a Context is built
type Options struct {
	ConfigPath     string
	NonInteractive bool
	Quiet          bool

	// Stdout and Stderr default to the process streams.
	Stdout io.Writer
	Stderr io.Writer
}

// Context holds all dependencies needed by a command
type Context struct {
	Config    *config.Config
	UI        *ui.UI
	FS        system.FileSystemManager
	Generator *generate.Generator
}

// NewContext creates a Context with all dependencies initialized
func NewContext(opts Options) *Context {
	// The settings file is read on first use, so a write with an explicit
	// target never touches it.
	cfg := config.New(opts.ConfigPath)

	stdout, stderr := opts.Stdout, opts.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	out := ui.NewWithWriters(stdout, stderr)
	out.SetNonInteractive(opts.NonInteractive)
	out.SetQuiet(opts.Quiet)

	fs := system.NewFileSystem()

	return &Context{
		Config:    cfg,
		UI:        out,
		FS:        fs,
		Generator: generate.New(fs, out),
	}
}

// ResolveTarget picks the route file to operate on: the flag value, then
// ROUTE_TARGET from the settings file, then the built-in default.
// An unreadable settings file is reported and the default is used.
func (ctx *Context) ResolveTarget(flagValue string) string {
	if v := strings.TrimSpace(flagValue); v != "" {
		return v
	}
	if err := ctx.Config.Load(); err != nil {
		ctx.UI.Warningf("Ignoring settings file %s: %v", ctx.Config.FilePath(), err)
		return templates.DefaultTarget
	}
	return ctx.Config.GetOrDefault(config.KeyRouteTarget, templates.DefaultTarget)
}

// loadConfig reads the settings file for commands that manage it
func (ctx *Context) loadConfig() error {
	if err := ctx.Config.Load(); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	return nil
}
