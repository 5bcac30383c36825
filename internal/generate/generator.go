// Package generate writes the customer route handler into the invoice app and
// checks whether an existing route file still matches it.
package generate

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/zoro11031/routegen/internal/common"
	"github.com/zoro11031/routegen/internal/system"
	"github.com/zoro11031/routegen/internal/templates"
	"github.com/zoro11031/routegen/internal/ui"
)

// ErrCancelled is returned when the user declines to overwrite an existing file
var ErrCancelled = errors.New("write cancelled")

// WriteOptions tunes a single Write call
type WriteOptions struct {
	// Confirm asks before replacing a file that already exists.
	Confirm bool
}

// Status describes a route file relative to the embedded payload
type Status struct {
	Target   string
	Exists   bool
	UpToDate bool
	// FirstDiffLine is the 1-based line where the file first differs, 0 when identical or missing.
	FirstDiffLine int
}

// Generator writes the route payload through a FileSystemManager
type Generator struct {
	fs      system.FileSystemManager
	ui      *ui.UI
	payload []byte
}

// New creates a Generator for the customer route payload
func New(fs system.FileSystemManager, ui *ui.UI) *Generator {
	return NewWithPayload(fs, ui, templates.Payload())
}

// NewWithPayload creates a Generator for an arbitrary payload
func NewWithPayload(fs system.FileSystemManager, ui *ui.UI, payload []byte) *Generator {
	return &Generator{
		fs:      fs,
		ui:      ui,
		payload: payload,
	}
}

// Write overwrites target with the payload and prints the completion marker.
// The marker is printed only after the file has been written and closed.
func (g *Generator) Write(target string, opts WriteOptions) error {
	if err := common.ValidateRouteTarget(target); err != nil {
		return err
	}

	g.ui.Step("Writing Route Handler")
	g.ui.Infof("Target: %s", target)

	if opts.Confirm {
		exists, err := g.fs.FileExists(target)
		if err != nil {
			return err
		}
		if exists {
			g.ui.Warningf("%s already exists and will be replaced", target)
			confirm, err := g.ui.PromptYesNo("Overwrite it?", false)
			if err != nil {
				return err
			}
			if !confirm {
				return ErrCancelled
			}
		}
	}

	if err := g.fs.Overwrite(target, g.payload); err != nil {
		return fmt.Errorf("failed to write route file: %w", err)
	}

	g.ui.Successf("Wrote %d bytes to %s", len(g.payload), target)
	g.ui.Done()
	return nil
}

// Check compares target with the payload. A missing file is reported, not returned as an error.
func (g *Generator) Check(target string) (Status, error) {
	status := Status{Target: target}

	if err := common.ValidateRouteTarget(target); err != nil {
		return status, err
	}

	exists, err := g.fs.FileExists(target)
	if err != nil {
		return status, err
	}
	if !exists {
		return status, nil
	}
	status.Exists = true

	data, err := g.fs.ReadFile(target)
	if err != nil {
		return status, err
	}

	status.FirstDiffLine = firstDiffLine(data, g.payload)
	status.UpToDate = status.FirstDiffLine == 0
	return status, nil
}

// Show prints the payload to stdout
func (g *Generator) Show() error {
	if err := g.ui.Result(g.payload); err != nil {
		return fmt.Errorf("failed to print route payload: %w", err)
	}
	return nil
}

// firstDiffLine returns the 1-based line number where a and b diverge, or 0 if they are equal.
func firstDiffLine(a, b []byte) int {
	if bytes.Equal(a, b) {
		return 0
	}

	linesA := bytes.Split(a, []byte("\n"))
	linesB := bytes.Split(b, []byte("\n"))

	n := len(linesA)
	if len(linesB) < n {
		n = len(linesB)
	}
	for i := 0; i < n; i++ {
		if !bytes.Equal(linesA[i], linesB[i]) {
			return i + 1
		}
	}
	return n + 1
}
