// Package controller provides the presentation layer content packs are
// registered with and scan progress is rendered to.
package controller

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "modepack.dev/pkg/modepack/internal/model"
)

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeScan StartMode = iota
	ModeList
)

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode StartMode
}

// WithScanMode sets the UI to render loading progress and a scan summary.
func WithScanMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeScan
	}
}

// WithListMode sets the UI to render a source listing.
func WithListMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeList
	}
}

func newStartConfig(options []StartOption) StartConfig {
	cfg := StartConfig{mode: ModeScan}
	for _, option := range options {
		option(&cfg)
	}

	return cfg
}

// Sink receives every successfully assembled Gamemode.
type Sink interface {
	RegisterGamemode(ctx context.Context, gamemode m.Gamemode, category string, artPool []m.Sprite, author *string) error
}

// UI defines the interface for rendering scan progress and results.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	Sink
	Start(ctx context.Context, options ...StartOption) error
	Close(ctx context.Context)
	Wait(ctx context.Context) // Wait for UI to finish (user closes it)
	DisplayProgress(ctx context.Context, snapshot m.ProgressSnapshot)
	DisplaySummary(ctx context.Context, report m.ScanReport) error
	DisplaySources(ctx context.Context, results []m.SourceResult) error
}

// NewUI picks the interactive TUI when tui is set and the command writes to a
// terminal, and the plain SimpleUI otherwise.
func NewUI(cmd *cobra.Command, tui bool) UI {
	if tui && IsTTY(cmd.OutOrStdout()) {
		return NewTUI(cmd.OutOrStdout())
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(f.Fd()))
}

// LoadingLines renders one "(i/N) phase: pct%" line per unfinished phase.
// i is the phase's registration position and N the expected phase count.
func LoadingLines(snapshot m.ProgressSnapshot) []string {
	if snapshot.Complete {
		return nil
	}

	lines := make([]string, 0, len(snapshot.Phases))

	for i, phase := range snapshot.Phases {
		if phase.Fraction >= 1 {
			continue
		}

		lines = append(lines, fmt.Sprintf("(%d/%d) %s: %.0f%%", i+1, snapshot.Expected, phase.Name, phase.Fraction*100))
	}

	return lines
}

// Registration is one Gamemode handed to the presentation layer.
type Registration struct {
	Gamemode m.Gamemode
	Category string
	ArtPool  []m.Sprite
	Author   *string
}

func authorLabel(author *string) string {
	if author == nil || *author == "" {
		return "-"
	}

	return *author
}
