package controller

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "modepack.dev/pkg/modepack/internal/model"
)

// SimpleUI implements UI using cobra Command's output.
type SimpleUI struct {
	cmd *cobra.Command

	mu            sync.Mutex
	registrations []Registration
	lastLoading   string
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context, _ ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
}

// Wait blocks until the UI is closed (no-op for SimpleUI).
func (s *SimpleUI) Wait(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
	// SimpleUI doesn't block - it just prints and continues
}

// DisplayProgress prints the loading text whenever it changes.
func (s *SimpleUI) DisplayProgress(ctx context.Context, snapshot m.ProgressSnapshot) {
	if err := ctx.Err(); err != nil {
		return
	}

	text := strings.Join(LoadingLines(snapshot), "\n")

	s.mu.Lock()
	defer s.mu.Unlock()

	if text == s.lastLoading || text == "" {
		s.lastLoading = text
		return
	}

	s.lastLoading = text
	s.printf("%s\n", text)
}

// RegisterGamemode records the gamemode and prints a one-line notice.
func (s *SimpleUI) RegisterGamemode(ctx context.Context, gamemode m.Gamemode, category string, artPool []m.Sprite, author *string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.registrations = append(s.registrations, Registration{
		Gamemode: gamemode,
		Category: category,
		ArtPool:  artPool,
		Author:   author,
	})

	s.printf("Registered %q in %s by %s (%d levels)\n", gamemode.Name, category, authorLabel(author), gamemode.LevelCount())

	return nil
}

// Registrations returns the gamemodes registered so far.
func (s *SimpleUI) Registrations() []Registration {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]Registration(nil), s.registrations...)
}

// DisplaySummary prints one row per Source and the errors of failed ones.
func (s *SimpleUI) DisplaySummary(ctx context.Context, report m.ScanReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("\n%s", renderSummaryTable(report))

	for _, result := range report.Results {
		if result.Err != nil && result.Status == m.StatusFailed {
			s.printf("%s: %v\n", result.Source.Name, result.Err)
		}

		for _, warning := range result.Warnings {
			s.printf("%s: warning: %v\n", result.Source.Name, warning)
		}
	}

	return nil
}

// DisplaySources prints the classification and validation of each Source.
func (s *SimpleUI) DisplaySources(ctx context.Context, results []m.SourceResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("%s", renderSourcesTable(results))

	return nil
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

func renderSummaryTable(report m.ScanReport) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Source", "Kind", "Status", "Gamemode", "Warnings"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
	})

	for _, result := range report.Results {
		table.Append([]string{
			result.Source.Name,
			result.Kind.String(),
			result.Status.String(),
			orDash(result.Gamemode),
			fmt.Sprintf("%d", len(result.Warnings)),
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Sources %d", len(report.Results)),
		"",
		fmt.Sprintf("%d registered", report.Count(m.StatusRegistered)),
		fmt.Sprintf("%d failed", report.Count(m.StatusFailed)),
		fmt.Sprintf("%d skipped", report.Count(m.StatusSkipped)),
	})

	table.Render()

	return tableBuffer.String()
}

func renderSourcesTable(results []m.SourceResult) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Source", "Config", "Kind", "Status", "Detail"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)

	for _, result := range results {
		detail := result.Gamemode
		if result.Err != nil {
			detail = result.Err.Error()
		}

		table.Append([]string{
			result.Source.Name,
			string(result.Source.Config.FullPath),
			result.Kind.String(),
			result.Status.String(),
			orDash(detail),
		})
	}

	table.SetFooter([]string{fmt.Sprintf("Total Sources %d", len(results)), "", "", "", ""})
	table.Render()

	return tableBuffer.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}

	return s
}
