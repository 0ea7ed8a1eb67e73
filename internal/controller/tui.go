package controller

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	m "modepack.dev/pkg/modepack/internal/model"
)

const defaultBarWidth = 40

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
	phaseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	hintStyle  = lipgloss.NewStyle().Faint(true)
)

// TUI implements UI using Bubble Tea for interactive display.
type TUI struct {
	output io.Writer

	mu            sync.Mutex
	program       *tea.Program
	done          chan struct{}
	registrations []Registration
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// Start launches the Bubble Tea program in the background.
func (t *TUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cfg := newStartConfig(options)
	model := newScanModel(cfg.mode)

	if f, ok := t.output.(*os.File); ok {
		if width, height, err := term.GetSize(int(f.Fd())); err == nil {
			model = model.resize(width, height)
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.program = tea.NewProgram(model, tea.WithOutput(t.output), tea.WithContext(ctx))
	t.done = make(chan struct{})

	go func(program *tea.Program, done chan struct{}) {
		defer close(done)

		_, _ = program.Run()
	}(t.program, t.done)

	return nil
}

// Close stops the program and waits for it to restore the terminal.
func (t *TUI) Close(_ context.Context) {
	program, done := t.current()
	if program == nil {
		return
	}

	program.Quit()
	<-done
}

// Wait blocks until the user quits the program.
func (t *TUI) Wait(ctx context.Context) {
	_, done := t.current()
	if done == nil {
		return
	}

	select {
	case <-ctx.Done():
	case <-done:
	}
}

// DisplayProgress forwards a progress snapshot to the program.
func (t *TUI) DisplayProgress(_ context.Context, snapshot m.ProgressSnapshot) {
	t.send(progressMsg(snapshot))
}

// RegisterGamemode records the gamemode and lists it in the view.
func (t *TUI) RegisterGamemode(ctx context.Context, gamemode m.Gamemode, category string, artPool []m.Sprite, author *string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	registration := Registration{Gamemode: gamemode, Category: category, ArtPool: artPool, Author: author}

	t.mu.Lock()
	t.registrations = append(t.registrations, registration)
	t.mu.Unlock()

	t.send(registeredMsg(registration))

	return nil
}

// DisplaySummary switches the view to the scan summary.
func (t *TUI) DisplaySummary(ctx context.Context, report m.ScanReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t.send(summaryMsg(report))

	return nil
}

// DisplaySources switches the view to the source listing.
func (t *TUI) DisplaySources(ctx context.Context, results []m.SourceResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t.send(sourcesMsg(results))

	return nil
}

func (t *TUI) current() (*tea.Program, chan struct{}) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.program, t.done
}

func (t *TUI) send(msg tea.Msg) {
	program, _ := t.current()
	if program == nil {
		return
	}

	program.Send(msg)
}

type (
	progressMsg   m.ProgressSnapshot
	registeredMsg Registration
	summaryMsg    m.ScanReport
	sourcesMsg    []m.SourceResult
)

type scanModel struct {
	mode          StartMode
	bar           progress.Model
	snapshot      m.ProgressSnapshot
	registrations []Registration
	report        *m.ScanReport
	sources       []m.SourceResult
	width         int
	height        int
}

func newScanModel(mode StartMode) scanModel {
	return scanModel{
		mode: mode,
		bar:  progress.New(progress.WithDefaultGradient(), progress.WithWidth(defaultBarWidth)),
	}
}

func (sm scanModel) resize(width, height int) scanModel {
	sm.width = width
	sm.height = height

	if width > 4 {
		sm.bar.Width = min(width-4, 80)
	}

	return sm
}

func (sm scanModel) Init() tea.Cmd {
	return nil
}

func (sm scanModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return sm, tea.Quit
		}
	case tea.WindowSizeMsg:
		return sm.resize(msg.Width, msg.Height), nil
	case progressMsg:
		sm.snapshot = m.ProgressSnapshot(msg)
	case registeredMsg:
		sm.registrations = append(sm.registrations, Registration(msg))
	case summaryMsg:
		report := m.ScanReport(msg)
		sm.report = &report
	case sourcesMsg:
		sm.sources = []m.SourceResult(msg)
	}

	return sm, nil
}

func (sm scanModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("modepack"))
	b.WriteString("\n\n")

	switch {
	case sm.mode == ModeList:
		sm.renderSources(&b)
	case sm.report != nil:
		sm.renderRegistrations(&b)
		sm.renderSummary(&b)
	default:
		sm.renderLoading(&b)
		sm.renderRegistrations(&b)
	}

	return b.String()
}

func (sm scanModel) renderLoading(b *strings.Builder) {
	lines := LoadingLines(sm.snapshot)
	if len(lines) == 0 {
		return
	}

	for _, line := range lines {
		b.WriteString(phaseStyle.Render(line))
		b.WriteString("\n")
	}

	b.WriteString(sm.bar.ViewAs(sm.snapshot.Overall()))
	b.WriteString("\n\n")
}

func (sm scanModel) renderRegistrations(b *strings.Builder) {
	for _, registration := range sm.registrations {
		line := fmt.Sprintf("✓ %s [%s] by %s, %d levels",
			registration.Gamemode.Name,
			registration.Category,
			authorLabel(registration.Author),
			registration.Gamemode.LevelCount())
		b.WriteString(okStyle.Render(line))
		b.WriteString("\n")
	}
}

func (sm scanModel) renderSummary(b *strings.Builder) {
	b.WriteString("\n")
	b.WriteString(renderSummaryTable(*sm.report))

	for _, result := range sm.report.Results {
		if result.Status == m.StatusFailed && result.Err != nil {
			b.WriteString(failStyle.Render(fmt.Sprintf("✗ %s: %v", result.Source.Name, result.Err)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(hintStyle.Render("q: quit"))
	b.WriteString("\n")
}

func (sm scanModel) renderSources(b *strings.Builder) {
	if sm.sources == nil {
		b.WriteString(phaseStyle.Render("Inspecting sources..."))
		b.WriteString("\n")

		return
	}

	b.WriteString(renderSourcesTable(sm.sources))
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("q: quit"))
	b.WriteString("\n")
}
