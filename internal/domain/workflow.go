package domain

import (
	"context"
	"fmt"
	"log/slog"

	"modepack.dev/pkg/modepack/internal/controller"
	m "modepack.dev/pkg/modepack/internal/model"
)

// ListArgs contains the arguments for listing content packs.
type ListArgs struct {
	Roots []m.Path
}

// Workflow ties the pipeline to the presentation layer.
type Workflow interface {
	Scan(ctx context.Context, args ScanArgs) error
	List(ctx context.Context, args ListArgs) error
}

type workflow struct {
	Pipeline
	controller.UI
	progress *Progress
}

// NewWorkflow creates a Workflow that streams pipeline progress into ui.
func NewWorkflow(pipeline Pipeline, ui controller.UI, progress *Progress) Workflow {
	return &workflow{
		Pipeline: pipeline,
		UI:       ui,
		progress: progress,
	}
}

func (w *workflow) Scan(ctx context.Context, args ScanArgs) error {
	if err := w.Start(ctx, controller.WithScanMode()); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}

	updates := w.progress.Subscribe()
	forwarded := make(chan struct{})

	go func() {
		defer close(forwarded)

		for snapshot := range updates {
			w.DisplayProgress(ctx, snapshot)
		}
	}()

	report, scanErr := w.Pipeline.Scan(ctx, args)

	w.progress.Close()
	<-forwarded

	if scanErr != nil {
		w.Close(ctx)
		slog.Error("Scan interrupted", "error", scanErr)

		return scanErr
	}

	slog.Info("Scan finished",
		"registered", report.Count(m.StatusRegistered),
		"failed", report.Count(m.StatusFailed),
		"skipped", report.Count(m.StatusSkipped))

	if err := w.DisplaySummary(ctx, report); err != nil {
		w.Close(ctx)
		return fmt.Errorf("display summary: %w", err)
	}

	w.Wait(ctx)
	w.Close(ctx)

	return nil
}

func (w *workflow) List(ctx context.Context, args ListArgs) error {
	if err := w.Start(ctx, controller.WithListMode()); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}

	results, err := w.Inspect(ctx, args.Roots)
	if err != nil {
		w.Close(ctx)
		return fmt.Errorf("inspect sources: %w", err)
	}

	if err := w.DisplaySources(ctx, results); err != nil {
		w.Close(ctx)
		return fmt.Errorf("display sources: %w", err)
	}

	w.Wait(ctx)
	w.Close(ctx)

	return nil
}
