// Package converter runs the sketch-to-mesh pipeline for each
// submitted conversion as detached background work.
package converter

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dnpham/sketch2mesh-be/internal/registry"
	"github.com/dnpham/sketch2mesh-be/internal/sketch"
	"github.com/dnpham/sketch2mesh-be/internal/synth"
)

// Progress checkpoints emitted on the way to a terminal state.
const (
	progressAccepted     = 10
	progressSynthesizing = 30
	progressDone         = 100
)

// Orchestrator dispatches one goroutine per conversion and owns that
// conversion's registry entry until it reaches a terminal state.
// Conversions are not cancellable once dispatched; shutdown joins
// in-flight work instead of abandoning it.
type Orchestrator struct {
	logger   *slog.Logger
	registry registry.Registry
	synth    synth.Synthesizer
	wg       sync.WaitGroup
}

// New creates an orchestrator.
func New(logger *slog.Logger, reg registry.Registry, s synth.Synthesizer) *Orchestrator {
	return &Orchestrator{
		logger:   logger,
		registry: reg,
		synth:    s,
	}
}

// Dispatch schedules the conversion pipeline for meshID and returns
// immediately. The registry entry for meshID must already exist.
func (o *Orchestrator) Dispatch(meshID, sketchPath string, category synth.Category, style synth.Style, outputPath string) {
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		o.run(meshID, sketchPath, category, style, outputPath)
	}()
}

// run executes the full pipeline for one conversion. Every failure,
// panics included, becomes a terminal failed state; nothing escapes
// the goroutine.
func (o *Orchestrator) run(meshID, sketchPath string, category synth.Category, style synth.Style, outputPath string) {
	// Detached work: submission has already returned, so the request
	// context is gone.
	ctx := context.Background()

	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("Conversion panicked",
				slog.String("mesh_id", meshID),
				slog.Any("panic", r),
			)
			o.fail(ctx, meshID, fmt.Sprintf("internal error: %v", r))
		}
	}()

	o.logger.Info("Processing conversion",
		slog.String("mesh_id", meshID),
		slog.String("category", string(category)),
	)

	o.setProgress(ctx, meshID, progressAccepted)

	stats, err := sketch.AnalyzeFile(sketchPath)
	if err != nil {
		o.logger.Error("Sketch analysis failed",
			slog.String("mesh_id", meshID),
			slog.String("error", err.Error()),
		)
		o.fail(ctx, meshID, err.Error())
		return
	}

	o.setProgress(ctx, meshID, progressSynthesizing)

	err = o.synth.Synthesize(ctx, synth.Request{
		SketchPath: sketchPath,
		Stats:      stats,
		Category:   category,
		Style:      style,
		OutputPath: outputPath,
	})
	if err != nil {
		o.logger.Error("Mesh synthesis failed",
			slog.String("mesh_id", meshID),
			slog.String("error", err.Error()),
		)
		o.fail(ctx, meshID, err.Error())
		return
	}

	if err := o.registry.Update(ctx, meshID, registry.Update{
		Status:   registry.String(registry.StatusCompleted),
		Progress: registry.Int(progressDone),
	}); err != nil {
		o.logger.Error("Failed to record conversion completion",
			slog.String("mesh_id", meshID),
			slog.String("error", err.Error()),
		)
		return
	}

	o.logger.Info("Conversion completed",
		slog.String("mesh_id", meshID),
		slog.String("output_path", outputPath),
	)
}

func (o *Orchestrator) setProgress(ctx context.Context, meshID string, progress int) {
	if err := o.registry.Update(ctx, meshID, registry.Update{Progress: registry.Int(progress)}); err != nil {
		o.logger.Warn("Failed to update conversion progress",
			slog.String("mesh_id", meshID),
			slog.Int("progress", progress),
			slog.String("error", err.Error()),
		)
	}
}

func (o *Orchestrator) fail(ctx context.Context, meshID, message string) {
	if err := o.registry.Update(ctx, meshID, registry.Update{
		Status: registry.String(registry.StatusFailed),
		Error:  registry.String(message),
	}); err != nil {
		o.logger.Error("Failed to record conversion failure",
			slog.String("mesh_id", meshID),
			slog.String("error", err.Error()),
		)
	}
}

// Shutdown waits for in-flight conversions to finish or the context to
// expire, whichever comes first.
func (o *Orchestrator) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		o.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("shutdown wait for in-flight conversions: %w", ctx.Err())
	}
}
