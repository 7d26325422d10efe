package synth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// ErrModelsUnavailable is returned while no pretrained models are
// provisioned. The neural path stays selectable so the rest of the
// pipeline keeps exercising the same interface it will use once the
// models exist.
var ErrModelsUnavailable = errors.New("neural reconstruction is disabled: pretrained models not available")

const reconstructScript = "reconstruct_sketch2mesh.py"

// Neural shells out to the sketch2mesh reconstruction script and picks
// up the OBJ it produces. It currently always fails because the model
// checkpoints are not provisioned, but the invocation, timeout and
// output-discovery contract are kept functional.
type Neural struct {
	logger    *slog.Logger
	scriptDir string
	timeout   time.Duration
}

// NewNeural creates the neural synthesizer. timeout bounds the external
// reconstruction process; zero means 5 minutes.
func NewNeural(logger *slog.Logger, scriptDir string, timeout time.Duration) *Neural {
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	return &Neural{
		logger:    logger,
		scriptDir: scriptDir,
		timeout:   timeout,
	}
}

func (n *Neural) Synthesize(ctx context.Context, req Request) error {
	script := filepath.Join(n.scriptDir, reconstructScript)
	if _, err := os.Stat(script); err != nil {
		n.logger.Error("Reconstruction script not found",
			slog.String("script", script),
		)
		return ErrModelsUnavailable
	}

	runDir, err := os.MkdirTemp("", "sketch2mesh-run-*")
	if err != nil {
		return fmt.Errorf("failed to create reconstruction dir: %w", err)
	}
	defer os.RemoveAll(runDir)

	runCtx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, "python", script,
		"--sketch", req.SketchPath,
		"--category", string(req.Category),
		"--style", string(req.Style),
		"--output", runDir,
	)
	cmd.Dir = n.scriptDir

	n.logger.Info("Running reconstruction",
		slog.String("command", strings.Join(cmd.Args, " ")),
		slog.Duration("timeout", n.timeout),
	)

	output, err := cmd.CombinedOutput()
	if err != nil {
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("reconstruction timed out after %s", n.timeout)
		}
		n.logger.Error("Reconstruction failed",
			slog.String("output", string(output)),
		)
		return fmt.Errorf("reconstruction process failed: %w", err)
	}

	objPath, err := findOBJFile(runDir)
	if err != nil {
		return fmt.Errorf("reconstruction produced no mesh: %w", err)
	}

	// OBJ-to-GLB conversion of reconstructed output is out of scope
	// until the models ship; surface the gap instead of guessing.
	return fmt.Errorf("cannot package reconstructed mesh %s: %w", objPath, ErrModelsUnavailable)
}

// findOBJFile returns the first .obj file in dir.
func findOBJFile(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read reconstruction dir: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".obj") {
			return filepath.Join(dir, entry.Name()), nil
		}
	}

	return "", fmt.Errorf("no obj file found in %s", dir)
}
