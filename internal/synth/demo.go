package synth

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/dnpham/sketch2mesh-be/internal/mesh"
	"github.com/dnpham/sketch2mesh-be/internal/sketch"
)

// Demo synthesizes simple parametric shapes from sketch statistics.
// It stands in for real sketch2mesh inference until pretrained models
// are available.
type Demo struct {
	logger *slog.Logger
}

// NewDemo creates the demo synthesizer.
func NewDemo(logger *slog.Logger) *Demo {
	return &Demo{logger: logger}
}

func (d *Demo) Synthesize(_ context.Context, req Request) error {
	d.logger.Info("Generating demo mesh",
		slog.String("category", string(req.Category)),
		slog.Float64("coverage", req.Stats.Coverage),
		slog.Float64("aspect_ratio", req.Stats.AspectRatio),
	)

	var shape *mesh.Mesh
	switch req.Category {
	case CategoryCars:
		shape = carMesh(req.Stats)
	case CategoryChairs:
		shape = chairMesh(req.Stats)
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidCategory, req.Category)
	}

	// More ink drawn implies a larger object. This is the only place
	// sketch content scales the finished shape.
	shape.Scale(scaleFactor(req.Stats.Coverage))

	if err := mesh.SaveGLB(shape, req.OutputPath); err != nil {
		return fmt.Errorf("failed to export mesh: %w", err)
	}

	d.logger.Info("Demo mesh written",
		slog.String("output_path", req.OutputPath),
		slog.Int("vertices", len(shape.Vertices)),
		slog.Int("faces", len(shape.Faces)),
	)

	return nil
}

func scaleFactor(coverage float64) float32 {
	return float32(0.5 + coverage*1.5)
}

// carMesh assembles a rectangular body, a smaller roof and four
// sideways-facing wheels. The body widens with the sketch's aspect
// ratio; the other dimensions are fixed.
func carMesh(stats sketch.Statistics) *mesh.Mesh {
	bodyX := float32(math.Max(2.0, stats.AspectRatio*1.5))
	bodyY := float32(0.8)
	bodyZ := float32(1.2)

	body := mesh.Box(bodyX, bodyY, bodyZ)

	roof := mesh.Box(bodyX*0.6, bodyY, bodyZ*0.5)
	roof.Translate(0, 0, bodyZ*0.7)

	wheelPositions := [][3]float32{
		{bodyX * 0.4, bodyY * 0.6, -bodyZ * 0.3},
		{bodyX * 0.4, -bodyY * 0.6, -bodyZ * 0.3},
		{-bodyX * 0.4, bodyY * 0.6, -bodyZ * 0.3},
		{-bodyX * 0.4, -bodyY * 0.6, -bodyZ * 0.3},
	}

	parts := []*mesh.Mesh{body, roof}
	for _, pos := range wheelPositions {
		wheel := mesh.Cylinder(0.3, 0.2, 16)
		// Point the circular faces sideways.
		wheel.RotateX(math.Pi / 2)
		wheel.Translate(pos[0], pos[1], pos[2])
		parts = append(parts, wheel)
	}

	return mesh.Merge(parts...)
}

// chairMesh assembles a seat, a backrest and four vertical legs.
// Chairs ignore the aspect ratio; only coverage scales them.
func chairMesh(_ sketch.Statistics) *mesh.Mesh {
	seat := mesh.Box(1.5, 1.5, 0.2)
	seat.Translate(0, 0, 1.0)

	backrest := mesh.Box(1.5, 0.2, 1.5)
	backrest.Translate(0, -0.7, 1.8)

	const legHeight = 1.0
	legPositions := [][3]float32{
		{0.6, 0.6, legHeight / 2},
		{0.6, -0.6, legHeight / 2},
		{-0.6, 0.6, legHeight / 2},
		{-0.6, -0.6, legHeight / 2},
	}

	parts := []*mesh.Mesh{seat, backrest}
	for _, pos := range legPositions {
		leg := mesh.Cylinder(0.08, legHeight, 12)
		leg.Translate(pos[0], pos[1], pos[2])
		parts = append(parts, leg)
	}

	return mesh.Merge(parts...)
}
