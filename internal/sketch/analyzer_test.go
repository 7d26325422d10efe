package sketch

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// drawSketch produces a PNG of the given size with a black rectangle
// drawn on a white canvas. A zero-sized rect leaves the canvas blank.
func drawSketch(t *testing.T, width, height int, rect image.Rectangle) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.White)
		}
	}
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			img.Set(x, y, color.Black)
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestAnalyze_BlankSketch(t *testing.T) {
	data := drawSketch(t, 400, 400, image.Rectangle{})

	stats, err := Analyze(bytes.NewReader(data))
	require.NoError(t, err)

	assert.Zero(t, stats.Coverage)
	assert.Equal(t, 1.0, stats.AspectRatio)
	assert.Zero(t, stats.Width)
	assert.Zero(t, stats.Height)
}

func TestAnalyze_Rectangle(t *testing.T) {
	// 200x100 black block on a 400x400 canvas.
	data := drawSketch(t, 400, 400, image.Rect(100, 100, 300, 200))

	stats, err := Analyze(bytes.NewReader(data))
	require.NoError(t, err)

	// 20000 ink pixels out of 160000.
	assert.InDelta(t, 0.125, stats.Coverage, 1e-9)
	assert.Equal(t, 199, stats.Width)
	assert.Equal(t, 99, stats.Height)
	assert.InDelta(t, 199.0/99.0, stats.AspectRatio, 1e-9)
}

func TestAnalyze_WideSketchHasLargerAspect(t *testing.T) {
	wide := drawSketch(t, 400, 400, image.Rect(50, 180, 350, 220))
	tall := drawSketch(t, 400, 400, image.Rect(180, 50, 220, 350))

	wideStats, err := Analyze(bytes.NewReader(wide))
	require.NoError(t, err)
	tallStats, err := Analyze(bytes.NewReader(tall))
	require.NoError(t, err)

	assert.Greater(t, wideStats.AspectRatio, 1.0)
	assert.Less(t, tallStats.AspectRatio, 1.0)
	assert.InDelta(t, wideStats.Coverage, tallStats.Coverage, 1e-9)
}

func TestAnalyze_CoverageGrowsWithInk(t *testing.T) {
	small := drawSketch(t, 400, 400, image.Rect(150, 150, 250, 250))
	large := drawSketch(t, 400, 400, image.Rect(50, 50, 350, 350))

	smallStats, err := Analyze(bytes.NewReader(small))
	require.NoError(t, err)
	largeStats, err := Analyze(bytes.NewReader(large))
	require.NoError(t, err)

	assert.Greater(t, largeStats.Coverage, smallStats.Coverage)
}

func TestAnalyze_NotAnImage(t *testing.T) {
	_, err := Analyze(bytes.NewReader([]byte("definitely not a png")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode sketch image")
}

func TestAnalyzeFile(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "sketch.png")
	require.NoError(t, os.WriteFile(path, drawSketch(t, 100, 100, image.Rect(10, 10, 90, 90)), 0o644))

	stats, err := AnalyzeFile(path)
	require.NoError(t, err)
	assert.Greater(t, stats.Coverage, 0.0)

	_, err = AnalyzeFile(filepath.Join(dir, "missing.png"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open sketch file")
}
