// Package sketch extracts coarse statistics from uploaded sketch
// images. The synthesis recipes key off these statistics instead of
// running real model inference.
package sketch

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"os"

	_ "image/jpeg"
	_ "image/png"
)

// inkThreshold is the gray intensity below which a pixel counts as
// drawn. Matches a dark stroke on a white canvas.
const inkThreshold = 200

// Statistics describes a sketch in terms the synthesizer understands.
type Statistics struct {
	// Coverage is the fraction of pixels classified as ink, in [0, 1].
	Coverage float64
	// AspectRatio is bounding-box width / height of the drawing.
	// 1.0 when the sketch contains no ink at all.
	AspectRatio float64
	// Width and Height are the pixel extents of the ink bounding box,
	// zero when no ink was detected.
	Width  int
	Height int
}

// Analyze decodes a raster image and computes its ink statistics.
// It has no side effects; the result is a pure function of the bytes.
func Analyze(r io.Reader) (Statistics, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return Statistics{}, fmt.Errorf("failed to decode sketch image: %w", err)
	}

	bounds := img.Bounds()
	totalPixels := bounds.Dx() * bounds.Dy()
	if totalPixels == 0 {
		return Statistics{AspectRatio: 1.0}, nil
	}

	inkPixels := 0
	minX, minY := bounds.Max.X, bounds.Max.Y
	maxX, maxY := bounds.Min.X-1, bounds.Min.Y-1

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray := color.GrayModel.Convert(img.At(x, y)).(color.Gray)
			if gray.Y < inkThreshold {
				inkPixels++
				if x < minX {
					minX = x
				}
				if x > maxX {
					maxX = x
				}
				if y < minY {
					minY = y
				}
				if y > maxY {
					maxY = y
				}
			}
		}
	}

	stats := Statistics{
		Coverage: float64(inkPixels) / float64(totalPixels),
	}

	if inkPixels == 0 {
		stats.AspectRatio = 1.0
		return stats, nil
	}

	stats.Width = maxX - minX
	stats.Height = maxY - minY
	stats.AspectRatio = float64(stats.Width) / float64(max(stats.Height, 1))

	return stats, nil
}

// AnalyzeFile analyzes the sketch stored at path.
func AnalyzeFile(path string) (Statistics, error) {
	f, err := os.Open(path)
	if err != nil {
		return Statistics{}, fmt.Errorf("failed to open sketch file: %w", err)
	}
	defer f.Close()

	return Analyze(f)
}
