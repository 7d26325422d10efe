// Package synth turns sketch statistics into 3D mesh artifacts. The
// active implementation derives parametric shapes from the statistics;
// the neural implementation keeps the external reconstruction contract
// in place for when pretrained models become available.
package synth

import (
	"context"
	"errors"
	"fmt"

	"github.com/dnpham/sketch2mesh-be/internal/sketch"
)

// Category selects the synthesis recipe.
type Category string

const (
	CategoryCars   Category = "cars"
	CategoryChairs Category = "chairs"
)

// Style describes how the sketch was drawn. Validated on submission;
// currently no recipe branches on it.
type Style string

const (
	StyleSuggestive Style = "suggestive"
	StyleFD         Style = "fd"
	StyleHanddrawn  Style = "handdrawn"
)

var (
	ErrInvalidCategory = errors.New("model_type must be 'cars' or 'chairs'")
	ErrInvalidStyle    = errors.New("sketch_style must be 'suggestive', 'fd', or 'handdrawn'")
)

// ParseCategory validates a raw category value.
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryCars, CategoryChairs:
		return Category(s), nil
	default:
		return "", fmt.Errorf("%w: got %q", ErrInvalidCategory, s)
	}
}

// ParseStyle validates a raw sketch style value.
func ParseStyle(s string) (Style, error) {
	switch Style(s) {
	case StyleSuggestive, StyleFD, StyleHanddrawn:
		return Style(s), nil
	default:
		return "", fmt.Errorf("%w: got %q", ErrInvalidStyle, s)
	}
}

// Request carries everything a synthesizer needs for one conversion.
type Request struct {
	SketchPath string
	Stats      sketch.Statistics
	Category   Category
	Style      Style
	OutputPath string
}

// Synthesizer produces a complete mesh artifact at req.OutputPath or
// returns an error. Implementations must never leave a partial file.
type Synthesizer interface {
	Synthesize(ctx context.Context, req Request) error
}
