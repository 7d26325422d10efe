package handler

import (
	"log/slog"
	"sync/atomic"

	"github.com/dnpham/sketch2mesh-be/internal/converter"
	"github.com/dnpham/sketch2mesh-be/internal/filestore"
	"github.com/dnpham/sketch2mesh-be/internal/registry"
)

// Dependencies holds all dependencies needed by handlers
type Dependencies struct {
	Logger       *slog.Logger
	Registry     registry.Registry
	Orchestrator *converter.Orchestrator
	Store        *filestore.Store
	// Ready reports whether storage setup finished; submissions are
	// rejected until it flips true.
	Ready *atomic.Bool
	// SynthMode names the active synthesizer for the health probe.
	SynthMode  string
	AppName    string
	AppVersion string
}

// ConvertHandler handles sketch conversion HTTP requests
type ConvertHandler struct {
	logger       *slog.Logger
	registry     registry.Registry
	orchestrator *converter.Orchestrator
	store        *filestore.Store
	ready        *atomic.Bool
	synthMode    string
}

// NewConvertHandler creates a new ConvertHandler instance
func NewConvertHandler(deps *Dependencies) *ConvertHandler {
	return &ConvertHandler{
		logger:       deps.Logger,
		registry:     deps.Registry,
		orchestrator: deps.Orchestrator,
		store:        deps.Store,
		ready:        deps.Ready,
		synthMode:    deps.SynthMode,
	}
}
