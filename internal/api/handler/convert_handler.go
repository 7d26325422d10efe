package handler

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"net/http"

	"github.com/dnpham/sketch2mesh-be/internal/api/dto"
	"github.com/dnpham/sketch2mesh-be/internal/filestore"
	"github.com/dnpham/sketch2mesh-be/internal/registry"
	"github.com/dnpham/sketch2mesh-be/internal/synth"
	"github.com/gin-gonic/gin"
)

// Convert handles POST /api/v1/convert
// Accepts a sketch upload and schedules an asynchronous conversion.
func (h *ConvertHandler) Convert(c *gin.Context) {
	if !h.ready.Load() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Service not ready. Models are still initializing.",
		})
		return
	}

	category, err := synth.ParseCategory(c.PostForm("model_type"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	styleValue := c.DefaultPostForm("sketch_style", string(synth.StyleSuggestive))
	style, err := synth.ParseStyle(styleValue)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fileHeader, err := c.FormFile("sketch")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sketch file is required"})
		return
	}

	if fileHeader.Size > h.store.MaxUploadBytes() {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": fmt.Sprintf("File too large. Maximum size is %dMB", h.store.MaxUploadBytes()/(1024*1024)),
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("Failed to open upload", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read upload"})
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error("Failed to read upload", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read upload"})
		return
	}

	// Reject undecodable payloads before any job exists.
	if _, _, err := image.DecodeConfig(bytes.NewReader(content)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sketch is not a decodable image"})
		return
	}

	meshID, sketchPath, err := h.store.SaveUpload(fileHeader.Header.Get("Content-Type"), content)
	if err != nil {
		switch {
		case errors.Is(err, filestore.ErrNotAnImage):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, filestore.ErrTooLarge):
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
		default:
			h.logger.Error("Failed to save upload", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save file"})
		}
		return
	}

	if err := h.registry.Create(c.Request.Context(), meshID); err != nil {
		h.logger.Error("Failed to create conversion record",
			slog.String("mesh_id", meshID),
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start conversion"})
		return
	}

	h.orchestrator.Dispatch(meshID, sketchPath, category, style, h.store.OutputPath(meshID))

	h.logger.Info("Started conversion",
		slog.String("mesh_id", meshID),
		slog.String("category", string(category)),
		slog.String("style", string(style)),
	)

	c.JSON(http.StatusOK, dto.ConvertResponse{
		MeshID: meshID,
		Status: registry.StatusProcessing,
	})
}

// GetStatus handles GET /api/v1/convert/:mesh_id/status
func (h *ConvertHandler) GetStatus(c *gin.Context) {
	meshID := c.Param("mesh_id")

	conv, err := h.registry.Get(c.Request.Context(), meshID)
	if err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Mesh ID not found"})
			return
		}
		h.logger.Error("Failed to get conversion",
			slog.String("mesh_id", meshID),
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get conversion status"})
		return
	}

	c.JSON(http.StatusOK, dto.StatusResponse{
		Status:   conv.Status,
		Progress: conv.Progress,
		Error:    conv.Error,
	})
}

// Download handles GET /api/v1/convert/:mesh_id/download
// Streams the finished GLB artifact.
func (h *ConvertHandler) Download(c *gin.Context) {
	meshID := c.Param("mesh_id")

	conv, err := h.registry.Get(c.Request.Context(), meshID)
	if err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Mesh ID not found"})
			return
		}
		h.logger.Error("Failed to get conversion",
			slog.String("mesh_id", meshID),
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get conversion status"})
		return
	}

	if conv.Status != registry.StatusCompleted {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Conversion not completed. Status: %s", conv.Status),
		})
		return
	}

	// The retention sweep can delete artifacts without touching the
	// registry, so the file check is authoritative here.
	outputPath := h.store.OutputPath(meshID)
	if !h.store.Exists(outputPath) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Mesh file not found"})
		return
	}

	c.Header("Content-Type", "model/gltf-binary")
	c.FileAttachment(outputPath, fmt.Sprintf("%s.%s", meshID, filestore.ArtifactExtension))
}

// Health handles GET /health
func (h *ConvertHandler) Health(c *gin.Context) {
	status := "healthy"
	if !h.ready.Load() {
		status = "initializing"
	}

	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:      status,
		ModelsReady: h.ready.Load(),
		Synthesizer: h.synthMode,
	})
}
