package dto

// ConvertResponse is returned by POST /api/v1/convert.
type ConvertResponse struct {
	MeshID string `json:"mesh_id"`
	Status string `json:"status"`
}

// StatusResponse is returned by GET /api/v1/convert/:mesh_id/status.
type StatusResponse struct {
	Status   string `json:"status"`
	Progress int    `json:"progress"`
	Error    string `json:"error,omitempty"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status      string `json:"status"`
	ModelsReady bool   `json:"models_ready"`
	Synthesizer string `json:"synthesizer"`
}
