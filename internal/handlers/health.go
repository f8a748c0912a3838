package handlers

import "net/http"

// HealthResponse represents the health check payload.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// Health reports service liveness.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "healthy", Service: "Yoga RAG API"})
}
