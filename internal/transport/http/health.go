package http

import "net/http"

type healthResponse struct {
	Status string `json:"status"`
}

// HealthHandler reports service liveness.
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}
