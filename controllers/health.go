package controllers

import (
	"log"
	"net/http"

	"github.com/dcode-github/dormdash/gateway"
)

type HealthResponse struct {
	Status  string `json:"status"`
	Backend string `json:"backend"`
}

// Health reports the shell as up and whether the backend answered.
func Health(gw *gateway.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := HealthResponse{Status: "ok", Backend: "up"}
		if _, err := gw.Health(r.Context()); err != nil {
			log.Printf("Backend health check failed: %v", err)
			resp.Backend = "down"
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
