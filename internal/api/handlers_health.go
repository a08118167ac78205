// Bookwise - Semantic Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

package api

import (
	"net/http"
	"time"
)

// HealthStatus is the body of the health endpoints.
type HealthStatus struct {
	Status       string  `json:"status"`
	Uptime       float64 `json:"uptime_seconds"`
	CatalogItems int     `json:"catalog_items,omitempty"`
	Dimension    int     `json:"dimension,omitempty"`
	Model        string  `json:"model,omitempty"`
}

// HealthLive handles liveness probe requests (Kubernetes-style).
// It returns 200 as long as the process is serving HTTP.
func (h *Handler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthStatus{
		Status: "alive",
		Uptime: time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles readiness probe requests (Kubernetes-style).
// It returns 200 once the catalog and its embeddings are loaded, 503 before.
func (h *Handler) HealthReady(w http.ResponseWriter, _ *http.Request) {
	if h.svc == nil {
		writeJSON(w, http.StatusServiceUnavailable, HealthStatus{
			Status: "not_ready",
			Uptime: time.Since(h.startTime).Seconds(),
		})
		return
	}

	writeJSON(w, http.StatusOK, HealthStatus{
		Status:       "ready",
		Uptime:       time.Since(h.startTime).Seconds(),
		CatalogItems: h.svc.Len(),
		Dimension:    h.svc.Dimension(),
		Model:        h.svc.ModelName(),
	})
}
