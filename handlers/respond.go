package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			zap.L().Error("failed to encode JSON response", zap.Error(err))
		}
	}
}

// MutationResponse acknowledges a successful create, update or delete and
// names the view the client should go to next.
type MutationResponse struct {
	Message  string      `json:"message"`
	Redirect string      `json:"redirect"`
	Data     interface{} `json:"data,omitempty"`
}

func writeRedirect(w http.ResponseWriter, status int, location, message string, data interface{}) {
	w.Header().Set("Location", location)
	writeJSON(w, status, MutationResponse{Message: message, Redirect: location, Data: data})
}
