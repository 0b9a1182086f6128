package handlers

import (
	"encoding/json"
	"net/http"
)

type errorResponse struct {
	Success      bool   `json:"success"`
	ErrorMessage string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, errorResponse{Success: false, ErrorMessage: message})
}
