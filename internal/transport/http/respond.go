package http

import (
	"encoding/json"
	"log"
	"net/http"
)

// errorResponse is the error envelope for client and server errors.
// Message carries detail only on server errors.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("http: error encoding response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, errMsg, detail string) {
	respondJSON(w, status, errorResponse{Error: errMsg, Message: detail})
}
