package server

import (
	"net/http"

	"fjacquet/customer-grouper/internal/logging"

	"github.com/goccy/go-json"
)

// Error codes returned by the JSON API.
const (
	CodeValidationError  = "VALIDATION_ERROR"
	CodeInvalidJSON      = "INVALID_JSON"
	CodeMetadataMismatch = "SEGMENT_METADATA_MISMATCH"
	CodeInternalError    = "INTERNAL_ERROR"
)

// APIResponse wraps every JSON API response.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError is the error payload of a failed request.
type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, response *APIResponse) {
	data, err := json.Marshal(response)
	if err != nil {
		s.logger.WithError(err).Error("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		s.logger.WithError(err).Error("Failed to write JSON response")
	}
}

func (s *Server) respondData(w http.ResponseWriter, data interface{}) {
	s.respondJSON(w, http.StatusOK, &APIResponse{Success: true, Data: data})
}

func (s *Server) respondError(w http.ResponseWriter, status int, code, message string, details interface{}) {
	s.logger.Debug("API error",
		logging.Field{Key: "code", Value: code},
		logging.Field{Key: logging.FieldStatus, Value: status})

	s.respondJSON(w, status, &APIResponse{
		Error: &APIError{Code: code, Message: message, Details: details},
	})
}
