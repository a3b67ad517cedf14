package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/RGianluca98/Stycly/internal/service"
)

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, status int, data interface{}, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteError writes an error response in JSON format
func WriteError(w http.ResponseWriter, status int, message string, logger *slog.Logger) {
	WriteJSON(w, status, map[string]string{"error": message}, logger)
}

// WriteValidationErrors writes the full accumulated list of validation
// failures so the client can display all problems at once.
func WriteValidationErrors(w http.ResponseWriter, verrs service.ValidationErrors, logger *slog.Logger) {
	WriteJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
		"errors": verrs,
	}, logger)
}

// CartResponse is the shape every cart mutation returns.
type CartResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	CartCount int    `json:"cart_count"`
}
