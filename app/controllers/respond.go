package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"todo-app/app/models"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// respondError maps the error taxonomy to status codes: ValidationError to
// 400, ErrNotFound to 404, anything else to 500 with the given context as the
// message.
func respondError(w http.ResponseWriter, context string, err error) {
	var vErr *models.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Validation error", Message: vErr.Reason})
	case errors.Is(err, models.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Not found", Message: "Todo not found"})
	default:
		log.Printf("%s: %v", context, err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal server error", Message: context})
	}
}

func validationError(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Validation error", Message: message})
}
