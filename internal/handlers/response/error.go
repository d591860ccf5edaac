package response

import (
	"encoding/json"
	"net/http"

	"gitlab.com/codelab-2025.net/internal/static/errs"
)

type ErrorMessage struct {
	Message    string `json:"message"`
	StatusCode int    `json:"status_code"`
}

func WriteError(w http.ResponseWriter, err ErrorMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.StatusCode)
	_ = json.NewEncoder(w).Encode(err)
}

func WriteSuccess(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(data)
}

// WriteServiceError maps a service error onto an HTTP status. Validation
// problems are the caller's fault, missing resources are 404, a judge that
// never answered is a bad gateway, everything else is an opaque 500.
func WriteServiceError(w http.ResponseWriter, err error) {
	switch {
	case errs.IsValidation(err):
		WriteError(w, ErrorMessage{Message: err.Error(), StatusCode: http.StatusBadRequest})
	case errs.IsNotFound(err):
		WriteError(w, ErrorMessage{Message: err.Error(), StatusCode: http.StatusNotFound})
	case errs.IsExternalService(err):
		WriteError(w, ErrorMessage{Message: "code execution service unavailable", StatusCode: http.StatusBadGateway})
	default:
		WriteError(w, ErrorMessage{Message: "internal server error", StatusCode: http.StatusInternalServerError})
	}
}
