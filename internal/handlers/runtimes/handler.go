package runtimes

import (
	"net/http"

	"github.com/gorilla/mux"

	"gitlab.com/codelab-2025.net/internal/core/ports/primary"
	"gitlab.com/codelab-2025.net/internal/core/services/runtime"
	"gitlab.com/codelab-2025.net/internal/domain"
	"gitlab.com/codelab-2025.net/internal/handlers/response"
)

// RuntimeHandler handles runtime catalog API requests
type RuntimeHandler struct {
	catalogService runtime.ICatalogService
	logger         primary.Logger
}

// NewRuntimeHandler creates a new runtime handler
func NewRuntimeHandler(catalogService runtime.ICatalogService, logger primary.Logger) *RuntimeHandler {
	return &RuntimeHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// RegisterRoutes registers the API routes for RuntimeHandler
func (h *RuntimeHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/runtimes", h.GetRuntimes).Methods("GET")
}

// GetRuntimes handles runtime catalog retrieval requests
func (h *RuntimeHandler) GetRuntimes(w http.ResponseWriter, r *http.Request) {
	runtimes, err := h.catalogService.ListAvailableRuntimes(r.Context())
	if err != nil {
		h.logger.Error("Failed to list runtimes", "error", err)
		response.WriteServiceError(w, err)
		return
	}

	response.WriteSuccess(w, map[string][]domain.AvailableRuntime{"runtimes": runtimes})
}
