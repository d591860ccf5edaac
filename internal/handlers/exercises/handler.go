package exercises

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"gitlab.com/codelab-2025.net/internal/core/ports/primary"
	"gitlab.com/codelab-2025.net/internal/core/services/execution"
	"gitlab.com/codelab-2025.net/internal/handlers"
	"gitlab.com/codelab-2025.net/internal/handlers/response"
)

// ExerciseHandler handles run and submission API requests
type ExerciseHandler struct {
	executionService execution.IExecutionService
	logger           primary.Logger
}

var _ execution.IExecutionService = &execution.ExecutionService{}

// NewExerciseHandler creates a new exercise handler
func NewExerciseHandler(executionService execution.IExecutionService, logger primary.Logger) *ExerciseHandler {
	return &ExerciseHandler{
		executionService: executionService,
		logger:           logger,
	}
}

// RegisterRoutes registers the API routes for ExerciseHandler
func (h *ExerciseHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/lessons/{lessonId}/run", h.Run).Methods("POST")
	router.HandleFunc("/lessons/{lessonId}/submit", h.Submit).Methods("POST")
	router.HandleFunc("/lessons/{lessonId}/submissions", h.ListSubmissions).Methods("GET")
	router.HandleFunc("/lessons/{lessonId}/submissions/{submissionId}", h.GetSubmission).Methods("GET")
}

// Run handles "run with custom input" requests
func (h *ExerciseHandler) Run(w http.ResponseWriter, r *http.Request) {
	lessonID := mux.Vars(r)["lessonId"]

	var req execution.RunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("Failed to decode request", "error", err)
		response.WriteError(w, response.ErrorMessage{Message: "Invalid request", StatusCode: http.StatusBadRequest})
		return
	}

	result, err := h.executionService.Run(r.Context(), lessonID, &req)
	if err != nil {
		h.logger.Error("Failed to run code", "lessonId", lessonID, "error", err)
		response.WriteServiceError(w, err)
		return
	}

	response.WriteSuccess(w, result)
}

// Submit handles grading requests
func (h *ExerciseHandler) Submit(w http.ResponseWriter, r *http.Request) {
	lessonID := mux.Vars(r)["lessonId"]
	userID := handlers.UserIDFromContext(r.Context())

	var req execution.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("Failed to decode request", "error", err)
		response.WriteError(w, response.ErrorMessage{Message: "Invalid request", StatusCode: http.StatusBadRequest})
		return
	}

	summary, err := h.executionService.Submit(r.Context(), lessonID, userID, &req)
	if err != nil {
		h.logger.Error("Failed to grade submission", "lessonId", lessonID, "userId", userID, "error", err)
		response.WriteServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(summary)
}

// ListSubmissions handles submission history requests
func (h *ExerciseHandler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	lessonID := mux.Vars(r)["lessonId"]
	userID := handlers.UserIDFromContext(r.Context())

	records, err := h.executionService.ListSubmissions(r.Context(), userID, lessonID)
	if err != nil {
		h.logger.Error("Failed to list submissions", "lessonId", lessonID, "userId", userID, "error", err)
		response.WriteServiceError(w, err)
		return
	}

	response.WriteSuccess(w, map[string][]*execution.SubmissionRecord{"submissions": records})
}

// GetSubmission handles single submission retrieval requests
func (h *ExerciseHandler) GetSubmission(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID := handlers.UserIDFromContext(r.Context())

	submissionID, err := uuid.Parse(vars["submissionId"])
	if err != nil {
		h.logger.Error("Invalid submission ID", "id", vars["submissionId"])
		response.WriteError(w, response.ErrorMessage{Message: "Invalid submission ID", StatusCode: http.StatusBadRequest})
		return
	}

	record, err := h.executionService.GetSubmission(r.Context(), userID, submissionID)
	if err != nil {
		h.logger.Error("Failed to get submission", "submissionId", submissionID, "error", err)
		response.WriteServiceError(w, err)
		return
	}

	response.WriteSuccess(w, record)
}
