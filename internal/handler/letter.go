package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dearyou/dearyou/internal/auth"
	"github.com/dearyou/dearyou/internal/handler/dto"
	"github.com/dearyou/dearyou/internal/service"
)

// LetterHandler handles HTTP requests for letter operations.
type LetterHandler struct {
	svc    *service.LetterService
	logger *slog.Logger
}

// NewLetterHandler creates a new LetterHandler.
func NewLetterHandler(svc *service.LetterService, logger *slog.Logger) *LetterHandler {
	return &LetterHandler{
		svc:    svc,
		logger: logger,
	}
}

// Create handles POST /api/v1/letters.
// Anonymous posting is allowed; when a session is present the letter is
// attributed to the signed-in user.
func (h *LetterHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateLetterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	input := service.CreateLetterInput{
		Recipient: req.Recipient,
		Message:   req.Message,
		OwnerID:   auth.UserIDFromContext(r.Context()),
	}

	letter, err := h.svc.CreateLetter(r.Context(), input)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("letter_created",
		"letter_id", letter.ID,
		"anonymous", letter.IsAnonymous(),
	)

	writeJSON(w, http.StatusCreated, dto.ToLetterResponse(letter))
}

// List handles GET /api/v1/letters.
// An optional search query filters by recipient, case-insensitively.
// The archive view is this same listing without a search term.
func (h *LetterHandler) List(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")

	letters, err := h.svc.ListLetters(r.Context(), search)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToLetterListResponse(letters))
}

// Get handles GET /api/v1/letters/{id}.
func (h *LetterHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		h.writeError(w, http.StatusBadRequest, "MISSING_ID", "Letter ID is required")
		return
	}

	letter, err := h.svc.GetLetter(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToLetterResponse(letter))
}

// Update handles PATCH /api/v1/letters/{id}.
// Requires a session but deliberately no ownership check.
func (h *LetterHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		h.writeError(w, http.StatusBadRequest, "MISSING_ID", "Letter ID is required")
		return
	}

	var req dto.EditLetterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	letter, err := h.svc.EditLetter(r.Context(), service.EditLetterInput{
		ID:        id,
		Recipient: req.Recipient,
		Message:   req.Message,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("letter_edited", "letter_id", letter.ID)

	writeJSON(w, http.StatusOK, dto.ToLetterResponse(letter))
}

// Delete handles DELETE /api/v1/letters/{id}.
func (h *LetterHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		h.writeError(w, http.StatusBadRequest, "MISSING_ID", "Letter ID is required")
		return
	}

	if err := h.svc.DeleteLetter(r.Context(), id); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("letter_deleted", "letter_id", id)

	w.WriteHeader(http.StatusNoContent)
}

// React handles POST /api/v1/letters/{id}/react.
// The route is guarded by RequireUser; a heart can never be recorded
// without a resolved user identity.
func (h *LetterHandler) React(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		h.writeError(w, http.StatusBadRequest, "MISSING_ID", "Letter ID is required")
		return
	}

	userID := auth.UserIDFromContext(r.Context())
	if userID == "" {
		h.writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Sign in to react")
		return
	}

	already, err := h.svc.React(r.Context(), userID, id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	if !already {
		h.logger.Info("heart_given", "letter_id", id, "user_id", userID)
	}

	writeJSON(w, http.StatusOK, dto.ReactResponse{AlreadyReacted: already})
}

// handleServiceError maps service errors to HTTP responses.
func (h *LetterHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrLetterNotFound):
		h.writeError(w, http.StatusNotFound, "LETTER_NOT_FOUND", "Letter not found")
	case errors.Is(err, service.ErrEmptyRecipient):
		h.writeError(w, http.StatusUnprocessableEntity, "EMPTY_RECIPIENT", "Recipient must not be empty")
	case errors.Is(err, service.ErrEmptyMessage):
		h.writeError(w, http.StatusUnprocessableEntity, "EMPTY_MESSAGE", "Message must not be empty")
	default:
		h.logger.Error("internal_error", "error", err)
		h.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}

// writeError writes an error response.
func (h *LetterHandler) writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}
