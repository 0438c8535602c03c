package handler

import (
	"log/slog"
	"net/http"

	"github.com/dearyou/dearyou/internal/auth"
	"github.com/dearyou/dearyou/internal/handler/dto"
	"github.com/dearyou/dearyou/internal/service"
)

// ProfileHandler handles the signed-in user's profile aggregation.
type ProfileHandler struct {
	letters *service.LetterService
	logger  *slog.Logger
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(letters *service.LetterService, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		letters: letters,
		logger:  logger,
	}
}

// Profile handles GET /api/v1/profile.
// Returns the user's posted letters, liked letters, and hearted letter IDs.
// The route is guarded by RequireUser.
func (h *ProfileHandler) Profile(w http.ResponseWriter, r *http.Request) {
	sess := auth.SessionFromContext(r.Context())
	if sess == nil {
		writeJSON(w, http.StatusUnauthorized, dto.ErrorResponse{
			Error: "Authentication required",
			Code:  "UNAUTHORIZED",
		})
		return
	}

	posted, err := h.letters.PostedLetters(r.Context(), sess.UserID)
	if err != nil {
		h.internalError(w, err)
		return
	}

	liked, err := h.letters.LikedLetters(r.Context(), sess.UserID)
	if err != nil {
		h.internalError(w, err)
		return
	}

	hearted, err := h.letters.ReactionsByUser(r.Context(), sess.UserID)
	if err != nil {
		h.internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ProfileResponse{
		User: dto.SessionResponse{
			UserID: sess.UserID,
			Email:  sess.Email,
		},
		Posted:  dto.ToLetterListResponse(posted).Data,
		Liked:   dto.ToLetterListResponse(liked).Data,
		Hearted: hearted,
	})
}

func (h *ProfileHandler) internalError(w http.ResponseWriter, err error) {
	h.logger.Error("internal_error", "error", err)
	writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
		Code:  "INTERNAL_ERROR",
	})
}
