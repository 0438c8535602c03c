package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dearyou/dearyou/internal/handler/dto"
	"github.com/dearyou/dearyou/internal/service"
)

// AuthHandler handles HTTP requests for signup, login, and logout.
type AuthHandler struct {
	svc          *service.AuthService
	logger       *slog.Logger
	cookieName   string
	cookieMaxAge time.Duration
	secureCookie bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService, logger *slog.Logger, cookieName string, cookieMaxAge time.Duration, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		svc:          svc,
		logger:       logger,
		cookieName:   cookieName,
		cookieMaxAge: cookieMaxAge,
		secureCookie: secureCookie,
	}
}

// Signup handles POST /api/v1/auth/signup.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req dto.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	user, err := h.svc.Signup(r.Context(), req.Email, req.Password)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("user_signed_up", "user_id", user.ID)

	writeJSON(w, http.StatusCreated, dto.ToUserResponse(user))
}

// Login handles POST /api/v1/auth/login.
// On success the opaque session token is set as an HttpOnly cookie.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	sess, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    sess.Token,
		Path:     "/",
		MaxAge:   int(h.cookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})

	h.logger.Info("user_logged_in", "user_id", sess.UserID)

	writeJSON(w, http.StatusOK, dto.SessionResponse{
		UserID: sess.UserID,
		Email:  sess.Email,
	})
}

// Logout handles POST /api/v1/auth/logout.
// Idempotent: logging out without a session still succeeds and just
// clears the cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := ""
	if cookie, err := r.Cookie(h.cookieName); err == nil {
		token = cookie.Value
	}

	if err := h.svc.Logout(r.Context(), token); err != nil {
		h.logger.Error("logout_failed", "error", err)
		h.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})

	w.WriteHeader(http.StatusNoContent)
}

// handleServiceError maps auth service errors to HTTP responses.
func (h *AuthHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidEmail):
		h.writeError(w, http.StatusUnprocessableEntity, "INVALID_EMAIL", "Invalid email address")
	case errors.Is(err, service.ErrEmptyPassword):
		h.writeError(w, http.StatusUnprocessableEntity, "EMPTY_PASSWORD", "Password must not be empty")
	case errors.Is(err, service.ErrEmailTaken):
		h.writeError(w, http.StatusConflict, "EMAIL_TAKEN", "An account with that email already exists")
	case errors.Is(err, service.ErrInvalidCredentials):
		h.writeError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
	default:
		h.logger.Error("internal_error", "error", err)
		h.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}

// writeError writes an error response.
func (h *AuthHandler) writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}
