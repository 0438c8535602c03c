package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/dearyou/dearyou/internal/auth"
	"github.com/dearyou/dearyou/internal/cache"
	"github.com/dearyou/dearyou/internal/metrics"
	"github.com/dearyou/dearyou/internal/model"
	"github.com/dearyou/dearyou/internal/repository"
)

// Auth service errors.
var (
	ErrInvalidEmail  = errors.New("invalid email address")
	ErrEmptyPassword = errors.New("password must not be empty")
	ErrEmailTaken    = errors.New("email already registered")
	// ErrInvalidCredentials covers both unknown email and wrong password,
	// so login failures never reveal whether an account exists.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// emailRegex is a loose shape check; the unique index is the real gate.
var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// AuthService handles signup, login, and server-side sessions.
type AuthService struct {
	repo       *repository.Repository
	cache      *cache.Cache
	sessionTTL time.Duration
	metrics    metrics.Recorder
}

// NewAuthService creates a new AuthService.
func NewAuthService(repo *repository.Repository, sessions *cache.Cache, sessionTTL time.Duration, recorder metrics.Recorder) *AuthService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &AuthService{
		repo:       repo,
		cache:      sessions,
		sessionTTL: sessionTTL,
		metrics:    recorder,
	}
}

// Signup creates a new account.
// The email is trimmed and case-folded before the uniqueness check; the
// password is stored only as an argon2id hash.
func (s *AuthService) Signup(ctx context.Context, email, password string) (*model.User, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if password == "" {
		return nil, ErrEmptyPassword
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:           newID(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.metrics.IncSignup()

	return user, nil
}

// Login verifies credentials and establishes a server-side session.
// Unknown email and wrong password both return ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.Session, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		s.metrics.IncLoginFailed()
		return nil, ErrInvalidCredentials
	}

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.metrics.IncLoginFailed()
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	match, err := auth.VerifyPassword(password, user.PasswordHash)
	if err != nil || !match {
		s.metrics.IncLoginFailed()
		return nil, ErrInvalidCredentials
	}

	token, err := auth.NewSessionToken()
	if err != nil {
		return nil, err
	}

	sess := &model.Session{
		Token:  token,
		UserID: user.ID,
		Email:  user.Email,
	}

	if err := s.cache.SetSession(ctx, sess, s.sessionTTL); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	s.metrics.IncLogin()

	return sess, nil
}

// Logout clears a session. It is idempotent: logging out an already
// cleared or unknown token succeeds.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.cache.DeleteSession(ctx, token)
}

// Resolve looks up the session for a token.
// Returns cache.ErrSessionNotFound for unknown or expired tokens.
func (s *AuthService) Resolve(ctx context.Context, token string) (*model.Session, error) {
	if !auth.ValidTokenFormat(token) {
		return nil, cache.ErrSessionNotFound
	}
	return s.cache.GetSession(ctx, token)
}

// normalizeEmail trims whitespace and case-folds an email address.
func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailRegex.MatchString(email) {
		return "", ErrInvalidEmail
	}
	return email, nil
}
