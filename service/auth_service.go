package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"filesmanager-backend/models"
)

// defaultSessionTTL is how long a sign-in token stays valid.
const defaultSessionTTL = 24 * time.Hour

// AuthService handles registration and the token lifecycle.
//
// Token states are absent, active and expired: sign-in takes a token from
// absent to active, sign-out and TTL expiry take it back to absent. Expiry
// itself is enforced by the session store, never here.
type AuthService struct {
	users    UserRepository
	sessions SessionStore
	jobs     JobPublisher
	ttl      time.Duration
	log      *zap.SugaredLogger
}

// AuthServiceOption is a functional option for AuthService
type AuthServiceOption func(*AuthService)

// WithUserRepository sets the user repository
func WithUserRepository(repo UserRepository) AuthServiceOption {
	return func(s *AuthService) {
		s.users = repo
	}
}

// WithSessionStore sets the session store
func WithSessionStore(store SessionStore) AuthServiceOption {
	return func(s *AuthService) {
		s.sessions = store
	}
}

// WithJobPublisher sets the job publisher
func WithJobPublisher(jobs JobPublisher) AuthServiceOption {
	return func(s *AuthService) {
		s.jobs = jobs
	}
}

// WithSessionTTL overrides the default 24h token lifetime
func WithSessionTTL(ttl time.Duration) AuthServiceOption {
	return func(s *AuthService) {
		s.ttl = ttl
	}
}

// WithAuthLogger sets the logger
func WithAuthLogger(log *zap.SugaredLogger) AuthServiceOption {
	return func(s *AuthService) {
		s.log = log
	}
}

// NewAuthService creates a new auth service
func NewAuthService(opts ...AuthServiceOption) *AuthService {
	s := &AuthService{
		ttl: defaultSessionTTL,
		log: zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates a new user. Returns a ValidationError for missing fields,
// ErrConflict for a duplicate email. On a store failure it still enqueues an
// empty notification job before reporting the error.
func (s *AuthService) Register(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" {
		return nil, models.NewValidationError("Missing email")
	}
	if password == "" {
		return nil, models.NewValidationError("Missing password")
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, models.ErrConflict
	} else if !errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("checking email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, models.ErrConflict) {
			// Lost the race against a concurrent registration.
			return nil, models.ErrConflict
		}
		// Best-effort notification so operators hear about the failure.
		if pubErr := s.jobs.PublishWelcome(ctx, models.WelcomeJob{}); pubErr != nil {
			s.log.Errorw("failed to enqueue notification job", "error", pubErr)
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	if err := s.jobs.PublishWelcome(ctx, models.WelcomeJob{UserID: user.ID}); err != nil {
		s.log.Errorw("failed to enqueue welcome job", "user_id", user.ID, "error", err)
	}

	return user, nil
}

// SignIn validates credentials and issues a fresh opaque token with the
// configured TTL. Returns ErrUnauthorized when the credentials don't match.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, models.ErrNotFound) {
		return "", models.ErrUnauthorized
	}
	if err != nil {
		return "", fmt.Errorf("looking up user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", models.ErrUnauthorized
	}

	token := newToken()
	if err := s.sessions.Save(ctx, token, user.ID, s.ttl); err != nil {
		return "", fmt.Errorf("storing session: %w", err)
	}

	return token, nil
}

// ResolveToken returns the user ID the token was issued for, or
// ErrUnauthorized if the token is absent or expired.
func (s *AuthService) ResolveToken(ctx context.Context, token string) (uuid.UUID, error) {
	return s.sessions.Resolve(ctx, token)
}

// ResolveUser loads the full user record behind a token. A token whose user
// no longer exists resolves to ErrUnauthorized.
func (s *AuthService) ResolveUser(ctx context.Context, token string) (*models.User, error) {
	userID, err := s.sessions.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, models.ErrNotFound) {
		return nil, models.ErrUnauthorized
	}
	if err != nil {
		return nil, fmt.Errorf("loading user: %w", err)
	}
	return user, nil
}

// SignOut revokes a token. Revoking an absent token is not an error.
func (s *AuthService) SignOut(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// newToken generates a cryptographically random opaque token.
func newToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand never fails on supported platforms
		panic(fmt.Errorf("failed to generate token: %w", err))
	}
	return base64.URLEncoding.WithPadding(base64.NoPadding).EncodeToString(b)
}
