package services

import (
	"CasaFacil/models"
	"CasaFacil/repository"
	"CasaFacil/utils"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSessionRevoked     = errors.New("session has been signed out")
)

type UserStore interface {
	Create(ctx context.Context, user models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type RevocationStore interface {
	Revoke(ctx context.Context, sessionID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, sessionID string) (bool, error)
}

// SessionEvent is emitted whenever a session signs in (User set) or signs
// out (User nil).
type SessionEvent struct {
	SessionID string
	User      *models.User
}

type Identity struct {
	users       UserStore
	revocations RevocationStore
	tokens      *utils.TokenManager

	mu   sync.RWMutex
	subs []func(SessionEvent)
}

func NewIdentity(users UserStore, revocations RevocationStore, tokens *utils.TokenManager) *Identity {
	return &Identity{users: users, revocations: revocations, tokens: tokens}
}

func (s *Identity) Subscribe(fn func(SessionEvent)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

func (s *Identity) emit(ev SessionEvent) {
	s.mu.RLock()
	subs := append([]func(SessionEvent){}, s.subs...)
	s.mu.RUnlock()
	for _, fn := range subs {
		fn(ev)
	}
}

func (s *Identity) Register(ctx context.Context, req models.RegisterRequest) (*models.LoginResponse, error) {
	email := utils.NormalizeEmail(req.Email)
	name := strings.TrimSpace(req.DisplayName)
	switch {
	case !utils.IsValidEmail(email):
		return nil, fmt.Errorf("%w: a valid email is required", ErrInvalidInput)
	case len(req.Password) < 6:
		return nil, fmt.Errorf("%w: password must be at least 6 characters", ErrInvalidInput)
	case name == "":
		return nil, fmt.Errorf("%w: displayName is required", ErrInvalidInput)
	case !req.Role.CanSelfRegister():
		return nil, fmt.Errorf("%w: role must be landlord or tenant", ErrInvalidInput)
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		ID:           utils.NewID(),
		Email:        email,
		DisplayName:  name,
		Role:         req.Role,
		PasswordHash: hashed,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return s.startSession(user)
}

func (s *Identity) SignIn(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	user, err := s.users.GetByEmail(ctx, utils.NormalizeEmail(req.Email))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := utils.CheckPassword(user.PasswordHash, req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.startSession(*user)
}

func (s *Identity) startSession(user models.User) (*models.LoginResponse, error) {
	token, claims, err := s.tokens.GenerateJWT(user)
	if err != nil {
		return nil, err
	}
	s.emit(SessionEvent{SessionID: claims.SessionID(), User: &user})
	return &models.LoginResponse{Token: token, User: user}, nil
}

// SignOut revokes the session for the remaining lifetime of its token.
func (s *Identity) SignOut(ctx context.Context, claims *utils.JWTClaims) error {
	ttl := s.tokens.TTL()
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	if err := s.revocations.Revoke(ctx, claims.SessionID(), ttl); err != nil {
		return err
	}
	s.emit(SessionEvent{SessionID: claims.SessionID()})
	return nil
}

// Authenticate validates a bearer token and rejects signed-out sessions.
func (s *Identity) Authenticate(ctx context.Context, token string) (*utils.JWTClaims, error) {
	claims, err := s.tokens.ValidateJWT(token)
	if err != nil {
		return nil, err
	}
	revoked, err := s.revocations.IsRevoked(ctx, claims.SessionID())
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrSessionRevoked
	}
	return claims, nil
}

func (s *Identity) CurrentUser(ctx context.Context, userID string) (*models.User, error) {
	return s.users.GetByID(ctx, userID)
}
