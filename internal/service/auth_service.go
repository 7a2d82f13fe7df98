package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"supanos/internal/auth"
	apperrors "supanos/internal/errors"
	"supanos/internal/model"
	"supanos/internal/repository"
)

const bcryptCost = 10

// Bootstrap admin credentials created by POST /api/init-admin.
const (
	bootstrapUsername  = "admin"
	bootstrapPassword  = "admin123"
	bootstrapEmail     = "admin@supanos.bar"
	bootstrapFirstName = "Admin"
	bootstrapLastName  = "User"
)

// AuthService handles login sessions and the first admin account.
type AuthService interface {
	Login(ctx context.Context, username, password string) (user *model.User, cookie string, err error)
	Logout(ctx context.Context, sessionID string) error
	BootstrapAdmin(ctx context.Context) (*model.User, error)
	SessionTTL() time.Duration
}

type authService struct {
	users  repository.UserRepository
	store  auth.Store
	signer *auth.CookieSigner
	ttl    time.Duration
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, store auth.Store, signer *auth.CookieSigner, ttl time.Duration) AuthService {
	return &authService{
		users:  users,
		store:  store,
		signer: signer,
		ttl:    ttl,
	}
}

func (s *authService) SessionTTL() time.Duration {
	return s.ttl
}

// Login verifies credentials, opens a server-side session and returns the
// signed cookie value naming it.
func (s *authService) Login(ctx context.Context, username, password string) (*model.User, string, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, "", apperrors.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("find user: %w", err)
	}
	if !user.IsActive {
		return nil, "", apperrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	if n, err := s.store.Sweep(ctx); err != nil {
		log.Warn().Err(err).Msg("session sweep failed")
	} else if n > 0 {
		log.Debug().Int64("removed", n).Msg("expired sessions removed")
	}

	sid, err := s.store.Create(ctx, auth.SessionData{UserID: user.ID, Role: user.Role}, s.ttl)
	if err != nil {
		return nil, "", fmt.Errorf("create session: %w", err)
	}
	cookie, err := s.signer.Sign(sid, s.ttl)
	if err != nil {
		return nil, "", fmt.Errorf("sign session cookie: %w", err)
	}
	return user, cookie, nil
}

// Logout destroys the session. An empty id is a no-op.
func (s *authService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.store.Destroy(ctx, sessionID)
}

// BootstrapAdmin creates the default admin account once.
func (s *authService) BootstrapAdmin(ctx context.Context) (*model.User, error) {
	exists, err := s.users.ExistsWithRole(ctx, model.RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("check admin: %w", err)
	}
	if exists {
		return nil, apperrors.ErrAdminExists
	}
	// The bootstrap username may be held by a non-admin account.
	if _, err := s.users.FindByUsername(ctx, bootstrapUsername); err == nil {
		return nil, apperrors.ErrAdminExists
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("check admin username: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(bootstrapPassword), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	email, first, last := bootstrapEmail, bootstrapFirstName, bootstrapLastName
	admin := &model.User{
		Username:     bootstrapUsername,
		Email:        &email,
		PasswordHash: string(hash),
		FirstName:    &first,
		LastName:     &last,
		Role:         model.RoleAdmin,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, admin); err != nil {
		return nil, fmt.Errorf("create admin: %w", err)
	}
	return admin, nil
}
