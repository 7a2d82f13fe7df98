package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"supanos/internal/auth"
	apperrors "supanos/internal/errors"
	"supanos/internal/model"
	"supanos/internal/repository"
)

// UserService manages back-office accounts.
type UserService interface {
	CreateUser(ctx context.Context, req CreateUserRequest) (*model.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, req UpdateUserRequest) (*model.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

type userService struct {
	repo  repository.UserRepository
	audit AuditRecorder
}

// NewUserService builds a UserService.
func NewUserService(repo repository.UserRepository, audit AuditRecorder) UserService {
	return &userService{repo: repo, audit: audit}
}

func (s *userService) CreateUser(ctx context.Context, req CreateUserRequest) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &model.User{
		Username:        req.Username,
		Email:           req.Email,
		PasswordHash:    string(hash),
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		ProfileImageURL: req.ProfileImageURL,
		Role:            req.Role,
		IsActive:        true,
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	s.audit.Record(ctx, "create", "user", user.ID.String(), map[string]interface{}{"username": user.Username, "role": user.Role})
	return user, nil
}

func (s *userService) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.repo.List(ctx)
}

func (s *userService) UpdateUser(ctx context.Context, id uuid.UUID, req UpdateUserRequest) (*model.User, error) {
	fields := req.fields()
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		fields["password"] = string(hash)
	}
	user, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	s.audit.Record(ctx, "update", "user", id.String(), changedKeys(fields, "password"))
	return user, nil
}

// DeleteUser refuses to delete the account of the caller.
func (s *userService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if actor, ok := auth.IdentityFrom(ctx); ok && actor.UserID == id {
		return apperrors.ErrSelfDelete
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, "delete", "user", id.String(), nil)
	return nil
}

// changedKeys lists the updated columns for audit metadata, leaving out
// the ones named in skip.
func changedKeys(fields repository.Fields, skip ...string) map[string]interface{} {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		omit := false
		for _, s := range skip {
			if k == s {
				omit = true
			}
		}
		if !omit {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return map[string]interface{}{"fields": keys}
}
