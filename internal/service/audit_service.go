package service

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"supanos/internal/auth"
	"supanos/internal/model"
	"supanos/internal/repository"
)

const (
	maxAuditLimit     = 200
	defaultAuditLimit = 50
)

// AuditRecorder records back-office mutations.
type AuditRecorder interface {
	Record(ctx context.Context, action, targetType, targetID string, meta interface{})
}

// AuditService records and lists audit log entries.
type AuditService interface {
	AuditRecorder
	List(ctx context.Context, limit int) ([]model.AuditLog, error)
}

type auditService struct {
	repo repository.AuditLogRepository
}

// NewAuditService creates a new audit service.
func NewAuditService(repo repository.AuditLogRepository) AuditService {
	return &auditService{repo: repo}
}

// Record stores an entry attributed to the request's identity, if any.
// Failures are logged and otherwise ignored.
func (s *auditService) Record(ctx context.Context, action, targetType, targetID string, meta interface{}) {
	entry := &model.AuditLog{
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
	}
	if id, ok := auth.IdentityFrom(ctx); ok {
		actor := id.UserID
		entry.ActorUserID = &actor
	}
	if meta != nil {
		if b, err := json.Marshal(meta); err == nil {
			entry.Meta = model.JSON(b)
		}
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		log.Warn().Err(err).
			Str("action", action).
			Str("target_type", targetType).
			Str("target_id", targetID).
			Msg("audit record failed")
	}
}

// List clamps limit to (0, 200]; non-positive values select the default.
func (s *auditService) List(ctx context.Context, limit int) ([]model.AuditLog, error) {
	if limit <= 0 {
		limit = defaultAuditLimit
	}
	if limit > maxAuditLimit {
		limit = maxAuditLimit
	}
	return s.repo.List(ctx, limit)
}
