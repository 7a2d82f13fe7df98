package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"supanos/internal/model"
)

// SessionRepository persists server-side session records.
type SessionRepository interface {
	Save(ctx context.Context, session *model.Session) error
	Find(ctx context.Context, sid string) (*model.Session, error)
	Delete(ctx context.Context, sid string) error
	DeleteExpired(ctx context.Context) (int64, error)
}

type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a new session repository.
func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

// Save inserts or replaces the session with the same sid.
func (r *sessionRepository) Save(ctx context.Context, session *model.Session) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "sid"}},
		DoUpdates: clause.AssignmentColumns([]string{"sess", "expire"}),
	}).Create(session).Error
}

// Find returns a live session. Expired sessions read as ErrNotFound.
func (r *sessionRepository) Find(ctx context.Context, sid string) (*model.Session, error) {
	var session model.Session
	err := r.db.WithContext(ctx).
		Where("sid = ? AND expire > ?", sid, time.Now().UTC()).
		First(&session).Error
	if err != nil {
		return nil, translate(err)
	}
	return &session, nil
}

func (r *sessionRepository) Delete(ctx context.Context, sid string) error {
	return r.db.WithContext(ctx).Where("sid = ?", sid).Delete(&model.Session{}).Error
}

// DeleteExpired removes every session past its expiry and reports how many.
func (r *sessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Where("expire <= ?", time.Now().UTC()).Delete(&model.Session{})
	return res.RowsAffected, res.Error
}
