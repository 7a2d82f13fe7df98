package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"supanos/internal/cache"
	apperrors "supanos/internal/errors"
	"supanos/internal/model"
	"supanos/internal/repository"
)

const sessionKeyPrefix = "session:"

// SessionData is what the server remembers about a logged-in browser.
type SessionData struct {
	UserID uuid.UUID  `json:"userId"`
	Role   model.Role `json:"userRole"`
}

// Store keeps session data keyed by session id.
type Store interface {
	Create(ctx context.Context, data SessionData, ttl time.Duration) (string, error)
	Get(ctx context.Context, sid string) (*SessionData, error)
	Destroy(ctx context.Context, sid string) error
	Sweep(ctx context.Context) (int64, error)
}

// DBStore keeps sessions in the sessions table.
type DBStore struct {
	repo repository.SessionRepository
}

var _ Store = (*DBStore)(nil)

// NewDBStore creates a database-backed session store.
func NewDBStore(repo repository.SessionRepository) *DBStore {
	return &DBStore{repo: repo}
}

func (s *DBStore) Create(ctx context.Context, data SessionData, ttl time.Duration) (string, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("marshal session: %w", err)
	}
	sid := uuid.NewString()
	err = s.repo.Save(ctx, &model.Session{
		SID:    sid,
		Sess:   model.JSON(payload),
		Expire: time.Now().UTC().Add(ttl),
	})
	if err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}
	return sid, nil
}

// Get returns ErrNotFound for unknown or expired sessions.
func (s *DBStore) Get(ctx context.Context, sid string) (*SessionData, error) {
	row, err := s.repo.Find(ctx, sid)
	if err != nil {
		return nil, err
	}
	var data SessionData
	if err := json.Unmarshal(row.Sess, &data); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &data, nil
}

func (s *DBStore) Destroy(ctx context.Context, sid string) error {
	return s.repo.Delete(ctx, sid)
}

func (s *DBStore) Sweep(ctx context.Context) (int64, error) {
	return s.repo.DeleteExpired(ctx)
}

// RedisStore keeps sessions as expiring Redis keys. Writes fail loudly; a
// Redis outage on read is treated as "no session".
type RedisStore struct {
	cache *cache.Client
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(c *cache.Client) (*RedisStore, error) {
	if !c.Enabled() {
		return nil, errors.New("redis session store requires REDIS_URL")
	}
	return &RedisStore{cache: c}, nil
}

func (s *RedisStore) Create(ctx context.Context, data SessionData, ttl time.Duration) (string, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("marshal session: %w", err)
	}
	sid := uuid.NewString()
	if err := s.cache.SetStrict(ctx, sessionKeyPrefix+sid, payload, ttl); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}
	return sid, nil
}

func (s *RedisStore) Get(ctx context.Context, sid string) (*SessionData, error) {
	payload, err := s.cache.Get(ctx, sessionKeyPrefix+sid)
	if err != nil {
		return nil, err
	}
	if payload == nil {
		return nil, apperrors.ErrNotFound
	}
	var data SessionData
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &data, nil
}

func (s *RedisStore) Destroy(ctx context.Context, sid string) error {
	return s.cache.Delete(ctx, sessionKeyPrefix+sid)
}

// Sweep is a no-op; Redis expires keys itself.
func (s *RedisStore) Sweep(context.Context) (int64, error) {
	return 0, nil
}
