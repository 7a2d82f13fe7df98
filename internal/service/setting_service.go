package service

import (
	"context"
	"fmt"

	"supanos/internal/cache"
	"supanos/internal/model"
	"supanos/internal/repository"
)

const settingsCacheKey = "settings:all"

// SettingService manages site settings.
type SettingService interface {
	ListSettings(ctx context.Context) ([]model.Setting, error)
	GetSetting(ctx context.Context, key string) (*model.Setting, error)
	UpsertSetting(ctx context.Context, req SettingRequest) (*model.Setting, error)
}

type settingService struct {
	repo  repository.SettingRepository
	cache *cache.Client
	audit AuditRecorder
}

// NewSettingService creates a new setting service.
func NewSettingService(repo repository.SettingRepository, cache *cache.Client, audit AuditRecorder) SettingService {
	return &settingService{repo: repo, cache: cache, audit: audit}
}

func (s *settingService) ListSettings(ctx context.Context) ([]model.Setting, error) {
	var cached []model.Setting
	if s.cache.GetJSON(ctx, settingsCacheKey, &cached) {
		return cached, nil
	}

	settings, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetJSON(ctx, settingsCacheKey, settings, listCacheTTL)
	return settings, nil
}

func (s *settingService) GetSetting(ctx context.Context, key string) (*model.Setting, error) {
	return s.repo.FindByKey(ctx, key)
}

// UpsertSetting writes the value under key, replacing any previous value.
func (s *settingService) UpsertSetting(ctx context.Context, req SettingRequest) (*model.Setting, error) {
	setting, err := s.repo.Upsert(ctx, req.Key, req.Value)
	if err != nil {
		return nil, fmt.Errorf("upsert setting: %w", err)
	}
	_ = s.cache.Delete(ctx, settingsCacheKey)
	s.audit.Record(ctx, "upsert", "setting", setting.Key, nil)
	return setting, nil
}
