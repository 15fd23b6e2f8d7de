package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/bocho8/chronos/internal/models"
	appErrors "github.com/bocho8/chronos/pkg/errors"
)

const catalogCacheKey = "catalog:snapshot"

type catalogStore interface {
	Snapshot(ctx context.Context) (models.Catalog, error)
	ListGroups(ctx context.Context) ([]models.Group, error)
	ListSubjects(ctx context.Context) ([]models.Subject, error)
	ListTeachers(ctx context.Context) ([]models.Teacher, error)
	ListTimeBlocks(ctx context.Context) ([]models.TimeBlock, error)
	ListGuidelines(ctx context.Context) ([]models.Guideline, error)
}

type cacheStore interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type cacheLookupRecorder interface {
	RecordCacheLookup(hit bool)
}

// CatalogService serves the read-only reference snapshot the engine runs
// against. The snapshot is cached: catalog data changes rarely while every
// engine call needs all of it.
type CatalogService struct {
	store   catalogStore
	cache   cacheStore
	metrics cacheLookupRecorder
	logger  *zap.Logger
	ttl     time.Duration
}

// NewCatalogService instantiates CatalogService.
func NewCatalogService(store catalogStore, cache cacheStore, metrics cacheLookupRecorder, logger *zap.Logger, ttl time.Duration) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CatalogService{store: store, cache: cache, metrics: metrics, logger: logger, ttl: ttl}
}

// Snapshot returns the full reference set, from cache when warm.
func (s *CatalogService) Snapshot(ctx context.Context) (models.Catalog, error) {
	if s.cache != nil {
		var cached models.Catalog
		err := s.cache.Get(ctx, catalogCacheKey, &cached)
		if err == nil {
			if s.metrics != nil {
				s.metrics.RecordCacheLookup(true)
			}
			return cached, nil
		}
		if s.metrics != nil {
			s.metrics.RecordCacheLookup(false)
		}
		if !appErrors.HasCode(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("catalog cache read failed", zap.Error(err))
		}
	}

	snap, err := s.store.Snapshot(ctx)
	if err != nil {
		return models.Catalog{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load catalog")
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, catalogCacheKey, snap, s.ttl); err != nil {
			s.logger.Warn("catalog cache write failed", zap.Error(err))
		}
	}
	return snap, nil
}

// Invalidate drops the cached snapshot so the next read hits storage.
func (s *CatalogService) Invalidate(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Delete(ctx, catalogCacheKey)
}

// Groups lists student groups.
func (s *CatalogService) Groups(ctx context.Context) ([]models.Group, error) {
	groups, err := s.store.ListGroups(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list groups")
	}
	return groups, nil
}

// Subjects lists subjects.
func (s *CatalogService) Subjects(ctx context.Context) ([]models.Subject, error) {
	subjects, err := s.store.ListSubjects(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list subjects")
	}
	return subjects, nil
}

// Teachers lists active teachers.
func (s *CatalogService) Teachers(ctx context.Context) ([]models.Teacher, error) {
	teachers, err := s.store.ListTeachers(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list teachers")
	}
	return teachers, nil
}

// TimeBlocks lists the blocks of the school day in start-time order.
func (s *CatalogService) TimeBlocks(ctx context.Context) ([]models.TimeBlock, error) {
	blocks, err := s.store.ListTimeBlocks(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list time blocks")
	}
	return blocks, nil
}

// Guidelines lists the inspection guidelines.
func (s *CatalogService) Guidelines(ctx context.Context) ([]models.Guideline, error) {
	guidelines, err := s.store.ListGuidelines(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list guidelines")
	}
	return guidelines, nil
}
