package resorts

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// RepositoryPort defines data access methods for resorts.
type RepositoryPort interface {
	List(ctx context.Context, filter ListFilter) ([]Resort, error)
	FindByID(ctx context.Context, id uuid.UUID) (Resort, error)
	Create(ctx context.Context, input ResortInput) (Resort, error)
	Update(ctx context.Context, id uuid.UUID, input ResortInput) (Resort, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// Service handles resort catalog logic with a read-through listing cache.
type Service struct {
	repo   RepositoryPort
	cache  *Cache
	logger *slog.Logger
}

// NewService builds a Service instance. The cache may be nil.
func NewService(repo RepositoryPort, cache *Cache, logger *slog.Logger) *Service {
	return &Service{repo: repo, cache: cache, logger: logger}
}

// List returns active resorts matching the filter. Listing results are
// cached; a cache failure falls back to the repository.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]Resort, error) {
	key, err := s.cache.BuildKey(ctx, "resorts", "list", filterKey(filter))
	if err != nil {
		s.warn("resort cache key", err)
		return s.repo.List(ctx, filter)
	}
	var out []Resort
	err = s.cache.FetchJSON(ctx, key, &out, func(ctx context.Context) (any, error) {
		return s.repo.List(ctx, filter)
	})
	if err != nil {
		s.warn("resort cache fetch", err)
		return s.repo.List(ctx, filter)
	}
	return out, nil
}

// Get fetches a single resort by ID, active or not.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (Resort, error) {
	return s.repo.FindByID(ctx, id)
}

// Create inserts a new resort and invalidates the listing cache.
func (s *Service) Create(ctx context.Context, input ResortInput) (Resort, error) {
	resort, err := s.repo.Create(ctx, input)
	if err != nil {
		return Resort{}, err
	}
	s.invalidate(ctx)
	return resort, nil
}

// Update replaces a resort's writable fields and invalidates the listing cache.
func (s *Service) Update(ctx context.Context, id uuid.UUID, input ResortInput) (Resort, error) {
	resort, err := s.repo.Update(ctx, id, input)
	if err != nil {
		return Resort{}, err
	}
	s.invalidate(ctx)
	return resort, nil
}

// Delete soft-deletes a resort and invalidates the listing cache.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *Service) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.warn("resort cache invalidate", err)
	}
}

func (s *Service) warn(msg string, err error) {
	if s.logger != nil {
		s.logger.Warn(msg, slog.Any("error", err))
	}
}

func filterKey(filter ListFilter) string {
	amenities := append([]string(nil), filter.Amenities...)
	sort.Strings(amenities)
	return fmt.Sprintf("%s|%s|%g|%g",
		strings.ToLower(filter.Location),
		strings.ToLower(strings.Join(amenities, ",")),
		filter.MinRate,
		filter.MaxRate,
	)
}
