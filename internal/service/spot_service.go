package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/safetrip/safetrip/internal/cache"
	"github.com/safetrip/safetrip/internal/domain"
	"github.com/safetrip/safetrip/internal/repository"
)

// SpotService serves catalog reads and admin-side catalog writes. Lookups
// by id go through a redis read-through cache when one is configured.
type SpotService struct {
	spots  repository.SpotRepository
	cache  *cache.Cache
	logger *zap.Logger
}

func NewSpotService(spots repository.SpotRepository, c *cache.Cache, logger *zap.Logger) *SpotService {
	return &SpotService{spots: spots, cache: c, logger: logger}
}

// GetByID resolves a single catalog entry. Cache failures degrade to a
// store read; they are logged, never surfaced.
func (s *SpotService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Spot, error) {
	if s.cache != nil {
		spot, err := s.cache.GetSpot(ctx, id)
		switch {
		case err == nil:
			return spot, nil
		case errors.Is(err, domain.ErrSpotNotFound):
			return nil, domain.ErrSpotNotFound
		case !errors.Is(err, cache.ErrCacheMiss):
			s.logger.Warn("spot cache read failed", zap.Error(err))
		}
	}

	spot, err := s.spots.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if s.cache != nil {
				if cerr := s.cache.SetSpotMissing(ctx, id); cerr != nil {
					s.logger.Warn("spot cache write failed", zap.Error(cerr))
				}
			}
			return nil, domain.ErrSpotNotFound
		}
		return nil, err
	}

	if s.cache != nil {
		if cerr := s.cache.SetSpot(ctx, spot); cerr != nil {
			s.logger.Warn("spot cache write failed", zap.Error(cerr))
		}
	}
	return spot, nil
}

// GetByIDs resolves a batch of spots into a map keyed by id. Missing ids are
// simply absent from the result.
func (s *SpotService) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.Spot, error) {
	spots, err := s.spots.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := make(map[uuid.UUID]*domain.Spot, len(spots))
	for _, spot := range spots {
		result[spot.ID] = spot
	}
	return result, nil
}

// List returns active catalog entries newest-first, optionally filtered.
func (s *SpotService) List(ctx context.Context, search, category string) ([]*domain.Spot, error) {
	return s.spots.List(ctx, repository.SpotFilter{
		Search:     strings.TrimSpace(search),
		Category:   strings.TrimSpace(category),
		ActiveOnly: true,
	})
}

type CreateSpotInput struct {
	Title       string
	Description string
	Location    string
	Category    string
	Price       float64
	Images      []string
	Amenities   []string
	Tags        []string
	Duration    string
	MaxCapacity int
	Featured    bool
}

// Create adds a catalog entry on behalf of an administrator.
func (s *SpotService) Create(ctx context.Context, identity *domain.Identity, input CreateSpotInput) (*domain.Spot, error) {
	if identity == nil {
		return nil, domain.ErrSessionInvalid
	}

	title := strings.TrimSpace(input.Title)
	if len(title) < 3 || len(title) > 100 {
		return nil, domain.Validationf("title must be between 3 and 100 characters")
	}
	description := strings.TrimSpace(input.Description)
	if len(description) < 10 || len(description) > 1000 {
		return nil, domain.Validationf("description must be between 10 and 1000 characters")
	}
	location := strings.TrimSpace(input.Location)
	if len(location) < 3 || len(location) > 100 {
		return nil, domain.Validationf("location must be between 3 and 100 characters")
	}
	if input.Price < 0 || input.Price > 100000 {
		return nil, domain.Validationf("price must be between 0 and 100000")
	}

	now := time.Now()
	createdBy := identity.AccountID
	spot := &domain.Spot{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		Location:    location,
		Category:    strings.TrimSpace(input.Category),
		Price:       input.Price,
		Images:      input.Images,
		Amenities:   input.Amenities,
		Tags:        input.Tags,
		Duration:    strings.TrimSpace(input.Duration),
		MaxCapacity: input.MaxCapacity,
		Featured:    input.Featured,
		IsActive:    true,
		CreatedBy:   &createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.spots.Create(ctx, spot); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if cerr := s.cache.InvalidateSpot(ctx, spot.ID); cerr != nil {
			s.logger.Warn("spot cache invalidation failed", zap.Error(cerr))
		}
	}
	return spot, nil
}
