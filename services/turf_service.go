package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/omondi3768/turf_booking/models"
)

const (
	turfCachePrefix = "turfs:"
	turfCacheTTL    = 5 * time.Minute
)

// TurfService is the turf directory. The redis client is an optional
// side-channel for listing caching; with a nil client every read goes to
// the database and invalidation is a no-op, which only costs freshness.
type TurfService struct {
	db    *gorm.DB
	cache *redis.Client
	log   zerolog.Logger
}

func NewTurfService(db *gorm.DB, cache *redis.Client, log zerolog.Logger) *TurfService {
	return &TurfService{db: db, cache: cache, log: log.With().Str("component", "turfs").Logger()}
}

// TurfPage is a paginated turf listing.
type TurfPage struct {
	Turfs       []models.Turf `json:"turfs"`
	TotalPages  int           `json:"total_pages"`
	CurrentPage int           `json:"current_page"`
}

// ListTurfs returns active turfs newest first, served from the listing
// cache when possible.
func (s *TurfService) ListTurfs(ctx context.Context, page, limit int) (*TurfPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	cacheKey := fmt.Sprintf("%s%d:%d", turfCachePrefix, page, limit)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var result TurfPage
			if json.Unmarshal([]byte(cached), &result) == nil {
				return &result, nil
			}
		}
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(&models.Turf{}).Where("is_active = ?", true).Count(&total).Error; err != nil {
		return nil, err
	}

	var turfs []models.Turf
	err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&turfs).Error
	if err != nil {
		return nil, err
	}

	result := &TurfPage{
		Turfs:       turfs,
		TotalPages:  int(math.Ceil(float64(total) / float64(limit))),
		CurrentPage: page,
	}

	if s.cache != nil {
		if payload, err := json.Marshal(result); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, turfCacheTTL).Err(); err != nil {
				s.log.Warn().Err(err).Msg("failed to cache turf listing")
			}
		}
	}
	return result, nil
}

// GetTurfByID resolves a turf or reports ErrTurfNotFound.
func (s *TurfService) GetTurfByID(ctx context.Context, turfID uuid.UUID) (*models.Turf, error) {
	var turf models.Turf
	if err := s.db.WithContext(ctx).First(&turf, "id = ?", turfID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTurfNotFound
		}
		return nil, err
	}
	return &turf, nil
}

// CreateTurf stores a new listing and invalidates cached pages.
func (s *TurfService) CreateTurf(ctx context.Context, turf *models.Turf) error {
	if err := s.db.WithContext(ctx).Create(turf).Error; err != nil {
		return err
	}
	s.InvalidateListings(ctx)
	return nil
}

// UpdateTurf applies field updates to an existing turf.
func (s *TurfService) UpdateTurf(ctx context.Context, turfID uuid.UUID, updates map[string]interface{}) (*models.Turf, error) {
	turf, err := s.GetTurfByID(ctx, turfID)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(turf).Updates(updates).Error; err != nil {
		return nil, err
	}
	s.InvalidateListings(ctx)
	return s.GetTurfByID(ctx, turfID)
}

// DeactivateTurf hides a turf from listings and new bookings. Historical
// bookings and grids stay untouched.
func (s *TurfService) DeactivateTurf(ctx context.Context, turfID uuid.UUID) error {
	res := s.db.WithContext(ctx).Model(&models.Turf{}).Where("id = ?", turfID).Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrTurfNotFound
	}
	s.InvalidateListings(ctx)
	return nil
}

// RecalculateRating re-derives the turf's average rating from all reviewed
// bookings: arithmetic mean rounded to one decimal, 0 when no review
// exists. Cached listings are invalidated so the new rating shows up.
func (s *TurfService) RecalculateRating(ctx context.Context, turfID uuid.UUID) (float64, error) {
	var result struct {
		Avg *float64
	}
	err := s.db.WithContext(ctx).Model(&models.Booking{}).
		Select("AVG(rating) as avg").
		Where("turf_id = ? AND rating IS NOT NULL", turfID).
		Scan(&result).Error
	if err != nil {
		return 0, err
	}

	average := 0.0
	if result.Avg != nil {
		average = math.Round(*result.Avg*10) / 10
	}

	err = s.db.WithContext(ctx).Model(&models.Turf{}).
		Where("id = ?", turfID).
		Update("average_rating", average).Error
	if err != nil {
		return 0, err
	}

	s.InvalidateListings(ctx)
	return average, nil
}

// InvalidateListings drops every cached turf listing page. Errors are
// logged, never propagated: a stale cache is a freshness problem, not a
// correctness one.
func (s *TurfService) InvalidateListings(ctx context.Context) {
	if s.cache == nil {
		return
	}
	iter := s.cache.Scan(ctx, 0, turfCachePrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := s.cache.Del(ctx, iter.Val()).Err(); err != nil {
			s.log.Warn().Err(err).Str("key", iter.Val()).Msg("failed to invalidate cache key")
		}
	}
	if err := iter.Err(); err != nil {
		s.log.Warn().Err(err).Msg("cache invalidation scan failed")
	}
}
