package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/cppla/dailychallenge/models"
	"github.com/cppla/dailychallenge/services"
)

// ChallengeRepository stores challenges.
type ChallengeRepository struct {
	db *gorm.DB
}

func (r *ChallengeRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Challenge, error) {
	var c models.Challenge
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, unavailable(err)
	}
	return &c, nil
}

func (r *ChallengeRepository) FindByActiveDate(ctx context.Context, day time.Time) (*models.Challenge, error) {
	var c models.Challenge
	if err := r.db.WithContext(ctx).Where("active_date = ?", datatypes.Date(services.DateOf(day))).First(&c).Error; err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, unavailable(err)
	}
	return &c, nil
}

func (r *ChallengeRepository) ListActive(ctx context.Context) ([]models.Challenge, error) {
	var list []models.Challenge
	if err := r.db.WithContext(ctx).Where("is_active = ?", true).Find(&list).Error; err != nil {
		return nil, unavailable(err)
	}
	return list, nil
}

func (r *ChallengeRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	if err := r.db.WithContext(ctx).Model(&models.Challenge{}).Where("id = ?", id).Update("is_active", active).Error; err != nil {
		return unavailable(err)
	}
	return nil
}

func (r *ChallengeRepository) Create(ctx context.Context, c *models.Challenge) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		if isUniqueViolation(err) {
			return services.ErrConflict
		}
		return unavailable(err)
	}
	return nil
}

// ListBefore returns challenges dated strictly before day, newest first.
func (r *ChallengeRepository) ListBefore(ctx context.Context, day time.Time, offset, limit int) ([]models.Challenge, error) {
	var list []models.Challenge
	err := r.db.WithContext(ctx).
		Where("active_date < ?", datatypes.Date(services.DateOf(day))).
		Order("active_date DESC").
		Offset(offset).
		Limit(limit).
		Find(&list).Error
	if err != nil {
		return nil, unavailable(err)
	}
	return list, nil
}

func (r *ChallengeRepository) CountBefore(ctx context.Context, day time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Challenge{}).
		Where("active_date < ?", datatypes.Date(services.DateOf(day))).
		Count(&n).Error
	if err != nil {
		return 0, unavailable(err)
	}
	return n, nil
}
