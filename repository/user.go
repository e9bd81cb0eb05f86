package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cppla/dailychallenge/models"
	"github.com/cppla/dailychallenge/services"
)

// UserRepository stores users.
type UserRepository struct {
	db *gorm.DB
}

func (r *UserRepository) first(ctx context.Context, db *gorm.DB, query string, arg any) (*models.User, error) {
	var u models.User
	if err := db.WithContext(ctx).Where(query, arg).First(&u).Error; err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, unavailable(err)
	}
	return &u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return r.first(ctx, r.db, "id = ?", id)
}

func (r *UserRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return r.first(ctx, r.db.Clauses(clause.Locking{Strength: "UPDATE"}), "id = ?", id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.first(ctx, r.db, "email = ?", email)
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.first(ctx, r.db, "username = ?", username)
}

func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if isUniqueViolation(err) {
			return services.ErrConflict
		}
		return unavailable(err)
	}
	return nil
}

// Update writes the streak and points columns of u.
func (r *UserRepository) Update(ctx context.Context, u *models.User) error {
	err := r.db.WithContext(ctx).Model(u).
		Select("current_streak", "longest_streak", "total_points", "last_completed_date", "updated_at").
		Updates(u).Error
	if err != nil {
		return unavailable(err)
	}
	return nil
}

func (r *UserRepository) Leaderboard(ctx context.Context, limit int) ([]models.User, error) {
	var list []models.User
	err := r.db.WithContext(ctx).
		Order("total_points DESC").
		Order("current_streak DESC").
		Order("longest_streak DESC").
		Order("created_at ASC").
		Limit(limit).
		Find(&list).Error
	if err != nil {
		return nil, unavailable(err)
	}
	return list, nil
}

func (r *UserRepository) CountWithMorePoints(ctx context.Context, points int) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Where("total_points > ?", points).Count(&n).Error; err != nil {
		return 0, unavailable(err)
	}
	return n, nil
}
