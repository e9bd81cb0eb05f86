package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cppla/dailychallenge/models"
	"github.com/cppla/dailychallenge/services"
)

// SubmissionRepository stores submissions. Rows are never updated.
type SubmissionRepository struct {
	db *gorm.DB
}

func (r *SubmissionRepository) Exists(ctx context.Context, userID, challengeID uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Submission{}).
		Where("user_id = ? AND challenge_id = ?", userID, challengeID).
		Count(&n).Error
	if err != nil {
		return false, unavailable(err)
	}
	return n > 0, nil
}

// Insert creates the submission; the unique (user_id, challenge_id) index is the final authority.
func (r *SubmissionRepository) Insert(ctx context.Context, s *models.Submission) error {
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		if isUniqueViolation(err) {
			return services.ErrDuplicateSubmission
		}
		return unavailable(err)
	}
	return nil
}

func (r *SubmissionRepository) FindByUserAndChallenge(ctx context.Context, userID, challengeID uuid.UUID) (*models.Submission, error) {
	var s models.Submission
	err := r.db.WithContext(ctx).Where("user_id = ? AND challenge_id = ?", userID, challengeID).First(&s).Error
	if err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, unavailable(err)
	}
	return &s, nil
}

func (r *SubmissionRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.Submission, error) {
	var list []models.Submission
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("submitted_at DESC").
		Limit(limit).
		Find(&list).Error
	if err != nil {
		return nil, unavailable(err)
	}
	return list, nil
}

func (r *SubmissionRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Submission{}).Where("user_id = ?", userID).Count(&n).Error; err != nil {
		return 0, unavailable(err)
	}
	return n, nil
}

func (r *SubmissionRepository) SubmittedChallengeIDs(ctx context.Context, userID uuid.UUID, challengeIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	out := make(map[uuid.UUID]bool, len(challengeIDs))
	if len(challengeIDs) == 0 {
		return out, nil
	}
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&models.Submission{}).
		Where("user_id = ? AND challenge_id IN ?", userID, challengeIDs).
		Pluck("challenge_id", &ids).Error
	if err != nil {
		return nil, unavailable(err)
	}
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}
