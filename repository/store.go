// Package repository implements the service store contracts on top of GORM.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/cppla/dailychallenge/services"
)

// GormStore binds the repositories to a *gorm.DB.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a store. db should be opened with TranslateError enabled.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Stores returns repositories bound to the plain connection pool.
func (s *GormStore) Stores() services.Stores {
	return bind(s.db)
}

// WithinTx runs fn inside one database transaction.
func (s *GormStore) WithinTx(ctx context.Context, fn func(st services.Stores) error) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(bind(tx))
	})
	if err == nil {
		return nil
	}
	if isDomainError(err) {
		return err
	}
	// Begin/commit failures surface here unwrapped.
	return unavailable(err)
}

func bind(db *gorm.DB) services.Stores {
	return services.Stores{
		Challenges:  &ChallengeRepository{db: db},
		Submissions: &SubmissionRepository{db: db},
		Users:       &UserRepository{db: db},
	}
}

// isDomainError reports whether err already belongs to the service error taxonomy.
func isDomainError(err error) bool {
	for _, target := range []error{
		services.ErrStoreUnavailable,
		services.ErrInvalidChallengeWindow,
		services.ErrChallengeNotActive,
		services.ErrDuplicateSubmission,
		services.ErrChallengeNotFound,
		services.ErrUserNotFound,
		services.ErrUnknownDifficulty,
		services.ErrUnknownCategory,
		services.ErrChallengeDateTaken,
		services.ErrEmailTaken,
		services.ErrUsernameTaken,
		services.ErrConflict,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %v", services.ErrStoreUnavailable, err)
}

// isUniqueViolation recognises duplicate-key errors from every supported driver,
// translated or not.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "duplicate key value")
}

func notFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
