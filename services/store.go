package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/cppla/dailychallenge/models"
)

// ChallengeStore persists challenges. Lookups return (nil, nil) when nothing matches.
type ChallengeStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Challenge, error)
	FindByActiveDate(ctx context.Context, day time.Time) (*models.Challenge, error)
	ListActive(ctx context.Context) ([]models.Challenge, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	Create(ctx context.Context, c *models.Challenge) error
	ListBefore(ctx context.Context, day time.Time, offset, limit int) ([]models.Challenge, error)
	CountBefore(ctx context.Context, day time.Time) (int64, error)
}

// SubmissionStore persists submissions. Insert reports a (user, challenge)
// uniqueness violation as ErrDuplicateSubmission.
type SubmissionStore interface {
	Exists(ctx context.Context, userID, challengeID uuid.UUID) (bool, error)
	Insert(ctx context.Context, s *models.Submission) error
	FindByUserAndChallenge(ctx context.Context, userID, challengeID uuid.UUID) (*models.Submission, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.Submission, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	SubmittedChallengeIDs(ctx context.Context, userID uuid.UUID, challengeIDs []uuid.UUID) (map[uuid.UUID]bool, error)
}

// UserStore persists users and their streak state.
type UserStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	// FindByIDForUpdate reads the user and holds its row lock until the transaction ends.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, u *models.User) error
	Update(ctx context.Context, u *models.User) error
	Leaderboard(ctx context.Context, limit int) ([]models.User, error)
	CountWithMorePoints(ctx context.Context, points int) (int64, error)
}

// Stores groups the stores bound to one connection or transaction.
type Stores struct {
	Challenges  ChallengeStore
	Submissions SubmissionStore
	Users       UserStore
}

// TxManager runs units of work atomically. fn's effects commit only if it returns nil.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(s Stores) error) error
	Stores() Stores
}
