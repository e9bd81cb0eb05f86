package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/cppla/dailychallenge/models"
)

// SubmissionPayload is the user-provided part of a submission.
type SubmissionPayload struct {
	Content        string
	SubmissionType string
	Completed      bool
}

// SubmitHook runs after a submission has been committed.
type SubmitHook func(ctx context.Context, sub *models.Submission)

// SubmissionService accepts answers and maintains streaks and points.
type SubmissionService struct {
	tx    TxManager
	clock Clock
	log   *zap.Logger
	hooks []SubmitHook
}

// NewSubmissionService creates a SubmissionService. A nil logger disables logging.
func NewSubmissionService(tx TxManager, clock Clock, log *zap.Logger) *SubmissionService {
	if log == nil {
		log = zap.NewNop()
	}
	return &SubmissionService{tx: tx, clock: clock, log: log}
}

// OnSubmitted registers a hook called after each successful commit.
func (s *SubmissionService) OnSubmitted(h SubmitHook) {
	s.hooks = append(s.hooks, h)
}

// Submit records the user's answer to the challenge dated today. The checks,
// the streak/points update and the insert commit together or not at all.
func (s *SubmissionService) Submit(ctx context.Context, userID, challengeID uuid.UUID, payload SubmissionPayload, today time.Time) (*models.Submission, error) {
	today = DateOf(today)
	var created *models.Submission

	err := s.tx.WithinTx(ctx, func(st Stores) error {
		user, err := st.Users.FindByIDForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return ErrUserNotFound
		}

		challenge, err := st.Challenges.FindByID(ctx, challengeID)
		if err != nil {
			return err
		}
		if challenge == nil {
			return ErrChallengeNotFound
		}

		if err := checkSubmittable(ctx, st.Submissions, user.ID, challenge, today); err != nil {
			return err
		}

		difficulty, err := ParseDifficulty(challenge.Difficulty)
		if err != nil {
			return err
		}
		streak := NextStreak(user.LastCompleted(), today, user.CurrentStreak)
		points, err := AwardPoints(difficulty, streak)
		if err != nil {
			return err
		}

		sub := &models.Submission{
			UserID:         user.ID,
			ChallengeID:    challenge.ID,
			Content:        payload.Content,
			SubmissionType: payload.SubmissionType,
			Completed:      payload.Completed,
			PointsAwarded:  points,
			SubmittedAt:    s.clock.Now().UTC(),
		}
		if sub.SubmissionType == "" {
			sub.SubmissionType = models.SubmissionText
		}
		if err := st.Submissions.Insert(ctx, sub); err != nil {
			return err
		}

		ApplyCompletion(user, today, streak, points)
		if err := st.Users.Update(ctx, user); err != nil {
			return err
		}

		created = sub
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrStoreUnavailable) {
			s.log.Error("submission failed", zap.Stringer("user_id", userID), zap.Stringer("challenge_id", challengeID), zap.Error(err))
		} else {
			s.log.Debug("submission rejected", zap.Stringer("user_id", userID), zap.Stringer("challenge_id", challengeID), zap.Error(err))
		}
		return nil, err
	}

	s.log.Info("submission accepted",
		zap.Stringer("user_id", userID),
		zap.Stringer("challenge_id", challengeID),
		zap.Int("points", created.PointsAwarded),
	)
	for _, h := range s.hooks {
		h(ctx, created)
	}
	return created, nil
}

// checkSubmittable applies the preconditions in order; the first failure wins.
func checkSubmittable(ctx context.Context, subs SubmissionStore, userID uuid.UUID, c *models.Challenge, today time.Time) error {
	if !DateOf(c.Day()).Equal(today) {
		return ErrInvalidChallengeWindow
	}
	if !c.IsActive {
		return ErrChallengeNotActive
	}
	exists, err := subs.Exists(ctx, userID, c.ID)
	if err != nil {
		return err
	}
	if exists {
		return ErrDuplicateSubmission
	}
	return nil
}

// ApplyCompletion moves u to the state after completing a challenge on day.
func ApplyCompletion(u *models.User, day time.Time, streak, points int) {
	u.CurrentStreak = streak
	if streak > u.LongestStreak {
		u.LongestStreak = streak
	}
	u.TotalPoints += points
	d := datatypes.Date(DateOf(day))
	u.LastCompletedDate = &d
}
