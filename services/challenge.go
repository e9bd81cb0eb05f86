package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/cppla/dailychallenge/models"
)

// NewChallenge describes a challenge to schedule.
type NewChallenge struct {
	Title          string
	Description    string
	Category       string
	Difficulty     string
	ExpectedOutput string
	ActiveDate     time.Time
}

// ChallengeView is a challenge as seen by one user.
type ChallengeView struct {
	Challenge     models.Challenge
	Points        int
	UserSubmitted bool
}

// ChallengeService serves the read side of challenges and their scheduling.
type ChallengeService struct {
	tx    TxManager
	clock Clock
	log   *zap.Logger
}

// NewChallengeService creates a ChallengeService.
func NewChallengeService(tx TxManager, clock Clock, log *zap.Logger) *ChallengeService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ChallengeService{tx: tx, clock: clock, log: log}
}

// Today returns today's active challenge, or nil when none is active.
func (c *ChallengeService) Today(ctx context.Context, userID uuid.UUID) (*ChallengeView, error) {
	st := c.tx.Stores()
	ch, err := st.Challenges.FindByActiveDate(ctx, Today(c.clock))
	if err != nil {
		return nil, err
	}
	if ch == nil || !ch.IsActive {
		return nil, nil
	}
	submitted, err := st.Submissions.Exists(ctx, userID, ch.ID)
	if err != nil {
		return nil, err
	}
	return newChallengeView(*ch, submitted), nil
}

// History lists challenges dated before today, newest first, with the user's status.
func (c *ChallengeService) History(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]ChallengeView, int64, error) {
	st := c.tx.Stores()
	today := Today(c.clock)

	total, err := st.Challenges.CountBefore(ctx, today)
	if err != nil {
		return nil, 0, err
	}
	list, err := st.Challenges.ListBefore(ctx, today, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]uuid.UUID, 0, len(list))
	for _, ch := range list {
		ids = append(ids, ch.ID)
	}
	submitted, err := st.Submissions.SubmittedChallengeIDs(ctx, userID, ids)
	if err != nil {
		return nil, 0, err
	}

	views := make([]ChallengeView, 0, len(list))
	for _, ch := range list {
		views = append(views, *newChallengeView(ch, submitted[ch.ID]))
	}
	return views, total, nil
}

// Create schedules a challenge. A challenge dated today becomes the active one.
func (c *ChallengeService) Create(ctx context.Context, in NewChallenge) (*models.Challenge, error) {
	difficulty, err := ParseDifficulty(in.Difficulty)
	if err != nil {
		return nil, err
	}
	if !models.ValidCategory(in.Category) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, in.Category)
	}

	day := DateOf(in.ActiveDate)
	ch := &models.Challenge{
		Title:          in.Title,
		Description:    in.Description,
		Category:       in.Category,
		Difficulty:     string(difficulty),
		ExpectedOutput: in.ExpectedOutput,
		ActiveDate:     datatypes.Date(day),
		IsActive:       day.Equal(Today(c.clock)),
	}

	err = c.tx.WithinTx(ctx, func(st Stores) error {
		existing, err := st.Challenges.FindByActiveDate(ctx, day)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrChallengeDateTaken
		}
		if ch.IsActive {
			active, err := st.Challenges.ListActive(ctx)
			if err != nil {
				return err
			}
			for _, a := range active {
				if err := st.Challenges.SetActive(ctx, a.ID, false); err != nil {
					return err
				}
			}
		}
		if err := st.Challenges.Create(ctx, ch); err != nil {
			if errors.Is(err, ErrConflict) {
				return ErrChallengeDateTaken
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	c.log.Info("challenge scheduled", zap.Stringer("challenge_id", ch.ID), zap.Time("date", day), zap.Bool("active", ch.IsActive))
	return ch, nil
}

func newChallengeView(ch models.Challenge, submitted bool) *ChallengeView {
	v := &ChallengeView{Challenge: ch, UserSubmitted: submitted}
	if d, err := ParseDifficulty(ch.Difficulty); err == nil {
		v.Points, _ = BasePoints(d)
	}
	return v
}

// Seed schedules items on consecutive dates from start, skipping dates that
// already carry a challenge. Items are created in order.
func (c *ChallengeService) Seed(ctx context.Context, items []NewChallenge, start time.Time) ([]models.Challenge, error) {
	day := DateOf(start)
	out := make([]models.Challenge, 0, len(items))
	for _, item := range items {
		for {
			item.ActiveDate = day
			day = day.AddDate(0, 0, 1)
			ch, err := c.Create(ctx, item)
			if errors.Is(err, ErrChallengeDateTaken) {
				continue
			}
			if err != nil {
				return out, err
			}
			out = append(out, *ch)
			break
		}
	}
	return out, nil
}
