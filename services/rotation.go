package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/cppla/dailychallenge/models"
)

// RotationService flips the active flag to the challenge dated today.
type RotationService struct {
	tx  TxManager
	log *zap.Logger
}

// NewRotationService creates a RotationService. A nil logger disables logging.
func NewRotationService(tx TxManager, log *zap.Logger) *RotationService {
	if log == nil {
		log = zap.NewNop()
	}
	return &RotationService{tx: tx, log: log}
}

// ActivateToday deactivates every active challenge and activates the one dated
// today, in one transaction. It returns nil without error when no challenge is
// configured for today. Calling it again for the same day changes nothing.
func (r *RotationService) ActivateToday(ctx context.Context, today time.Time) (*models.Challenge, error) {
	today = DateOf(today)
	var activated *models.Challenge

	err := r.tx.WithinTx(ctx, func(st Stores) error {
		active, err := st.Challenges.ListActive(ctx)
		if err != nil {
			return err
		}
		for _, c := range active {
			if err := st.Challenges.SetActive(ctx, c.ID, false); err != nil {
				return err
			}
		}

		c, err := st.Challenges.FindByActiveDate(ctx, today)
		if err != nil {
			return err
		}
		if c == nil {
			return nil
		}
		if err := st.Challenges.SetActive(ctx, c.ID, true); err != nil {
			return err
		}
		c.IsActive = true
		activated = c
		return nil
	})
	if err != nil {
		r.log.Error("challenge rotation failed", zap.Time("date", today), zap.Error(err))
		return nil, err
	}

	if activated == nil {
		r.log.Warn("challenge rotation found nothing to activate", zap.Time("date", today), zap.Error(ErrNoChallengeForDate))
		return nil, nil
	}
	r.log.Info("challenge activated", zap.Time("date", today), zap.Stringer("challenge_id", activated.ID), zap.String("title", activated.Title))
	return activated, nil
}
