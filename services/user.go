package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/cppla/dailychallenge/models"
)

// Profile is a user with derived statistics.
type Profile struct {
	User             models.User
	Rank             int64
	TotalSubmissions int64
}

// LeaderboardEntry is one ranked row of the leaderboard.
type LeaderboardEntry struct {
	Rank          int       `json:"rank"`
	ID            uuid.UUID `json:"id"`
	Username      string    `json:"username"`
	TotalPoints   int       `json:"total_points"`
	CurrentStreak int       `json:"current_streak"`
	LongestStreak int       `json:"longest_streak"`
}

// UserService exposes read-only user statistics.
type UserService struct {
	tx TxManager
}

// NewUserService creates a UserService.
func NewUserService(tx TxManager) *UserService {
	return &UserService{tx: tx}
}

// Profile loads the user with rank (1 + users holding more points) and submission count.
func (u *UserService) Profile(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	st := u.tx.Stores()
	user, err := st.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	above, err := st.Users.CountWithMorePoints(ctx, user.TotalPoints)
	if err != nil {
		return nil, err
	}
	count, err := st.Submissions.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Profile{User: *user, Rank: above + 1, TotalSubmissions: count}, nil
}

// Leaderboard ranks users by points, then current streak, then longest streak.
func (u *UserService) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	users, err := u.tx.Stores().Users.Leaderboard(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]LeaderboardEntry, 0, len(users))
	for i, usr := range users {
		out = append(out, LeaderboardEntry{
			Rank:          i + 1,
			ID:            usr.ID,
			Username:      usr.Username,
			TotalPoints:   usr.TotalPoints,
			CurrentStreak: usr.CurrentStreak,
			LongestStreak: usr.LongestStreak,
		})
	}
	return out, nil
}

// Submissions lists the user's most recent submissions.
func (u *UserService) Submissions(ctx context.Context, userID uuid.UUID, limit int) ([]models.Submission, error) {
	return u.tx.Stores().Submissions.ListByUser(ctx, userID, limit)
}
