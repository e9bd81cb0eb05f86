package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/cppla/dailychallenge/models"
)

func newChallengeFixture() (*memStore, *ChallengeService) {
	store := newMemStore()
	return store, NewChallengeService(store, FixedClock{At: day("2024-01-06").Add(12 * time.Hour)}, nil)
}

func TestChallengeToday(t *testing.T) {
	store, svc := newChallengeFixture()
	ctx := context.Background()
	uid := uuid.New()

	view, err := svc.Today(ctx, uid)
	require.NoError(t, err)
	assert.Nil(t, view, "nothing scheduled")

	id := store.seedChallenge(models.Challenge{Title: "t", Difficulty: "hard", ActiveDate: datatypes.Date(day("2024-01-06"))})
	view, err = svc.Today(ctx, uid)
	require.NoError(t, err)
	assert.Nil(t, view, "scheduled but not yet rotated in")

	require.NoError(t, store.Stores().Challenges.SetActive(ctx, id, true))
	view, err = svc.Today(ctx, uid)
	require.NoError(t, err)
	require.NotNil(t, view)
	assert.Equal(t, 30, view.Points)
	assert.False(t, view.UserSubmitted)

	require.NoError(t, store.Stores().Submissions.Insert(ctx, &models.Submission{UserID: uid, ChallengeID: id}))
	view, err = svc.Today(ctx, uid)
	require.NoError(t, err)
	assert.True(t, view.UserSubmitted)
}

func TestChallengeHistory(t *testing.T) {
	store, svc := newChallengeFixture()
	ctx := context.Background()
	uid := uuid.New()

	ids := map[string]uuid.UUID{}
	for _, d := range []string{"2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05", "2024-01-06", "2024-01-07"} {
		ids[d] = store.seedChallenge(models.Challenge{Title: d, Difficulty: "easy", ActiveDate: datatypes.Date(day(d))})
	}
	require.NoError(t, store.Stores().Submissions.Insert(ctx, &models.Submission{UserID: uid, ChallengeID: ids["2024-01-04"]}))

	page, total, err := svc.History(ctx, uid, 1, 3)
	require.NoError(t, err)
	assert.EqualValues(t, 4, total, "today and future are excluded")
	require.Len(t, page, 3)
	assert.Equal(t, "2024-01-05", page[0].Challenge.Title)
	assert.Equal(t, "2024-01-04", page[1].Challenge.Title)
	assert.True(t, page[1].UserSubmitted)
	assert.False(t, page[0].UserSubmitted)
	assert.Equal(t, 10, page[0].Points)

	page, _, err = svc.History(ctx, uid, 2, 3)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "2024-01-02", page[0].Challenge.Title)
}

func TestChallengeCreate(t *testing.T) {
	store, svc := newChallengeFixture()
	ctx := context.Background()
	old := store.seedChallenge(models.Challenge{Title: "old", Difficulty: "easy", ActiveDate: datatypes.Date(day("2024-01-05")), IsActive: true})

	future, err := svc.Create(ctx, NewChallenge{Title: "f", Description: "d", Category: "coding", Difficulty: "Hard", ActiveDate: day("2024-01-09")})
	require.NoError(t, err)
	assert.False(t, future.IsActive)
	assert.Equal(t, "hard", future.Difficulty)
	assert.True(t, store.challenge(old).IsActive)

	today, err := svc.Create(ctx, NewChallenge{Title: "t", Description: "d", Category: "logic", Difficulty: "easy", ActiveDate: day("2024-01-06")})
	require.NoError(t, err)
	assert.True(t, today.IsActive)
	assert.False(t, store.challenge(old).IsActive, "creating today's challenge takes over the active flag")

	_, err = svc.Create(ctx, NewChallenge{Title: "dup", Description: "d", Category: "logic", Difficulty: "easy", ActiveDate: day("2024-01-09")})
	assert.ErrorIs(t, err, ErrChallengeDateTaken)

	_, err = svc.Create(ctx, NewChallenge{Title: "x", Description: "d", Category: "logic", Difficulty: "brutal", ActiveDate: day("2024-02-01")})
	assert.ErrorIs(t, err, ErrUnknownDifficulty)

	_, err = svc.Create(ctx, NewChallenge{Title: "x", Description: "d", Category: "cooking", Difficulty: "easy", ActiveDate: day("2024-02-01")})
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestChallengeSeedSkipsTakenDates(t *testing.T) {
	store, svc := newChallengeFixture()
	store.seedChallenge(models.Challenge{Title: "taken", Difficulty: "easy", ActiveDate: datatypes.Date(day("2024-01-08"))})

	items := []NewChallenge{
		{Title: "a", Description: "d", Category: "logic", Difficulty: "easy"},
		{Title: "b", Description: "d", Category: "logic", Difficulty: "medium"},
		{Title: "c", Description: "d", Category: "life", Difficulty: "hard"},
	}
	created, err := svc.Seed(context.Background(), items, day("2024-01-07"))
	require.NoError(t, err)
	require.Len(t, created, 3)

	var got []string
	for _, c := range created {
		got = append(got, c.Title+"@"+c.Day().Format("2006-01-02"))
	}
	assert.Equal(t, []string{"a@2024-01-07", "b@2024-01-09", "c@2024-01-10"}, got)
}
