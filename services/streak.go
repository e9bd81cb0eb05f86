package services

import (
	"fmt"
	"strings"
	"time"
)

// Difficulty is the closed set of challenge difficulties.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

const (
	// StreakBonusThreshold is the streak length from which the bonus applies.
	StreakBonusThreshold = 7
	// StreakBonus is the flat bonus added once the threshold is reached.
	StreakBonus = 5
)

// ParseDifficulty maps a stored or requested value onto Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(s))); d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return d, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDifficulty, s)
}

// BasePoints returns the points for completing a challenge of difficulty d
// without any streak bonus.
func BasePoints(d Difficulty) (int, error) {
	switch d {
	case DifficultyEasy:
		return 10, nil
	case DifficultyMedium:
		return 20, nil
	case DifficultyHard:
		return 30, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDifficulty, string(d))
}

// AwardPoints returns the points for a completion that leaves the user at streakAfter.
func AwardPoints(d Difficulty, streakAfter int) (int, error) {
	base, err := BasePoints(d)
	if err != nil {
		return 0, err
	}
	if streakAfter >= StreakBonusThreshold {
		return base + StreakBonus, nil
	}
	return base, nil
}

// NextStreak computes the streak after completing a challenge on submissionDate.
// Both dates are compared as UTC calendar days.
func NextStreak(lastCompleted *time.Time, submissionDate time.Time, currentStreak int) int {
	if lastCompleted == nil {
		return 1
	}
	last := DateOf(*lastCompleted)
	day := DateOf(submissionDate)
	switch {
	case last.Equal(day.AddDate(0, 0, -1)):
		return currentStreak + 1
	case last.Equal(day):
		// Same day: unreachable while (user, challenge) is unique.
		return currentStreak
	default:
		return 1
	}
}
