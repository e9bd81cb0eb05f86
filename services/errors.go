package services

import "errors"

// Core error kinds. Callers match them with errors.Is.
var (
	// ErrInvalidChallengeWindow means the challenge is not dated today.
	ErrInvalidChallengeWindow = errors.New("cannot submit for past or future challenges")
	// ErrChallengeNotActive means today's challenge has not been activated by rotation.
	ErrChallengeNotActive = errors.New("challenge is not active")
	// ErrDuplicateSubmission means the user already answered this challenge.
	ErrDuplicateSubmission = errors.New("you have already submitted for this challenge")
	// ErrStoreUnavailable wraps every persistence failure.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrNoChallengeForDate is logged by rotation when no challenge is configured.
	ErrNoChallengeForDate = errors.New("no challenge configured for date")

	ErrChallengeNotFound  = errors.New("challenge not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrUnknownDifficulty  = errors.New("unknown difficulty")
	ErrUnknownCategory    = errors.New("unknown category")
	ErrChallengeDateTaken = errors.New("a challenge already exists for this date")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

var (
	// ErrConflict is returned by stores when a unique constraint rejects a write.
	ErrConflict = errors.New("conflicting record already exists")
	// ErrRotationInProgress means another rotation holds the lock.
	ErrRotationInProgress = errors.New("rotation already in progress")
)
