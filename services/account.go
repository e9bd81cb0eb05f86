package services

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/cppla/dailychallenge/models"
	"github.com/cppla/dailychallenge/utils"
)

// AccountService registers and authenticates users.
type AccountService struct {
	tx  TxManager
	log *zap.Logger
}

// NewAccountService creates an AccountService.
func NewAccountService(tx TxManager, log *zap.Logger) *AccountService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AccountService{tx: tx, log: log}
}

// Register creates a user with zeroed streak state.
func (a *AccountService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	username = strings.TrimSpace(username)

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &models.User{Username: username, Email: email, PasswordHash: hash}

	err = a.tx.WithinTx(ctx, func(st Stores) error {
		if u, err := st.Users.FindByEmail(ctx, email); err != nil {
			return err
		} else if u != nil {
			return ErrEmailTaken
		}
		if u, err := st.Users.FindByUsername(ctx, username); err != nil {
			return err
		} else if u != nil {
			return ErrUsernameTaken
		}
		if err := st.Users.Create(ctx, user); err != nil {
			if errors.Is(err, ErrConflict) {
				return ErrUsernameTaken
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	a.log.Info("user registered", zap.Stringer("user_id", user.ID), zap.String("username", user.Username))
	return user, nil
}

// Authenticate checks credentials and returns the matching user.
func (a *AccountService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := a.tx.Stores().Users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if user == nil || !utils.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
