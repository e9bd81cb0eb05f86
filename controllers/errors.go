package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cppla/dailychallenge/services"
	"github.com/cppla/dailychallenge/utils"
)

type errorMapping struct {
	target  error
	status  int
	code    int
	message string
}

// Order matters: the first matching target wins.
var serviceErrors = []errorMapping{
	{services.ErrInvalidChallengeWindow, http.StatusBadRequest, 40031, ""},
	{services.ErrUnknownDifficulty, http.StatusBadRequest, 40034, ""},
	{services.ErrUnknownCategory, http.StatusBadRequest, 40035, ""},
	{utils.ErrPasswordTooLong, http.StatusBadRequest, 40004, ""},
	{services.ErrInvalidCredentials, http.StatusUnauthorized, 40106, ""},
	{services.ErrUserNotFound, http.StatusNotFound, 40410, ""},
	{services.ErrChallengeNotFound, http.StatusNotFound, 40430, ""},
	{services.ErrEmailTaken, http.StatusConflict, 40901, ""},
	{services.ErrUsernameTaken, http.StatusConflict, 40902, ""},
	{services.ErrChallengeNotActive, http.StatusConflict, 40932, ""},
	{services.ErrDuplicateSubmission, http.StatusConflict, 40933, ""},
	{services.ErrChallengeDateTaken, http.StatusConflict, 40934, ""},
	{services.ErrRotationInProgress, http.StatusConflict, 40935, ""},
	{services.ErrStoreUnavailable, http.StatusServiceUnavailable, 50330, "service temporarily unavailable, please retry"},
}

// respondError writes the envelope for a service error.
func respondError(ctx *gin.Context, err error) {
	for _, m := range serviceErrors {
		if errors.Is(err, m.target) {
			msg := m.message
			if msg == "" {
				msg = m.target.Error()
			}
			utils.Error(ctx, m.status, m.code, msg)
			return
		}
	}
	utils.Sugar.Errorf("unhandled error path=%s err=%v", ctx.FullPath(), err)
	utils.Error(ctx, http.StatusInternalServerError, 50000, "internal server error")
}
