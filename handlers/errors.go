package handlers

import (
	"errors"
	"net/http"

	"oneday/middleware"
	"oneday/models"
	"oneday/services/session"
	"oneday/services/user"
	"oneday/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps the error taxonomy onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	var (
		verr     *models.ValidationError
		conflict *models.ConflictError
		ext      *models.ExternalServiceError
		expiry   *models.ExpiryError
	)
	switch {
	case errors.Is(err, models.ErrProfileIncomplete):
		utils.JSONErrorBody(c, http.StatusConflict, utils.ErrorResponse{
			Message:  "프로필을 먼저 완성해주세요",
			Redirect: string(session.ScreenProfileSetup),
		})
	case errors.Is(err, models.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "Not found", err.Error())
	case errors.Is(err, user.ErrUnknownEmail):
		utils.JSONError(c, http.StatusUnauthorized, user.ErrUnknownEmail.Error(), "")
	case errors.Is(err, user.ErrWrongPassword):
		utils.JSONError(c, http.StatusUnauthorized, user.ErrWrongPassword.Error(), "")
	case errors.As(err, &verr):
		utils.JSONErrorBody(c, http.StatusBadRequest, utils.ErrorResponse{Message: verr.Message, Field: verr.Field})
	case errors.As(err, &conflict):
		utils.JSONError(c, http.StatusConflict, conflict.Message, "")
	case errors.As(err, &expiry):
		utils.JSONError(c, http.StatusForbidden, "시간이 만료되었어요", expiry.Error())
	case errors.As(err, &ext):
		getLogger(c).Error("backend failure", zap.String("op", ext.Op), zap.Error(ext.Err))
		utils.JSONError(c, http.StatusBadGateway, "Upstream service failed", ext.Op)
	default:
		getLogger(c).Error("unhandled error", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", "")
	}
}

func badRequest(c *gin.Context, err error) {
	utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
}

// mustSession returns the session attached by the auth middleware.
func mustSession(c *gin.Context) (*session.Session, bool) {
	s, ok := middleware.CurrentSession(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "no session")
	}
	return s, ok
}
