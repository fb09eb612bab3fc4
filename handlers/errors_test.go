package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"oneday/models"
	"oneday/services/user"
	"oneday/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondErrorStatuses(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", models.NewValidationError("rating", "bad"), http.StatusBadRequest},
		{"conflict", models.NewConflictError("taken"), http.StatusConflict},
		{"external", models.NewExternalServiceError("mongo", errors.New("down")), http.StatusBadGateway},
		{"expiry", &models.ExpiryError{Window: "review"}, http.StatusForbidden},
		{"not found", fmt.Errorf("lookup: %w", models.ErrNotFound), http.StatusNotFound},
		{"profile", models.ErrProfileIncomplete, http.StatusConflict},
		{"credentials", models.NewExternalServiceError("signin", user.ErrWrongPassword), http.StatusUnauthorized},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			respondError(c, tc.err)
			assert.Equal(t, tc.status, w.Code)
		})
	}
}

func TestProfileIncompleteCarriesRedirect(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	respondError(c, models.ErrProfileIncomplete)

	var body utils.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "profileSetup", body.Redirect)
}

func TestValidationErrorCarriesField(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	respondError(c, models.NewValidationError("couponId", "사용할 수 없는 쿠폰입니다"))

	var body utils.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "couponId", body.Field)
	assert.Equal(t, "사용할 수 없는 쿠폰입니다", body.Message)
}
