package handlers

import (
	"net/http"

	"oneday/middleware"
	"oneday/models"
	"oneday/services/user"

	"github.com/gin-gonic/gin"
)

func (hb *HandlerBundle) SignUp(c *gin.Context) {
	var req user.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	resp, err := hb.Users.SignUp(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

type signInRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (hb *HandlerBundle) SignIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	resp, err := hb.Users.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (hb *HandlerBundle) StartDemo(c *gin.Context) {
	resp, err := hb.Users.StartDemo(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (hb *HandlerBundle) SignOut(c *gin.Context) {
	s, ok := mustSession(c)
	if !ok {
		return
	}
	if err := hb.Users.SignOut(c.Request.Context(), c.GetString(middleware.TokenKey), s.ID()); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type phoneRequest struct {
	Phone string `json:"phone" binding:"required"`
	Code  string `json:"code"`
}

func (hb *HandlerBundle) SendVerificationCode(c *gin.Context) {
	var req phoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := hb.Users.SendVerificationCode(c.Request.Context(), req.Phone); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"sent": true})
}

func (hb *HandlerBundle) VerifyCode(c *gin.Context) {
	var req phoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := hb.Users.VerifyCode(c.Request.Context(), req.Phone, req.Code); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"verified": true})
}

// CheckNickname is served publicly and under the session group. With a
// session, the caller's own nickname is reported available.
func (hb *HandlerBundle) CheckNickname(c *gin.Context) {
	nickname := c.Query("nickname")
	var callerID string
	if s, ok := middleware.CurrentSession(c); ok {
		callerID = s.UserID()
	}
	available, err := hb.Users.CheckNicknameAvailable(c.Request.Context(), nickname, callerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"nickname": nickname, "available": available})
}

func (hb *HandlerBundle) UpdateFCMToken(c *gin.Context) {
	s, ok := mustSession(c)
	if !ok {
		return
	}
	var req struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if s.Demo() {
		respondError(c, models.NewValidationError("token", "체험 모드에서는 알림을 받을 수 없어요"))
		return
	}
	if err := hb.Users.UpdateFCMToken(c.Request.Context(), s.UserID(), req.Token); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
