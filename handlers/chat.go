package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (hb *HandlerBundle) GetChat(c *gin.Context) {
	s, ok := mustSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.Messages())
}

func (hb *HandlerBundle) SendMessage(c *gin.Context) {
	s, ok := mustSession(c)
	if !ok {
		return
	}
	var req struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	msg, err := s.SendMessage(c.Request.Context(), req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}
