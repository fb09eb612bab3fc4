package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (hb *HandlerBundle) GetAfterClass(c *gin.Context) {
	s, ok := mustSession(c)
	if !ok {
		return
	}
	v, err := s.AfterClass(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

type reviewRequest struct {
	Rating  int    `json:"rating"`
	Content string `json:"content"`
}

func (hb *HandlerBundle) SubmitReview(c *gin.Context) {
	s, ok := mustSession(c)
	if !ok {
		return
	}
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	r, err := s.SubmitReview(c.Request.Context(), c.Param("id"), req.Rating, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

func (hb *HandlerBundle) Pick(c *gin.Context) {
	s, ok := mustSession(c)
	if !ok {
		return
	}
	var req struct {
		ParticipantID int `json:"participantId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	p, err := s.Pick(c.Param("id"), req.ParticipantID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"picked": p})
}

func (hb *HandlerBundle) ConfirmSelection(c *gin.Context) {
	s, ok := mustSession(c)
	if !ok {
		return
	}
	out, err := s.ConfirmSelection(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"outcome": out, "screen": s.Screen().Name()})
}
