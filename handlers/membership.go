package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (hb *HandlerBundle) GetMembership(c *gin.Context) {
	s, ok := mustSession(c)
	if !ok {
		return
	}
	m, err := s.ActiveMembership(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"active": m != nil, "membership": m})
}

type purchaseRequest struct {
	PlanID   string `json:"planId" binding:"required"`
	CouponID string `json:"couponId"`
}

func (hb *HandlerBundle) PurchaseMembership(c *gin.Context) {
	s, ok := mustSession(c)
	if !ok {
		return
	}
	var req purchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	m, err := s.PurchaseMembership(c.Request.Context(), req.PlanID, req.CouponID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

func (hb *HandlerBundle) CancelMembership(c *gin.Context) {
	s, ok := mustSession(c)
	if !ok {
		return
	}
	if err := s.CancelMembership(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
