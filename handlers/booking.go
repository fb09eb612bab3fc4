package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type bookRequest struct {
	ListingID string `json:"listingId" binding:"required"`
	SlotID    string `json:"slotId" binding:"required"`
	CouponID  string `json:"couponId"`
}

func (hb *HandlerBundle) ListBookings(c *gin.Context) {
	s, ok := mustSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.Bookings())
}

func (hb *HandlerBundle) Book(c *gin.Context) {
	s, ok := mustSession(c)
	if !ok {
		return
	}
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	b, err := s.Book(c.Request.Context(), req.ListingID, req.SlotID, req.CouponID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (hb *HandlerBundle) CancelBooking(c *gin.Context) {
	s, ok := mustSession(c)
	if !ok {
		return
	}
	b, err := s.CancelBooking(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (hb *HandlerBundle) CompleteBooking(c *gin.Context) {
	s, ok := mustSession(c)
	if !ok {
		return
	}
	b, err := s.CompleteBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}
