package handlers

import (
	"net/http"
	"strconv"

	"oneday/models"
	"oneday/services/session"

	"github.com/gin-gonic/gin"
)

func (hb *HandlerBundle) GetScreen(c *gin.Context) {
	s, ok := mustSession(c)
	if !ok {
		return
	}
	v, err := s.View(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (hb *HandlerBundle) Navigate(c *gin.Context) {
	s, ok := mustSession(c)
	if !ok {
		return
	}
	var t session.Target
	if err := c.ShouldBindJSON(&t); err != nil {
		badRequest(c, err)
		return
	}
	if _, err := s.Navigate(t); err != nil {
		respondError(c, err)
		return
	}
	hb.GetScreen(c)
}

func (hb *HandlerBundle) UpdateProfile(c *gin.Context) {
	s, ok := mustSession(c)
	if !ok {
		return
	}
	var req models.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	p, err := s.UpdateProfile(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": p, "screen": s.Screen().Name()})
}

func (hb *HandlerBundle) ListFavorites(c *gin.Context) {
	s, ok := mustSession(c)
	if !ok {
		return
	}
	favs, err := s.Favorites(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": favs})
}

func (hb *HandlerBundle) ToggleFavorite(c *gin.Context) {
	s, ok := mustSession(c)
	if !ok {
		return
	}
	on, err := s.ToggleFavorite(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": c.Param("id"), "favorite": on})
}

func (hb *HandlerBundle) ListCoupons(c *gin.Context) {
	s, ok := mustSession(c)
	if !ok {
		return
	}
	maxPrice := 0
	if raw := c.Query("maxPrice"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			respondError(c, models.NewValidationError("maxPrice", "금액이 올바르지 않습니다"))
			return
		}
		maxPrice = n
	}
	coupons, err := s.Coupons(c.Request.Context(), maxPrice)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"coupons": coupons})
}
