package handlers

import (
	"net/http"

	"oneday/models"
	"oneday/services/catalog"
	"oneday/services/ledger"

	"github.com/gin-gonic/gin"
)

func (hb *HandlerBundle) ListClasses(c *gin.Context) {
	var q catalog.Query
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"classes": hb.Catalog.Browse(q)})
}

func (hb *HandlerBundle) GetClass(c *gin.Context) {
	l, ok := hb.Catalog.Get(c.Param("id"))
	if !ok {
		respondError(c, models.ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, l)
}

func (hb *HandlerBundle) ListPlans(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"plans": ledger.Plans()})
}
