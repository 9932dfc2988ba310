package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/domain"
	"github.com/jafarshop/storefront/internal/service"
)

const maxEventLimit = 200

// HandleListAdminEvents handles GET /v1/admin/events
func HandleListAdminEvents(events *service.EventRecorder, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := 0
		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
				return
			}
			if n > maxEventLimit {
				n = maxEventLimit
			}
			limit = n
		}

		list, err := events.Recent(c.Request.Context(), limit, domain.AdminEventType(c.Query("type")))
		if err != nil {
			writeServiceError(c, err, logger, "list_events")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"items": list,
			"count": len(list),
		})
	}
}

// HandleListProductEvents handles GET /v1/admin/products/:id/events
func HandleListProductEvents(events *service.EventRecorder, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseProductID(c)
		if !ok {
			return
		}

		list, err := events.ForProduct(c.Request.Context(), id)
		if err != nil {
			writeServiceError(c, err, logger, "product_events")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"product_id": id,
			"items":      list,
			"count":      len(list),
		})
	}
}
