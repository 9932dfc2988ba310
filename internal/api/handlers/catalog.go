package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/api/middleware"
	"github.com/jafarshop/storefront/internal/catalog"
	"github.com/jafarshop/storefront/internal/config"
	"github.com/jafarshop/storefront/internal/domain"
	"github.com/jafarshop/storefront/pkg/errors"
)

// CatalogResponse is the storefront view rendered for one session
type CatalogResponse struct {
	catalog.Snapshot
	Categories []string `json:"categories"`
}

// SetPageRequest is the body of PUT /v1/catalog/page
type SetPageRequest struct {
	Page *int `json:"page" binding:"required"`
}

// loadedView returns the caller's view, populating it on first use
func loadedView(c *gin.Context, logger *zap.Logger) (*catalog.View, bool) {
	view, ok := middleware.GetViewFromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session unavailable"})
		return nil, false
	}
	if err := view.EnsureLoaded(c.Request.Context()); err != nil {
		logger.Warn("Initial catalog load failed", sessionField(c), zap.Error(err))
	}
	return view, true
}

func sessionField(c *gin.Context) zap.Field {
	id, _ := middleware.GetSessionIDFromContext(c)
	return zap.String("session_id", id)
}

func renderCatalog(c *gin.Context, cfg *config.Config, view *catalog.View) {
	c.JSON(http.StatusOK, CatalogResponse{
		Snapshot:   view.Snapshot(),
		Categories: cfg.Catalog.Categories,
	})
}

// HandleGetCatalog handles GET /v1/catalog
func HandleGetCatalog(cfg *config.Config, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		view, ok := loadedView(c, logger)
		if !ok {
			return
		}
		renderCatalog(c, cfg, view)
	}
}

// HandleSetCriteria handles PATCH /v1/catalog/criteria
func HandleSetCriteria(cfg *config.Config, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		view, ok := loadedView(c, logger)
		if !ok {
			return
		}

		var patch domain.CriteriaPatch
		if err := c.ShouldBindJSON(&patch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid criteria", "details": err.Error()})
			return
		}
		if patch.IsEmpty() {
			renderCatalog(c, cfg, view)
			return
		}

		if _, err := view.ApplyCriteria(patch, domain.FilterCriteria.Validate); err != nil {
			if verr, ok := err.(*errors.ErrValidation); ok {
				c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "fields": verr.Fields})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		renderCatalog(c, cfg, view)
	}
}

// HandleSetPage handles PUT /v1/catalog/page
func HandleSetPage(cfg *config.Config, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		view, ok := loadedView(c, logger)
		if !ok {
			return
		}

		var req SetPageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "page is required", "details": err.Error()})
			return
		}

		view.SetPage(*req.Page)
		renderCatalog(c, cfg, view)
	}
}

// HandleNextPage handles POST /v1/catalog/page/next
func HandleNextPage(cfg *config.Config, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		view, ok := loadedView(c, logger)
		if !ok {
			return
		}
		view.NextPage()
		renderCatalog(c, cfg, view)
	}
}

// HandlePrevPage handles POST /v1/catalog/page/prev
func HandlePrevPage(cfg *config.Config, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		view, ok := loadedView(c, logger)
		if !ok {
			return
		}
		view.PrevPage()
		renderCatalog(c, cfg, view)
	}
}

// HandleRefreshCatalog handles POST /v1/catalog/refresh. A failed fetch
// still answers 200 with an empty catalog and the error message.
func HandleRefreshCatalog(cfg *config.Config, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		view, ok := middleware.GetViewFromContext(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "session unavailable"})
			return
		}

		err := view.Refresh(c.Request.Context())
		middleware.RecordCatalogRefresh(err == nil)
		if err != nil {
			logger.Warn("Catalog refresh failed", sessionField(c), zap.Error(err))
		}
		renderCatalog(c, cfg, view)
	}
}

// HandleGetCatalogProduct handles GET /v1/catalog/products/:id
func HandleGetCatalogProduct(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}

		view, ok := loadedView(c, logger)
		if !ok {
			return
		}

		product, found := view.Product(id)
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}
