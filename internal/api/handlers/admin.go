package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/api/middleware"
	"github.com/jafarshop/storefront/internal/service"
	"github.com/jafarshop/storefront/internal/session"
	"github.com/jafarshop/storefront/pkg/errors"
)

// writeServiceError maps typed errors to HTTP responses
func writeServiceError(c *gin.Context, err error, logger *zap.Logger, action string) {
	switch e := err.(type) {
	case *errors.ErrValidation:
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": e.Error(), "fields": e.Fields})
	case *errors.ErrNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
	case *errors.ErrUnauthorized:
		c.JSON(http.StatusUnauthorized, gin.H{"error": e.Error()})
	case *errors.ErrUnavailable:
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": e.Error()})
	case *errors.ErrUpstream:
		logger.Warn("Products backend rejected request", zap.String("action", action), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": e.Error(), "detail": e.Detail})
	default:
		logger.Error("Admin operation failed", zap.String("action", action), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "products backend unavailable"})
	}
}

func parseProductID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return 0, false
	}
	return id, true
}

// refreshCallerSession reloads the admin's own storefront session, if any,
// so the change shows up on their next catalog view
func refreshCallerSession(c *gin.Context, sessions *session.Registry, logger *zap.Logger) {
	if sessions == nil {
		return
	}
	id, err := c.Cookie(middleware.SessionCookieName)
	if err != nil || id == "" {
		return
	}
	view, ok := sessions.Get(id)
	if !ok {
		return
	}
	// refresh outlives a cancelled request
	err = view.Refresh(context.WithoutCancel(c.Request.Context()))
	middleware.RecordCatalogRefresh(err == nil)
	if err != nil {
		logger.Warn("Session refresh after admin change failed", zap.Error(err))
	}
}

func actorFromContext(c *gin.Context) string {
	if subject, ok := middleware.GetAdminFromContext(c); ok {
		return subject
	}
	return "unknown"
}

// HandleListAdminProducts handles GET /v1/admin/products
func HandleListAdminProducts(admin service.ProductAdmin, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := admin.List(c.Request.Context())
		if err != nil {
			writeServiceError(c, err, logger, "list")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"items": products,
			"count": len(products),
		})
	}
}

// HandleGetAdminProduct handles GET /v1/admin/products/:id
func HandleGetAdminProduct(admin service.ProductAdmin, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseProductID(c)
		if !ok {
			return
		}
		product, err := admin.Get(c.Request.Context(), id)
		if err != nil {
			writeServiceError(c, err, logger, "get")
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// HandleCreateAdminProduct handles POST /v1/admin/products
func HandleCreateAdminProduct(admin service.ProductAdmin, sessions *session.Registry, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.ProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		product, err := admin.Create(c.Request.Context(), actorFromContext(c), req)
		middleware.RecordAdminOperation("create", err == nil)
		if err != nil {
			writeServiceError(c, err, logger, "create")
			return
		}

		refreshCallerSession(c, sessions, logger)
		c.JSON(http.StatusCreated, product)
	}
}

// HandleUpdateAdminProduct handles PUT /v1/admin/products/:id
func HandleUpdateAdminProduct(admin service.ProductAdmin, sessions *session.Registry, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseProductID(c)
		if !ok {
			return
		}

		var req service.ProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		product, err := admin.Update(c.Request.Context(), actorFromContext(c), id, req)
		middleware.RecordAdminOperation("update", err == nil)
		if err != nil {
			writeServiceError(c, err, logger, "update")
			return
		}

		refreshCallerSession(c, sessions, logger)
		c.JSON(http.StatusOK, product)
	}
}

// HandleDeleteAdminProduct handles DELETE /v1/admin/products/:id
func HandleDeleteAdminProduct(admin service.ProductAdmin, sessions *session.Registry, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseProductID(c)
		if !ok {
			return
		}

		err := admin.Delete(c.Request.Context(), actorFromContext(c), id)
		middleware.RecordAdminOperation("delete", err == nil)
		if err != nil {
			writeServiceError(c, err, logger, "delete")
			return
		}

		refreshCallerSession(c, sessions, logger)
		c.JSON(http.StatusOK, gin.H{"id": id, "deleted": true})
	}
}
