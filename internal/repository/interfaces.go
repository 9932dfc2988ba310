package repository

import (
	"context"

	"github.com/jafarshop/storefront/internal/domain"
)

// AdminEventRepository defines admin audit event data access methods
type AdminEventRepository interface {
	Create(ctx context.Context, event *domain.AdminEvent) error
	ListByProductID(ctx context.Context, productID int64) ([]*domain.AdminEvent, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.AdminEvent, error)
}

// Repositories aggregates all repositories
type Repositories struct {
	AdminEvent AdminEventRepository
}
