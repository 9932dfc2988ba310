package service

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/backend"
	"github.com/jafarshop/storefront/internal/catalog"
	"github.com/jafarshop/storefront/internal/domain"
	"github.com/jafarshop/storefront/pkg/errors"
)

const (
	// DefaultProductImage is stored when an admin leaves the image empty
	DefaultProductImage = "https://mgx-backend-cdn.metadl.com/generate/images/656699/2026-01-25/4b7dd3e9-1ac1-4cdb-b52b-d076dcd0e93a.png"
	DefaultAdminCategory = "men"
	DefaultAdminSize     = "M"

	adminListLimit = 100
	adminListSort  = "-created_at"
)

// ProductBackend is the products API surface the admin service needs
type ProductBackend interface {
	ListProducts(ctx context.Context, limit int, sort string) ([]map[string]interface{}, error)
	GetProduct(ctx context.Context, id int64) (map[string]interface{}, error)
	CreateProduct(ctx context.Context, in backend.ProductInput) (map[string]interface{}, error)
	UpdateProduct(ctx context.Context, id int64, in backend.ProductInput) (map[string]interface{}, error)
	DeleteProduct(ctx context.Context, id int64) error
}

// ProductAdmin is the admin product management API used by the handlers
type ProductAdmin interface {
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id int64) (domain.Product, error)
	Create(ctx context.Context, actor string, req ProductRequest) (domain.Product, error)
	Update(ctx context.Context, actor string, id int64, req ProductRequest) (domain.Product, error)
	Delete(ctx context.Context, actor string, id int64) error
}

type productAdminService struct {
	backend  ProductBackend
	recorder *EventRecorder
	logger   *zap.Logger
}

// NewProductAdminService creates a new admin product service
func NewProductAdminService(backend ProductBackend, recorder *EventRecorder, logger *zap.Logger) *productAdminService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if recorder == nil {
		recorder = NewEventRecorder(nil, nil, logger)
	}
	return &productAdminService{
		backend:  backend,
		recorder: recorder,
		logger:   logger,
	}
}

// List returns the newest products first, as the admin table shows them
func (s *productAdminService) List(ctx context.Context) ([]domain.Product, error) {
	raws, err := s.backend.ListProducts(ctx, adminListLimit, adminListSort)
	if err != nil {
		return nil, err
	}
	return catalog.NormalizeAll(raws), nil
}

func (s *productAdminService) Get(ctx context.Context, id int64) (domain.Product, error) {
	raw, err := s.backend.GetProduct(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}
	return catalog.Normalize(raw), nil
}

func (s *productAdminService) Create(ctx context.Context, actor string, req ProductRequest) (domain.Product, error) {
	in, err := BuildProductInput(req)
	if err != nil {
		return domain.Product{}, err
	}

	raw, err := s.backend.CreateProduct(ctx, in)
	if err != nil {
		s.logger.Error("Failed to create product", zap.String("name", in.Name), zap.Error(err))
		return domain.Product{}, err
	}
	product := catalog.Normalize(raw)

	s.recorder.Record(ctx, domain.EventProductCreated, product.ID, actor, inputEventData(in))
	return product, nil
}

func (s *productAdminService) Update(ctx context.Context, actor string, id int64, req ProductRequest) (domain.Product, error) {
	in, err := BuildProductInput(req)
	if err != nil {
		return domain.Product{}, err
	}

	raw, err := s.backend.UpdateProduct(ctx, id, in)
	if err != nil {
		s.logger.Error("Failed to update product", zap.Int64("product_id", id), zap.Error(err))
		return domain.Product{}, err
	}
	product := catalog.Normalize(raw)
	if product.ID == 0 {
		product.ID = id
	}

	s.recorder.Record(ctx, domain.EventProductUpdated, id, actor, inputEventData(in))
	return product, nil
}

func (s *productAdminService) Delete(ctx context.Context, actor string, id int64) error {
	if err := s.backend.DeleteProduct(ctx, id); err != nil {
		s.logger.Error("Failed to delete product", zap.Int64("product_id", id), zap.Error(err))
		return err
	}
	s.recorder.Record(ctx, domain.EventProductDeleted, id, actor, nil)
	return nil
}

// BuildProductInput validates an admin payload and fills form defaults
func BuildProductInput(req ProductRequest) (backend.ProductInput, error) {
	fields := map[string]string{}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		fields["name"] = "is required"
	}
	description := strings.TrimSpace(req.Description)
	if description == "" {
		fields["description"] = "is required"
	}
	var price float64
	if req.Price == nil {
		fields["price"] = "is required"
	} else if *req.Price < 0 {
		fields["price"] = "must be non-negative"
	} else {
		price = *req.Price
	}
	stock := 0
	if req.Stock != nil {
		if *req.Stock < 0 {
			fields["stock"] = "must be non-negative"
		} else {
			stock = *req.Stock
		}
	}

	if len(fields) > 0 {
		return backend.ProductInput{}, &errors.ErrValidation{
			Message: "please fill in all required fields",
			Fields:  fields,
		}
	}

	in := backend.ProductInput{
		Name:        name,
		Description: description,
		Price:       price,
		Image:       strings.TrimSpace(req.Image),
		Category:    strings.TrimSpace(req.Category),
		Size:        strings.TrimSpace(req.Size),
		Color:       strings.TrimSpace(req.Color),
		Stock:       stock,
	}
	if in.Image == "" {
		in.Image = DefaultProductImage
	}
	if in.Category == "" {
		in.Category = DefaultAdminCategory
	}
	if in.Size == "" {
		in.Size = DefaultAdminSize
	}
	return in, nil
}

func inputEventData(in backend.ProductInput) map[string]interface{} {
	return map[string]interface{}{
		"name":     in.Name,
		"price":    strconv.FormatFloat(in.Price, 'f', -1, 64),
		"category": in.Category,
		"stock":    in.Stock,
	}
}
