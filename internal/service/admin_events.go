package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/domain"
	"github.com/jafarshop/storefront/internal/repository"
	"github.com/jafarshop/storefront/pkg/errors"
)

// EventPublisher delivers admin events to a message broker
type EventPublisher interface {
	Publish(ctx context.Context, event *domain.AdminEvent) error
}

// EventRecorder writes admin events to the audit table and the broker.
// Either sink may be absent. Sink failures are logged and never fail the
// admin operation that produced the event.
type EventRecorder struct {
	repos     *repository.Repositories
	publisher EventPublisher
	logger    *zap.Logger
}

// NewEventRecorder creates a recorder. repos and publisher may be nil.
func NewEventRecorder(repos *repository.Repositories, publisher EventPublisher, logger *zap.Logger) *EventRecorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventRecorder{
		repos:     repos,
		publisher: publisher,
		logger:    logger,
	}
}

// Record builds the event and hands it to every configured sink
func (r *EventRecorder) Record(ctx context.Context, eventType domain.AdminEventType, productID int64, actor string, data map[string]interface{}) *domain.AdminEvent {
	event := &domain.AdminEvent{
		ID:        uuid.New(),
		EventType: eventType,
		ProductID: productID,
		Actor:     actor,
		EventData: data,
		CreatedAt: time.Now(),
	}

	if r.repos != nil && r.repos.AdminEvent != nil {
		if err := r.repos.AdminEvent.Create(ctx, event); err != nil {
			r.logger.Warn("Admin event not stored", zap.String("event_id", event.ID.String()), zap.Error(err))
		}
	}
	if r.publisher != nil {
		if err := r.publisher.Publish(ctx, event); err != nil {
			r.logger.Warn("Admin event not published", zap.String("event_id", event.ID.String()), zap.Error(err))
		}
	}

	r.logger.Info("Admin event recorded",
		zap.String("event_type", string(eventType)),
		zap.Int64("product_id", productID),
		zap.String("actor", actor),
	)
	return event
}

func (r *EventRecorder) store() (repository.AdminEventRepository, error) {
	if r.repos == nil || r.repos.AdminEvent == nil {
		return nil, &errors.ErrUnavailable{Service: "admin event history"}
	}
	return r.repos.AdminEvent, nil
}

// Recent returns the latest stored events, newest first. A non-empty
// eventType keeps only that kind among the latest limit events.
func (r *EventRecorder) Recent(ctx context.Context, limit int, eventType domain.AdminEventType) ([]*domain.AdminEvent, error) {
	if eventType != "" && !eventType.IsValid() {
		return nil, &errors.ErrValidation{
			Message: "invalid event type",
			Fields:  map[string]string{"type": fmt.Sprintf("unknown event type %q", eventType)},
		}
	}
	repo, err := r.store()
	if err != nil {
		return nil, err
	}

	events, err := repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	if eventType == "" {
		return events, nil
	}
	filtered := make([]*domain.AdminEvent, 0, len(events))
	for _, e := range events {
		if e.EventType == eventType {
			filtered = append(filtered, e)
		}
	}
	return filtered, nil
}

// ForProduct returns one product's stored events, oldest first
func (r *EventRecorder) ForProduct(ctx context.Context, productID int64) ([]*domain.AdminEvent, error) {
	repo, err := r.store()
	if err != nil {
		return nil, err
	}
	return repo.ListByProductID(ctx, productID)
}
