package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/domain"
)

const defaultRecentLimit = 50

type adminEventRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewAdminEventRepository creates a new admin event repository
func NewAdminEventRepository(db *sql.DB, logger *zap.Logger) *adminEventRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &adminEventRepository{
		db:     db,
		logger: logger,
	}
}

func (r *adminEventRepository) Create(ctx context.Context, event *domain.AdminEvent) error {
	query := `
		INSERT INTO admin_events (id, event_type, product_id, actor, event_data, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	var eventDataJSON []byte
	var err error
	if event.EventData != nil {
		eventDataJSON, err = json.Marshal(event.EventData)
		if err != nil {
			return err
		}
	}

	_, err = r.db.ExecContext(ctx, query,
		event.ID,
		string(event.EventType),
		event.ProductID,
		event.Actor,
		eventDataJSON,
		event.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create admin event", zap.Error(err))
		return err
	}

	return nil
}

func (r *adminEventRepository) ListByProductID(ctx context.Context, productID int64) ([]*domain.AdminEvent, error) {
	query := `
		SELECT id, event_type, product_id, actor, event_data, created_at
		FROM admin_events
		WHERE product_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, productID)
	if err != nil {
		r.logger.Error("Failed to get admin events by product ID", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	return scanAdminEvents(rows)
}

func (r *adminEventRepository) ListRecent(ctx context.Context, limit int) ([]*domain.AdminEvent, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	query := `
		SELECT id, event_type, product_id, actor, event_data, created_at
		FROM admin_events
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		r.logger.Error("Failed to list recent admin events", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	return scanAdminEvents(rows)
}

func scanAdminEvents(rows *sql.Rows) ([]*domain.AdminEvent, error) {
	events := []*domain.AdminEvent{}
	for rows.Next() {
		var event domain.AdminEvent
		var eventType string
		var eventDataJSON []byte

		if err := rows.Scan(
			&event.ID,
			&eventType,
			&event.ProductID,
			&event.Actor,
			&eventDataJSON,
			&event.CreatedAt,
		); err != nil {
			return nil, err
		}
		event.EventType = domain.AdminEventType(eventType)

		if len(eventDataJSON) > 0 {
			if err := json.Unmarshal(eventDataJSON, &event.EventData); err != nil {
				return nil, err
			}
		}

		events = append(events, &event)
	}

	return events, rows.Err()
}
