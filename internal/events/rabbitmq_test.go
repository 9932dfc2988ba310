package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/domain"
)

type publishCall struct {
	exchange string
	key      string
	msg      amqp.Publishing
}

type fakeChannel struct {
	calls  []publishCall
	err    error
	closed bool
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.calls = append(f.calls, publishCall{exchange: exchange, key: key, msg: msg})
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestPublisher_Publish(t *testing.T) {
	ch := &fakeChannel{}
	p := &Publisher{channel: ch, exchange: "storefront_admin_events", logger: zap.NewNop()}

	event := &domain.AdminEvent{
		ID:        uuid.New(),
		EventType: domain.EventProductUpdated,
		ProductID: 9,
		Actor:     "admin",
		CreatedAt: time.Now(),
	}
	require.NoError(t, p.Publish(context.Background(), event))
	require.Len(t, ch.calls, 1)

	call := ch.calls[0]
	assert.Equal(t, "storefront_admin_events", call.exchange)
	assert.Equal(t, "product_updated", call.key)
	assert.Equal(t, amqp.Persistent, call.msg.DeliveryMode)
	assert.Equal(t, "application/json", call.msg.ContentType)
	assert.Equal(t, event.ID.String(), call.msg.MessageId)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(call.msg.Body, &decoded))
	assert.Equal(t, "product_updated", decoded["event_type"])
	assert.Equal(t, float64(9), decoded["product_id"])
}

func TestPublisher_PublishError(t *testing.T) {
	ch := &fakeChannel{err: errors.New("channel closed")}
	p := &Publisher{channel: ch, exchange: "x", logger: zap.NewNop()}

	err := p.Publish(context.Background(), &domain.AdminEvent{EventType: domain.EventProductDeleted})
	assert.EqualError(t, err, "channel closed")
}

func TestPublisher_Close(t *testing.T) {
	ch := &fakeChannel{}
	p := &Publisher{channel: ch, logger: zap.NewNop()}
	assert.NoError(t, p.Close())
	assert.True(t, ch.closed)
}
