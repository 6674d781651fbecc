package rabbitmq

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sngm3741/ugym-konect/api/internal/public/application"
	"github.com/sngm3741/ugym-konect/api/internal/public/domain"
)

type recordingChannel struct {
	exchange string
	key      string
	msg      amqp.Publishing
	deadline bool
}

func (r *recordingChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	_, r.deadline = ctx.Deadline()
	r.exchange = exchange
	r.key = key
	r.msg = msg
	return nil
}

func (r *recordingChannel) Close() error { return nil }

func checkoutEvent() application.CheckoutEvent {
	return application.CheckoutEvent{
		EventID:  "evt-1",
		OrderRef: "ord-1",
		OwnerID:  "user-1",
		Contact:  domain.Contact{Name: "Thandi", Email: "thandi@example.com"},
		Lines: []domain.CartLine{
			{ItemID: "whey-1", ProductID: "p1", BusinessID: "b1", Name: "Premium Whey Protein Powder", UnitPrice: 899, Quantity: 2},
		},
		FeeRate:      0.3,
		Totals:       domain.CartTotals{Subtotal: 1798, Fee: 539, Total: 2337},
		CheckedOutAt: time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC),
	}
}

func TestPublisher_PublishCartCheckedOut(t *testing.T) {
	ch := &recordingChannel{}
	p := &Publisher{ch: ch, exchange: "ugym.events"}

	require.NoError(t, p.PublishCartCheckedOut(context.Background(), checkoutEvent()))

	assert.Equal(t, "ugym.events", ch.exchange)
	assert.Equal(t, CartCheckedOutQueue, ch.key)
	assert.True(t, ch.deadline)
	assert.Equal(t, "application/json", ch.msg.ContentType)
	assert.Equal(t, amqp.Persistent, ch.msg.DeliveryMode)
	assert.Equal(t, "evt-1", ch.msg.MessageId)

	var env EventEnvelope[CartCheckedOut]
	require.NoError(t, json.Unmarshal(ch.msg.Body, &env))
	assert.Equal(t, EventNameCheckedOut, env.EventName)
	assert.Equal(t, "ord-1", env.PartitionKey)
	assert.Equal(t, 1798.0, env.Payload.Subtotal)
	assert.Equal(t, 539.0, env.Payload.PlatformFee)
	assert.Equal(t, 2337.0, env.Payload.TotalAmount)
	require.Len(t, env.Payload.Items, 1)
	assert.Equal(t, 2, env.Payload.Items[0].Quantity)
}

func TestLogPublisher(t *testing.T) {
	var buf bytes.Buffer
	p := LogPublisher{Logger: log.New(&buf, "", 0)}

	require.NoError(t, p.PublishCartCheckedOut(context.Background(), checkoutEvent()))
	assert.Contains(t, buf.String(), `"totalAmount":2337`)
}
