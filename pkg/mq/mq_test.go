package mq

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type published struct {
	exchange string
	key      string
	msg      amqp.Publishing
}

type fakeChannel struct {
	published []published
	err       error
	closed    bool
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, published{exchange: exchange, key: key, msg: msg})
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestPublisher_Publish(t *testing.T) {
	ch := &fakeChannel{}
	p := NewPublisherWithChannel(ch, "bookstore.events", newTestLogger())

	err := p.Publish(context.Background(), "order.placed", map[string]interface{}{"order_id": 7})
	require.NoError(t, err)

	require.Len(t, ch.published, 1)
	got := ch.published[0]
	assert.Equal(t, "bookstore.events", got.exchange)
	assert.Equal(t, "order.placed", got.key)
	assert.Equal(t, "application/json", got.msg.ContentType)
	assert.Equal(t, amqp.Persistent, got.msg.DeliveryMode)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(got.msg.Body, &body))
	assert.Equal(t, float64(7), body["order_id"])
}

func TestPublisher_PublishError(t *testing.T) {
	ch := &fakeChannel{err: errors.New("channel closed")}
	p := NewPublisherWithChannel(ch, "bookstore.events", newTestLogger())

	err := p.Publish(context.Background(), "order.cancelled", struct{}{})
	assert.ErrorContains(t, err, "channel closed")
}

func TestPublisher_MarshalError(t *testing.T) {
	ch := &fakeChannel{}
	p := NewPublisherWithChannel(ch, "bookstore.events", newTestLogger())

	err := p.Publish(context.Background(), "order.placed", make(chan int))
	assert.Error(t, err)
	assert.Empty(t, ch.published)
}

func TestPublisher_Close(t *testing.T) {
	ch := &fakeChannel{}
	p := NewPublisherWithChannel(ch, "bookstore.events", newTestLogger())

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
}
