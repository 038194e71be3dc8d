package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/postboard/blogapi/internal/post"
	"github.com/postboard/blogapi/pkg/logger"
	"github.com/postboard/blogapi/pkg/metrics"
)

// Topic carries every post lifecycle event.
const Topic = "posts"

// PostEvent is the JSON payload of a lifecycle message.
type PostEvent struct {
	Type   string    `json:"type"`
	PostID int       `json:"post_id"`
	Title  string    `json:"title"`
	Author string    `json:"author"`
	At     time.Time `json:"at"`
}

// Bus publishes post events on an in-process watermill Pub/Sub.
// Messages published while nobody is subscribed are dropped.
type Bus struct {
	pubSub *gochannel.GoChannel
	now    func() time.Time
	closed atomic.Bool
}

var ErrClosed = errors.New("event bus closed")

func NewBus(log watermill.LoggerAdapter) *Bus {
	if log == nil {
		log = watermill.NopLogger{}
	}
	ps := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 64}, log)
	return &Bus{pubSub: ps, now: time.Now}
}

// Publish marshals ev and sends it on Topic.
func (b *Bus) Publish(ev PostEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal post event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("type", ev.Type)
	if err := b.pubSub.Publish(Topic, msg); err != nil {
		return fmt.Errorf("publish post event: %w", err)
	}
	metrics.PostEventsPublished.WithLabelValues(ev.Type).Inc()
	return nil
}

// PostChanged publishes an event for p. Failures are logged, never returned:
// the mutation that triggered the event has already been applied.
func (b *Bus) PostChanged(eventType string, p post.Post) {
	ev := PostEvent{Type: eventType, PostID: p.ID, Title: p.Title, Author: p.Author, At: b.now().UTC()}
	if err := b.Publish(ev); err != nil {
		logger.Warnf("post event %s for id %d dropped: %v", eventType, p.ID, err)
	}
}

// Subscribe returns the message stream for Topic. It is closed when ctx is done or the bus closes.
func (b *Bus) Subscribe(ctx context.Context) (<-chan *message.Message, error) {
	return b.pubSub.Subscribe(ctx, Topic)
}

// Healthy returns ErrClosed once Close has been called.
func (b *Bus) Healthy(context.Context) error {
	if b.closed.Load() {
		return ErrClosed
	}
	return nil
}

func (b *Bus) Close() error {
	b.closed.Store(true)
	return b.pubSub.Close()
}
