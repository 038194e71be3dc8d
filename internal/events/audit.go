package events

import (
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.uber.org/zap"
)

// RunAuditLog logs every post event read from msgs until the channel closes.
// Malformed payloads are logged and acked so they are not redelivered.
func RunAuditLog(msgs <-chan *message.Message, log *zap.Logger) {
	for msg := range msgs {
		var ev PostEvent
		if err := json.Unmarshal(msg.Payload, &ev); err != nil {
			log.Warn("undecodable post event", zap.String("message_uuid", msg.UUID), zap.Error(err))
			msg.Ack()
			continue
		}
		log.Info("post event",
			zap.String("message_uuid", msg.UUID),
			zap.String("type", ev.Type),
			zap.Int("post_id", ev.PostID),
			zap.String("title", ev.Title),
			zap.String("author", ev.Author),
			zap.Time("at", ev.At),
		)
		msg.Ack()
	}
}
