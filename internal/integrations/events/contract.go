package events

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// MessageWriter часть *kafka.Writer, которой пользуется Publisher
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}
