package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
)

type MediaPublishedEvent struct {
	MediaID  string `json:"media_id"`
	Title    string `json:"title"`
	FileType string `json:"file_type"`
}

type Publisher interface {
	MediaPublished(ctx context.Context, ev MediaPublishedEvent) error
	Close() error
}

type kafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(brokers []string, topic string) Publisher {
	w := kafka.NewWriter(kafka.WriterConfig{
		Brokers:  brokers,
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	})
	return &kafkaPublisher{writer: w}
}

func (p *kafkaPublisher) MediaPublished(ctx context.Context, ev MediaPublishedEvent) error {
	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ev.MediaID),
		Value: b,
		Time:  time.Now(),
	})
}

func (p *kafkaPublisher) Close() error { return p.writer.Close() }

// NopPublisher is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) MediaPublished(context.Context, MediaPublishedEvent) error { return nil }
func (NopPublisher) Close() error                                             { return nil }
