package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/fathima-sithara/media-vault/internal/events"
	"github.com/fathima-sithara/media-vault/internal/models"
	"github.com/fathima-sithara/media-vault/internal/repository"
)

// Consumer reads media.published events and fans a notification out to
// every user's embedded notification list.
type Consumer struct {
	reader *kafka.Reader
	users  repository.UserRepository
	logger *zap.SugaredLogger
}

func NewConsumer(brokers []string, topic, groupID string, users repository.UserRepository, logger *zap.SugaredLogger) *Consumer {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	return &Consumer{reader: r, users: users, logger: logger}
}

func (c *Consumer) Start(ctx context.Context) error {
	for {
		m, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.logger.Errorf("kafka read: %v", err)
			time.Sleep(time.Second)
			continue
		}
		if err := c.handle(ctx, m.Value); err != nil {
			c.logger.Errorf("notify fan-out: %v", err)
		}
	}
}

func (c *Consumer) handle(ctx context.Context, payload []byte) error {
	var ev events.MediaPublishedEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		return err
	}
	n := models.Notification{
		Message:   fmt.Sprintf("New %s available: %s", ev.FileType, ev.Title),
		Link:      "/media/media/details?_id=" + ev.MediaID,
		CreatedAt: time.Now().UTC(),
	}
	return c.users.PushNotificationToAll(ctx, n)
}

func (c *Consumer) Close() error { return c.reader.Close() }
