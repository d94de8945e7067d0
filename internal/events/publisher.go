package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"feedfilter/internal/models"

	kfk "github.com/Fau1con/kafkawrapper"
)

// MessageSender - отправка сообщения в топик; реализуется продюсером kafkawrapper.
type MessageSender interface {
	SendMessage(ctx context.Context, topic string, value []byte) error
}

// Publisher публикует события пересборки фидов в Kafka.
type Publisher struct {
	sender MessageSender
	topic  string
	log    *slog.Logger
}

func NewKafkaPublisher(brokers []string, topic string, log *slog.Logger) (*Publisher, error) {
	producer, err := kfk.NewProducer(brokers)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}
	log.Info("Kafka producer created", slog.Any("brokers", brokers), slog.String("topic", topic))
	return NewPublisher(producer, topic, log), nil
}

func NewPublisher(sender MessageSender, topic string, log *slog.Logger) *Publisher {
	return &Publisher{
		sender: sender,
		topic:  topic,
		log:    log,
	}
}

func (p *Publisher) RecordBuild(ctx context.Context, event models.BuildEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal build event: %w", err)
	}
	if err := p.sender.SendMessage(ctx, p.topic, data); err != nil {
		p.log.Error("Failed to write message to Kafka",
			slog.String("topic", p.topic),
			slog.String("feed", event.FeedName),
			slog.Any("error", err),
		)
		return fmt.Errorf("failed to publish build event: %w", err)
	}
	p.log.Debug("Build event published",
		slog.String("topic", p.topic),
		slog.String("feed", event.FeedName),
	)
	return nil
}
