package service

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/supportdesk/ticket-triage/internal/events"
)

// Publisher forwards serialized events to an external channel.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

// NotificationService handles emitting notifications for pipeline events.
type NotificationService struct {
	dispatcher events.Dispatcher
	publisher  Publisher
	channel    string
	logger     *zap.Logger
}

// NewNotificationService creates the service. publisher may be nil, in which
// case events are only logged.
func NewNotificationService(dispatcher events.Dispatcher, publisher Publisher, channel string, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		publisher:  publisher,
		channel:    channel,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventPipelineCompleted, n.handlePipelineCompleted)
	n.dispatcher.Subscribe(events.EventPipelineFailed, n.handlePipelineFailed)
}

func (n *NotificationService) handlePipelineCompleted(ctx context.Context, event events.Event) error {
	n.logger.Info("PipelineCompleted",
		zap.String("run_id", event.RunID),
		zap.String("source", event.Payload.SourcePath),
		zap.Int("tickets", event.Payload.TicketCount),
		zap.Int64("duration_ms", event.Payload.DurationMS))
	return n.forward(ctx, event)
}

func (n *NotificationService) handlePipelineFailed(ctx context.Context, event events.Event) error {
	n.logger.Warn("PipelineFailed",
		zap.String("run_id", event.RunID),
		zap.String("source", event.Payload.SourcePath),
		zap.String("error", event.Payload.Error))
	return n.forward(ctx, event)
}

func (n *NotificationService) forward(ctx context.Context, event events.Event) error {
	if n.publisher == nil {
		return nil
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event %s: %w", event.ID, err)
	}
	if err := n.publisher.Publish(ctx, n.channel, payload); err != nil {
		return fmt.Errorf("publish event %s: %w", event.ID, err)
	}
	n.logger.Debug("event published", zap.String("channel", n.channel), zap.String("event_id", event.ID))
	return nil
}
