package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/supportdesk/ticket-triage/internal/domain"
	"github.com/supportdesk/ticket-triage/internal/events"
)

type recordingPublisher struct {
	channel  string
	payloads [][]byte
	err      error
}

func (p *recordingPublisher) Publish(_ context.Context, channel string, payload []byte) error {
	if p.err != nil {
		return p.err
	}
	p.channel = channel
	p.payloads = append(p.payloads, payload)
	return nil
}

func TestNotificationService_ForwardsEvents(t *testing.T) {
	t.Parallel()

	dispatcher := events.NewInMemoryDispatcher()
	pub := &recordingPublisher{}
	NewNotificationService(dispatcher, pub, "runs", zap.NewNop()).RegisterHandlers()

	summary := domain.Summary{Total: 1}
	run := domain.Run{ID: "r1", SourcePath: "in.csv", Status: domain.RunStatusSucceeded, TicketCount: 1, Summary: &summary}
	if err := dispatcher.Publish(context.Background(), events.NewRunEvent("e1", run, "out.csv")); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	failed := domain.Run{ID: "r2", SourcePath: "x.csv", Status: domain.RunStatusFailed, Error: "missing"}
	if err := dispatcher.Publish(context.Background(), events.NewRunEvent("e2", failed, "out.csv")); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	if pub.channel != "runs" || len(pub.payloads) != 2 {
		t.Fatalf("channel = %q, payloads = %d", pub.channel, len(pub.payloads))
	}
	var decoded events.Event
	if err := json.Unmarshal(pub.payloads[1], &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.Type != events.EventPipelineFailed || decoded.Payload.Error != "missing" {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestNotificationService_PublishError(t *testing.T) {
	t.Parallel()

	dispatcher := events.NewInMemoryDispatcher()
	boom := errors.New("redis down")
	NewNotificationService(dispatcher, &recordingPublisher{err: boom}, "runs", zap.NewNop()).RegisterHandlers()

	err := dispatcher.Publish(context.Background(), events.NewRunEvent("e", domain.Run{Status: domain.RunStatusSucceeded}, ""))
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want redis down", err)
	}
}

func TestNotificationService_NoPublisher(t *testing.T) {
	t.Parallel()

	dispatcher := events.NewInMemoryDispatcher()
	NewNotificationService(dispatcher, nil, "", zap.NewNop()).RegisterHandlers()
	if err := dispatcher.Publish(context.Background(), events.NewRunEvent("e", domain.Run{Status: domain.RunStatusFailed}, "")); err != nil {
		t.Fatal(err)
	}
}
