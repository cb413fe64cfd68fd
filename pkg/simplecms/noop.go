package simplecms

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// NoopEventSink is a no-operation implementation of EventSink
// Useful for production when you don't need event handling or for testing
type NoopEventSink struct{}

// NewNoopEventSink creates a new no-operation event sink
func NewNoopEventSink() EventSink {
	return &NoopEventSink{}
}

// ContentCreated does nothing and returns nil
func (n *NoopEventSink) ContentCreated(ctx context.Context, content *Content) error {
	return nil
}

// ContentUpdated does nothing and returns nil
func (n *NoopEventSink) ContentUpdated(ctx context.Context, content *Content) error {
	return nil
}

// ContentDeleted does nothing and returns nil
func (n *NoopEventSink) ContentDeleted(ctx context.Context, contentID uuid.UUID) error {
	return nil
}

// ContentResolved does nothing and returns nil
func (n *NoopEventSink) ContentResolved(ctx context.Context, content *Content) error {
	return nil
}

// LoggingEventSink is an event sink that logs events but takes no other action
// Useful for development and debugging
type LoggingEventSink struct {
	logger *slog.Logger
}

// NewLoggingEventSink creates a new logging event sink
func NewLoggingEventSink(logger *slog.Logger) EventSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingEventSink{logger: logger}
}

// ContentCreated logs the content creation event
func (l *LoggingEventSink) ContentCreated(ctx context.Context, content *Content) error {
	l.logger.Info("content created", "content_id", content.ID, "slug", content.Slug, "status", content.Status)
	return nil
}

// ContentUpdated logs the content update event
func (l *LoggingEventSink) ContentUpdated(ctx context.Context, content *Content) error {
	l.logger.Info("content updated", "content_id", content.ID, "slug", content.Slug, "status", content.Status)
	return nil
}

// ContentDeleted logs the content deletion event
func (l *LoggingEventSink) ContentDeleted(ctx context.Context, contentID uuid.UUID) error {
	l.logger.Info("content deleted", "content_id", contentID)
	return nil
}

// ContentResolved logs the public resolution event
func (l *LoggingEventSink) ContentResolved(ctx context.Context, content *Content) error {
	l.logger.Info("content resolved", "slug", content.Slug, "views", content.Views)
	return nil
}
