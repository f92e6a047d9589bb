package postbot

import (
	"context"

	"github.com/zioncoderone/post-bot/model"
)

// NotificationService defines an optional interface for surfacing pipeline
// events (publish failures, queue population) outside the log stream.
//
// Implementations might send emails, chat messages, or feed monitoring
// systems. Notification failures are logged and never affect the pipeline.
type NotificationService interface {
	// NotifyPublishFailure is called when one item's publish attempt fails
	// after retries. The batch continues; this is informational.
	NotifyPublishFailure(ctx context.Context, mk model.MonthKey, item model.TopicItem, err error) error

	// NotifyQueuePopulated is called when EnsureMonthQueue adds topics to
	// a month's queue.
	NotifyQueuePopulated(ctx context.Context, mk model.MonthKey, added int) error
}

// NoOpNotificationService is a no-op implementation of NotificationService.
// Use this when notifications are not needed.
type NoOpNotificationService struct{}

// NotifyPublishFailure does nothing.
func (n *NoOpNotificationService) NotifyPublishFailure(_ context.Context, _ model.MonthKey, _ model.TopicItem, _ error) error {
	return nil
}

// NotifyQueuePopulated does nothing.
func (n *NoOpNotificationService) NotifyQueuePopulated(_ context.Context, _ model.MonthKey, _ int) error {
	return nil
}

// LoggingNotificationService is a simple implementation that logs
// notifications.
type LoggingNotificationService struct {
	logger Logger
}

// NewLoggingNotificationService creates a new LoggingNotificationService.
func NewLoggingNotificationService(logger Logger) *LoggingNotificationService {
	return &LoggingNotificationService{logger: logger}
}

// NotifyPublishFailure logs the failed item.
func (n *LoggingNotificationService) NotifyPublishFailure(_ context.Context, mk model.MonthKey, item model.TopicItem, err error) error {
	n.logger.Warnf("NOTIFY: post #%d (%s) failed to publish: %v", item.Sequence, mk, err)
	return nil
}

// NotifyQueuePopulated logs the population event.
func (n *LoggingNotificationService) NotifyQueuePopulated(_ context.Context, mk model.MonthKey, added int) error {
	n.logger.Infof("NOTIFY: month queue %s populated with %d new topics", mk, added)
	return nil
}
