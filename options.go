package postbot

import (
	"fmt"
)

// PipelineOption is a function that configures a Pipeline.
// Used with the Options Pattern for flexible service construction.
//
// Example:
//
//	pipeline, err := postbot.NewPipeline(
//	    postbot.WithPipelineStore(store),
//	    postbot.WithPipelineGenerator(gen),
//	    postbot.WithPipelinePublisher(pub),
//	    postbot.WithPipelineSettings(settings),
//	    postbot.WithPipelineLogger(logger),
//	)
type PipelineOption func(*Pipeline) error

// WithPipelineStore sets the topic store dependency.
// This is a required option for NewPipeline.
func WithPipelineStore(store *TopicStore) PipelineOption {
	return func(p *Pipeline) error {
		if store == nil {
			return fmt.Errorf("store cannot be nil")
		}
		p.store = store
		return nil
	}
}

// WithPipelineGenerator sets the content generator dependency.
// This is a required option for NewPipeline.
func WithPipelineGenerator(generator *ContentGenerator) PipelineOption {
	return func(p *Pipeline) error {
		if generator == nil {
			return fmt.Errorf("generator cannot be nil")
		}
		p.generator = generator
		return nil
	}
}

// WithPipelinePublisher sets the channel publisher dependency.
// This is a required option for NewPipeline.
func WithPipelinePublisher(publisher *ChannelPublisher) PipelineOption {
	return func(p *Pipeline) error {
		if publisher == nil {
			return fmt.Errorf("publisher cannot be nil")
		}
		p.publisher = publisher
		return nil
	}
}

// WithPipelineSettings sets the post generation parameters (models,
// length caps, promo image).
func WithPipelineSettings(settings PostSettings) PipelineOption {
	return func(p *Pipeline) error {
		p.settings = settings
		return nil
	}
}

// WithPipelineLogger sets the logger instance.
// This is a required option for NewPipeline.
//
// Use NoopLogger for silent operation or implement Logger interface
// to integrate with your logging system.
func WithPipelineLogger(logger Logger) PipelineOption {
	return func(p *Pipeline) error {
		if logger == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		p.logger = logger
		return nil
	}
}

// WithPipelineNotifications sets an optional notification service.
// If not provided, NoOpNotificationService is used (no notifications).
//
// The notification service receives callbacks for per-item publish
// failures and queue population events. Use this to integrate with
// alerting systems (email, chat, monitoring).
func WithPipelineNotifications(service NotificationService) PipelineOption {
	return func(p *Pipeline) error {
		if service == nil {
			return fmt.Errorf("notification service cannot be nil")
		}
		p.notifier = service
		return nil
	}
}
