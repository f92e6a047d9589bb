package postbot

import (
	"context"
	"fmt"

	"github.com/zioncoderone/post-bot/model"
)

// PostSettings carries the generation parameters for channel posts.
type PostSettings struct {
	MainModel   string // Completion model for daily posts
	MainMaxLen  int    // Character cap for daily posts
	PromoModel  string // Completion model for promotional posts
	PromoMaxLen int    // Character cap for promotional posts
	ImageRef    string // Image attached to promotional posts (URL or file id)
}

// Pipeline orchestrates TopicStore, ContentGenerator, and ChannelPublisher
// to turn unpublished topics into published posts.
//
// Items are processed sequentially, never concurrently: the channel's rate
// limits leave no headroom for bursts, and interleaved log output would be
// unreadable. One item's failure never aborts the batch.
type Pipeline struct {
	store     *TopicStore
	generator *ContentGenerator
	publisher *ChannelPublisher
	settings  PostSettings
	logger    Logger
	notifier  NotificationService
}

// NewPipeline creates a Pipeline with the provided options.
//
// Required options:
//   - WithPipelineStore: topic store
//   - WithPipelineGenerator: content generator
//   - WithPipelinePublisher: channel publisher
//   - WithPipelineLogger: logger instance
//
// Optional options:
//   - WithPipelineSettings: post generation parameters
//   - WithPipelineNotifications: notification service (default: none)
func NewPipeline(opts ...PipelineOption) (*Pipeline, error) {
	p := &Pipeline{
		notifier: &NoOpNotificationService{},
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, NewErrorWithCause(ErrCodeConfiguration, "failed to apply pipeline option", err)
		}
	}

	// Validate required dependencies
	if p.store == nil {
		return nil, NewError(ErrCodeConfiguration, "TopicStore is required (use WithPipelineStore)")
	}
	if p.generator == nil {
		return nil, NewError(ErrCodeConfiguration, "ContentGenerator is required (use WithPipelineGenerator)")
	}
	if p.publisher == nil {
		return nil, NewError(ErrCodeConfiguration, "ChannelPublisher is required (use WithPipelinePublisher)")
	}
	if p.logger == nil {
		return nil, NewError(ErrCodeConfiguration, "Logger is required (use WithPipelineLogger)")
	}

	return p, nil
}

// PublishUnpublished publishes every still-pending item of the month with
// a sequence number up to and including upToDay, in ascending order.
//
// The month's queue must already exist; this operation never creates it.
// Per item: generate the post text, deliver it, mark the row published.
// Any failure in that chain is logged (and notified) and the next item is
// processed; the only error returned is a failure to list the queue itself.
func (p *Pipeline) PublishUnpublished(ctx context.Context, mk model.MonthKey, upToDay int) error {
	items, err := p.store.ListUnpublished(ctx, mk, upToDay)
	if err != nil {
		return fmt.Errorf("failed to list unpublished items of %s: %w", mk, err)
	}

	p.logger.Debugf("Found %d unpublished posts for %s up to day %d", len(items), mk, upToDay)

	for _, item := range items {
		if err := p.publishItem(ctx, mk, item); err != nil {
			p.logger.Errorf("Failed to publish post #%d (%s): %v", item.Sequence, mk, err)
			if nerr := p.notifier.NotifyPublishFailure(ctx, mk, item, err); nerr != nil {
				p.logger.Warnf("Failed to send publish-failure notification: %v", nerr)
			}
			continue
		}
		p.logger.Infof("Post #%d (%s) published", item.Sequence, mk)
	}
	return nil
}

// publishItem runs the generate, deliver, mark chain for one item.
func (p *Pipeline) publishItem(ctx context.Context, mk model.MonthKey, item model.TopicItem) error {
	text, err := p.generator.Generate(ctx, MainPostPrompt(p.settings.MainModel, item.Topic), p.settings.MainMaxLen)
	if err != nil {
		return err
	}

	if err := p.publisher.PublishText(ctx, text); err != nil {
		return err
	}

	// Not transactional with the send: a crash right here causes one
	// duplicate post on the next catch-up run, an accepted bounded risk.
	if err := p.store.MarkPublished(ctx, mk, item); err != nil {
		return err
	}
	return nil
}

// SendPromo generates and delivers one promotional post: an image with a
// freshly generated caption and the call-to-action button. Not tied to the
// topic queue: there is no persisted status to track, so the operation is
// stateless.
func (p *Pipeline) SendPromo(ctx context.Context) error {
	text, err := p.generator.Generate(ctx, PromoPostPrompt(p.settings.PromoModel), p.settings.PromoMaxLen)
	if err != nil {
		return err
	}
	return p.publisher.PublishPhoto(ctx, p.settings.ImageRef, text)
}
