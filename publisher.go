package postbot

import (
	"context"
	"time"

	"github.com/zioncoderone/post-bot/retry"
)

// defaultSendCooldown is observed after every successful send so that
// closely-spaced sends stay under the channel's rate limits.
const defaultSendCooldown = 1 * time.Second

// ChannelPublisher wraps a ChannelGateway with the bounded retry
// discipline for channel delivery. Stateless: every public method is one
// post. A flood-control signal from the transport supplies a mandatory
// wait which is honored exactly (signaled duration plus one second of
// padding) before the next attempt.
type ChannelPublisher struct {
	gateway  ChannelGateway
	policy   retry.Policy
	cooldown time.Duration
	button   Button
	logger   Logger
}

// PublisherOption configures a ChannelPublisher.
type PublisherOption func(*ChannelPublisher)

// WithPublisherRetryPolicy overrides the default retry policy
// (3 attempts, 5s fixed delay, 1s flood-wait padding).
func WithPublisherRetryPolicy(policy retry.Policy) PublisherOption {
	return func(p *ChannelPublisher) { p.policy = policy }
}

// WithSendCooldown overrides the post-send cool-down (default 1s).
func WithSendCooldown(d time.Duration) PublisherOption {
	return func(p *ChannelPublisher) { p.cooldown = d }
}

// NewChannelPublisher creates a ChannelPublisher. Every post carries the
// given call-to-action button. A nil logger falls back to NoopLogger.
func NewChannelPublisher(gateway ChannelGateway, button Button, logger Logger, opts ...PublisherOption) *ChannelPublisher {
	if logger == nil {
		logger = &NoopLogger{}
	}
	p := &ChannelPublisher{
		gateway:  gateway,
		policy:   retry.DefaultPolicy(),
		cooldown: defaultSendCooldown,
		button:   button,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// PublishText sends a text post with the attached call-to-action button.
// Exhausting the retry budget returns a DELIVERY_ERROR; the caller decides
// whether the batch continues.
func (p *ChannelPublisher) PublishText(ctx context.Context, text string) error {
	return p.send(ctx, "text", func(ctx context.Context) error {
		return p.gateway.SendText(ctx, text, p.button)
	})
}

// PublishPhoto sends an image post with caption and the same button.
func (p *ChannelPublisher) PublishPhoto(ctx context.Context, imageRef, caption string) error {
	return p.send(ctx, "photo", func(ctx context.Context) error {
		return p.gateway.SendPhoto(ctx, imageRef, caption, p.button)
	})
}

func (p *ChannelPublisher) send(ctx context.Context, kind string, op func(ctx context.Context) error) error {
	err := p.policy.Do(ctx, func(ctx context.Context) error {
		if err := op(ctx); err != nil {
			if wait, ok := retry.WaitHint(err); ok {
				p.logger.Warnf("Flood control on %s send, waiting %v: %v", kind, wait, err)
			} else {
				p.logger.Errorf("Failed to send %s post: %v", kind, err)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return NewErrorWithCause(ErrCodeDelivery, "channel delivery failed after retries", err)
	}

	// Cool-down between successful sends. The post is already delivered,
	// so an interrupted cool-down must not report the send as failed and
	// cause a replay.
	if p.cooldown > 0 {
		if serr := p.sleep(ctx, p.cooldown); serr != nil {
			p.logger.Warnf("Post-send cool-down after %s send aborted: %v", kind, serr)
		}
	}
	return nil
}

func (p *ChannelPublisher) sleep(ctx context.Context, d time.Duration) error {
	if p.policy.Sleep != nil {
		return p.policy.Sleep(ctx, d)
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
