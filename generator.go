package postbot

import (
	"context"
	"strings"

	"github.com/zioncoderone/post-bot/retry"
)

// ContentGenerator wraps a CompletionGateway with the bounded retry
// discipline every generation call must follow. Pure request/response:
// the generator holds no state and never caches; every call performs a
// fresh request.
type ContentGenerator struct {
	gateway CompletionGateway
	policy  retry.Policy
	logger  Logger
}

// GeneratorOption configures a ContentGenerator.
type GeneratorOption func(*ContentGenerator)

// WithGeneratorRetryPolicy overrides the default retry policy
// (3 attempts, 5s fixed delay). Mostly useful in tests.
func WithGeneratorRetryPolicy(policy retry.Policy) GeneratorOption {
	return func(g *ContentGenerator) { g.policy = policy }
}

// NewContentGenerator creates a ContentGenerator. A nil logger falls back
// to NoopLogger.
func NewContentGenerator(gateway CompletionGateway, logger Logger, opts ...GeneratorOption) *ContentGenerator {
	if logger == nil {
		logger = &NoopLogger{}
	}
	g := &ContentGenerator{
		gateway: gateway,
		policy:  retry.DefaultPolicy(),
		logger:  logger,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate issues the completion request described by spec and returns the
// generated text truncated to maxLen characters (the upstream service has
// no guaranteed hard length). Transient failures retry up to the policy's
// attempt budget; a rate-limit rejection waits out the cool-down before the
// next attempt but costs the same single attempt as any other failure. The
// final attempt's error is returned to the caller, never swallowed.
func (g *ContentGenerator) Generate(ctx context.Context, spec PromptSpec, maxLen int) (string, error) {
	g.logger.Debugf("Completion request: model=%s, max_tokens=%d, max_len=%d",
		spec.Model, spec.MaxTokens, maxLen)

	var text string
	err := g.policy.Do(ctx, func(ctx context.Context) error {
		out, err := g.gateway.Complete(ctx, spec)
		if err != nil {
			if IsRateLimited(err) {
				g.logger.Warnf("Completion rate limited, backing off: %v", err)
			} else {
				g.logger.Errorf("Completion request failed: %v", err)
			}
			return err
		}
		text = strings.TrimSpace(out)
		return nil
	})
	if err != nil {
		return "", NewErrorWithCause(ErrCodeGeneration, "content generation failed after retries", err)
	}

	return truncate(text, maxLen), nil
}

// GenerateTopics asks for n topics and returns at most n cleaned lines.
// Numeric list prefixes ("1. ", "2) ") the model tends to add are stripped
// because the sheet column already carries the sequence number. Fewer than
// n usable lines is not an error here: EnsureMonthQueue tops the queue up
// on its next run.
func (g *ContentGenerator) GenerateTopics(ctx context.Context, spec PromptSpec, n, maxLen int) ([]string, error) {
	text, err := g.Generate(ctx, spec, maxLen)
	if err != nil {
		return nil, err
	}

	topics := make([]string, 0, n)
	for _, line := range strings.Split(text, "\n") {
		topic := stripListPrefix(strings.TrimSpace(line))
		if topic == "" {
			continue
		}
		topics = append(topics, topic)
		if len(topics) == n {
			break
		}
	}
	if len(topics) < n {
		g.logger.Warnf("Topic list shorter than requested: got %d of %d", len(topics), n)
	}
	return topics, nil
}

// truncate cuts s to at most maxLen characters without splitting a rune.
func truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen])
}

// stripListPrefix removes a leading "12." / "12)" list marker.
func stripListPrefix(s string) string {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 || i >= len(s) || (s[i] != '.' && s[i] != ')') {
		return s
	}
	return strings.TrimSpace(s[i+1:])
}
