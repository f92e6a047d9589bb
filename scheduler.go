package postbot

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/zioncoderone/post-bot/model"
)

// QueueEnsurer guarantees a month queue exists fully populated.
// Satisfied by *TopicStore.
type QueueEnsurer interface {
	EnsureMonthQueue(ctx context.Context, mk model.MonthKey) (string, int, error)
}

// QueuePublisher publishes a month's pending items up to a day.
// Satisfied by *Pipeline.
type QueuePublisher interface {
	PublishUnpublished(ctx context.Context, mk model.MonthKey, upToDay int) error
}

// PromoSender sends one stateless promotional post.
// Satisfied by *Pipeline.
type PromoSender interface {
	SendPromo(ctx context.Context) error
}

// DayTime is a wall-clock trigger time in the scheduler's timezone.
type DayTime struct {
	Hour   int
	Minute int
}

func (t DayTime) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// SchedulerConfig carries the trigger schedule. Treated as an immutable
// snapshot for the process lifetime.
type SchedulerConfig struct {
	Location       *time.Location // Timezone all triggers are evaluated in
	Daily          DayTime        // Daily post trigger
	SecondaryTimes []DayTime      // Promotional post triggers
}

// Scheduler triggers the publishing pipeline on a cron-like schedule and
// reconciles runs missed while the process was not running.
//
// Trigger handlers serialize against each other: exactly one pipeline run
// executes at a time, so there is never more than one consumer of a Month
// Queue. A failure inside any handler is logged and never stops the cron
// runner or future triggers.
type Scheduler struct {
	ensurer  QueueEnsurer
	queue    QueuePublisher
	promo    PromoSender
	cfg      SchedulerConfig
	logger   Logger
	notifier NotificationService

	now func() time.Time

	mu   sync.Mutex // serializes trigger handlers
	cron *cron.Cron
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithClock overrides the scheduler's wall clock. Tests inject a fixed
// time here; the catch-up decisions all hinge on "now" versus the daily
// trigger time.
func WithClock(now func() time.Time) SchedulerOption {
	return func(s *Scheduler) { s.now = now }
}

// WithSchedulerNotifications sets an optional notification service that
// receives queue population events.
func WithSchedulerNotifications(service NotificationService) SchedulerOption {
	return func(s *Scheduler) { s.notifier = service }
}

// NewScheduler creates a Scheduler. A nil cfg.Location falls back to the
// local timezone; a nil logger falls back to NoopLogger.
func NewScheduler(ensurer QueueEnsurer, queue QueuePublisher, promo PromoSender, cfg SchedulerConfig, logger Logger, opts ...SchedulerOption) *Scheduler {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if logger == nil {
		logger = &NoopLogger{}
	}
	s := &Scheduler{
		ensurer:  ensurer,
		queue:    queue,
		promo:    promo,
		cfg:      cfg,
		logger:   logger,
		notifier: &NoOpNotificationService{},
	}
	s.now = func() time.Time { return time.Now().In(cfg.Location) }
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CatchUp reconciles everything missed while the process was down. Run
// exactly once at startup, before Start:
//
//  1. Ensure the previous month's queue is fully populated and publish all
//     of its still-unpublished items (anything never reached before the
//     restart).
//  2. Ensure the current month's queue is fully populated.
//  3. If the clock is already past today's daily trigger time, publish
//     through today; otherwise publish through yesterday only and leave
//     today for the live trigger. On day 1 before the trigger there is no
//     yesterday in this queue and nothing is published.
func (s *Scheduler) CatchUp(ctx context.Context) error {
	now := s.now().In(s.cfg.Location)
	cur := model.MonthKeyFor(now)
	prev := cur.Prev()

	s.logger.Infof("Catch-up: reconciling %s and %s", prev, cur)

	if err := s.ensureMonth(ctx, prev); err != nil {
		return err
	}
	if err := s.queue.PublishUnpublished(ctx, prev, prev.Days()); err != nil {
		return err
	}

	if err := s.ensureMonth(ctx, cur); err != nil {
		return err
	}

	trigger := time.Date(now.Year(), now.Month(), now.Day(),
		s.cfg.Daily.Hour, s.cfg.Daily.Minute, 0, 0, s.cfg.Location)
	switch {
	case now.After(trigger):
		// Today's scheduled run already passed; it is ours to make up.
		return s.queue.PublishUnpublished(ctx, cur, now.Day())
	case now.Day() > 1:
		return s.queue.PublishUnpublished(ctx, cur, now.Day()-1)
	default:
		s.logger.Debugf("Catch-up: day 1 before trigger time, nothing to publish yet")
		return nil
	}
}

// Start registers the cron triggers and launches the scheduler. Handlers
// run as independent units of work; panics are recovered and logged.
func (s *Scheduler) Start() error {
	c := cron.New(
		cron.WithLocation(s.cfg.Location),
		cron.WithChain(cron.Recover(&cronLogger{logger: s.logger})),
	)

	daily := fmt.Sprintf("%d %d * * *", s.cfg.Daily.Minute, s.cfg.Daily.Hour)
	if _, err := c.AddFunc(daily, func() { s.RunDaily(context.Background()) }); err != nil {
		return NewErrorWithCause(ErrCodeConfiguration, "invalid daily trigger", err)
	}
	s.logger.Infof("Daily post scheduled at %s", s.cfg.Daily)

	for i, st := range s.cfg.SecondaryTimes {
		spec := fmt.Sprintf("%d %d * * *", st.Minute, st.Hour)
		if _, err := c.AddFunc(spec, func() { s.RunPromo(context.Background()) }); err != nil {
			return NewErrorWithCause(ErrCodeConfiguration, fmt.Sprintf("invalid secondary trigger %s", st), err)
		}
		s.logger.Infof("Promo post %d scheduled at %s", i+1, st)
	}

	c.Start()
	s.cron = c
	return nil
}

// Stop halts the cron runner and waits for a running handler to finish.
func (s *Scheduler) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
}

// RunDaily is the daily trigger handler: ensure the current month's queue,
// publish everything pending through today, and on the last calendar day
// of the month additionally ensure next month's queue so content is ready
// before it is needed. Errors are logged, never propagated: one failed
// trigger must not prevent future ones.
func (s *Scheduler) RunDaily(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().In(s.cfg.Location)
	cur := model.MonthKeyFor(now)

	s.logger.Debugf("Daily trigger fired for %s day %d", cur, now.Day())

	if err := s.ensureMonth(ctx, cur); err != nil {
		s.logger.Errorf("Daily trigger: %v", err)
		return
	}
	if err := s.queue.PublishUnpublished(ctx, cur, now.Day()); err != nil {
		s.logger.Errorf("Daily trigger: %v", err)
	}

	if cur.IsLastDay(now.Day()) {
		next := cur.Next()
		s.logger.Infof("Last day of %s, preparing sheet %s", cur, next)
		if err := s.ensureMonth(ctx, next); err != nil {
			s.logger.Errorf("Daily trigger: preparing next month: %v", err)
		}
	}
}

// RunPromo is the secondary trigger handler: one promotional post.
func (s *Scheduler) RunPromo(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logger.Debugf("Promo trigger fired")
	if err := s.promo.SendPromo(ctx); err != nil {
		s.logger.Errorf("Promo trigger: %v", err)
	}
}

func (s *Scheduler) ensureMonth(ctx context.Context, mk model.MonthKey) error {
	sheet, added, err := s.ensurer.EnsureMonthQueue(ctx, mk)
	if err != nil {
		return fmt.Errorf("failed to ensure month queue %s: %w", mk, err)
	}
	if added > 0 {
		s.logger.Infof("Month queue %s populated (+%d topics)", sheet, added)
		if nerr := s.notifier.NotifyQueuePopulated(ctx, mk, added); nerr != nil {
			s.logger.Warnf("Failed to send queue-populated notification: %v", nerr)
		}
	}
	return nil
}

// cronLogger adapts Logger to the cron.Logger interface used by the
// Recover chain.
type cronLogger struct {
	logger Logger
}

func (l *cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debugf("cron: %s %v", msg, keysAndValues)
}

func (l *cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Errorf("cron: %s: %v %v", msg, err, keysAndValues)
}
