// Package postbot provides an automated content publication service for Go
// that keeps a durable month-by-month queue of post topics, generates post
// text through a chat-completion service, and publishes posts to a messaging
// channel on a daily schedule with catch-up after downtime.
//
// Works both as a library for embedding in your application AND as a
// standalone daemon (cmd/post-bot).
//
// # Features
//
//   - Idempotent Month Queues: each calendar month owns a named sheet with
//     one topic row per day; populating an existing queue never rewrites rows
//   - Pending → Published status tracking per row, with a visually marked
//     success cell so a human can audit (and pre-edit) the sheet
//   - Catch-up on startup: the previous month's backlog and any days missed
//     while the process was down are published before the live schedule starts
//   - Bounded Retry everywhere: 3 attempts with a fixed delay around every
//     completion request and channel send, honoring provider-signaled waits
//     (rate limits, flood control) exactly
//   - Per-item failure isolation: one bad topic never aborts the batch
//   - Cron-based live triggers in a configured timezone: one daily post run
//     plus any number of stateless promotional posts per day
//   - Repository/Gateway Pattern for clean data access abstraction
//   - Options Pattern for modern Go API design
//   - Pluggable architecture: bring your own Logger, Notification system
//   - Tabular sheet store backed by SQLite, MySQL, or PostgreSQL via Relica
//   - Embedded Migrations for easy database setup
//
// # Quick Start
//
// First, apply the database migrations:
//
//	import (
//	    "database/sql"
//	    postbot "github.com/zioncoderone/post-bot"
//	    _ "github.com/mattn/go-sqlite3"
//	)
//
//	db, _ := sql.Open("sqlite3", "post-bot.db")
//	if err := postbot.ApplyMigrations(db); err != nil {
//	    log.Fatal(err)
//	}
//
// Wire the gateways and services:
//
//	sheets := relica.NewSheetGateway(db, "sqlite3")
//	gen := postbot.NewContentGenerator(openaiGateway, logger)
//	pub := postbot.NewChannelPublisher(telegramGateway, cta, logger)
//	store := postbot.NewTopicStore(sheets, gen, topicSettings, logger)
//
//	pipeline, _ := postbot.NewPipeline(
//	    postbot.WithPipelineStore(store),
//	    postbot.WithPipelineGenerator(gen),
//	    postbot.WithPipelinePublisher(pub),
//	    postbot.WithPipelineSettings(settings),
//	    postbot.WithPipelineLogger(logger),
//	)
//
// Publish everything still pending for a month, up to a day:
//
//	mk := model.MonthKey{Year: 2025, Month: time.February}
//	err := pipeline.PublishUnpublished(ctx, mk, 5)
//
// Or run the full scheduler (catch-up + cron triggers):
//
//	sched := postbot.NewScheduler(store, pipeline, pipeline, schedCfg, logger)
//	if err := sched.CatchUp(ctx); err != nil {
//	    logger.Errorf("catch-up: %v", err)
//	}
//	sched.Start()
//	defer sched.Stop()
//
// # Architecture
//
// The service is split into five layers, leaves first:
//
//   - ContentGenerator: retry-wrapped completion requests (no state)
//   - ChannelPublisher: retry-wrapped channel sends with flood-control waits
//   - TopicStore: the durable per-month queue over a SheetGateway
//   - Pipeline: turns unpublished topics into published posts, one at a time
//   - Scheduler: startup catch-up plus cron-based live triggers
//
// All external calls run under context.Context and a bounded retry.Policy.
// The store write is intentionally not transactional with the channel send:
// a crash between delivering a post and marking its row can cause one
// duplicate send on the next catch-up run, which is an accepted bounded risk.
package postbot
