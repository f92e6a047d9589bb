// Package main provides the post-bot daemon: catch-up on startup, then
// cron-scheduled channel publication until the process is terminated.
package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	postbot "github.com/zioncoderone/post-bot"
	"github.com/zioncoderone/post-bot/adapters/openai"
	relicaadapter "github.com/zioncoderone/post-bot/adapters/relica"
	"github.com/zioncoderone/post-bot/adapters/telegram"
	"github.com/zioncoderone/post-bot/cmd/post-bot/internal/config"
)

// SimpleLogger implements postbot.Logger for standard logging.
type SimpleLogger struct{}

func (l *SimpleLogger) Debugf(format string, args ...interface{}) {
	log.Printf("[DEBUG] "+format, args...)
}
func (l *SimpleLogger) Infof(format string, args ...interface{}) {
	log.Printf("[INFO] "+format, args...)
}
func (l *SimpleLogger) Warnf(format string, args ...interface{}) {
	log.Printf("[WARN] "+format, args...)
}
func (l *SimpleLogger) Errorf(format string, args ...interface{}) {
	log.Printf("[ERROR] "+format, args...)
}
func (l *SimpleLogger) Info(message string) {
	log.Printf("[INFO] %s", message)
}

func main() {
	log.Println("Starting post-bot...")

	// Startup-time structural failures are fatal: the process must not
	// run half-configured.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		log.Fatalf("Failed to resolve timezone: %v", err)
	}

	secondary, err := cfg.SecondaryTriggers()
	if err != nil {
		log.Fatalf("Failed to parse secondary trigger times: %v", err)
	}

	log.Printf("Configuration loaded:")
	log.Printf("   Sheet store: %s (%s)", cfg.Database.Driver, cfg.Database.RedactedDSN())
	log.Printf("   Timezone: %s", cfg.Timezone)
	log.Printf("   Daily post: %s, promos: %v", cfg.DailyTrigger(), secondary)

	// Connect to the sheet store
	db, err := sql.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		log.Fatalf("Failed to open sheet store: %v", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			log.Printf("Failed to close sheet store: %v", closeErr)
		}
	}()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to sheet store: %v", err)
	}
	if err := postbot.ApplyMigrations(db); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}
	log.Println("Sheet store ready")

	logger := &SimpleLogger{}

	// External gateways
	sheets := relicaadapter.NewSheetGateway(db, cfg.Database.Driver)
	completion := openai.New(cfg.OpenAIAPIKey)
	channel, err := telegram.New(cfg.TelegramToken, cfg.ChatID)
	if err != nil {
		log.Fatalf("Failed to create telegram gateway: %v", err)
	}
	log.Println("Gateways initialized")

	// Services
	generator := postbot.NewContentGenerator(completion, logger)
	publisher := postbot.NewChannelPublisher(channel, postbot.CallToAction(cfg.BotUsername), logger)
	store := postbot.NewTopicStore(sheets, generator, postbot.TopicSettings{
		Model:  cfg.ModelMain,
		MaxLen: cfg.MainPostMaxLen,
	}, logger)

	pipeline, err := postbot.NewPipeline(
		postbot.WithPipelineStore(store),
		postbot.WithPipelineGenerator(generator),
		postbot.WithPipelinePublisher(publisher),
		postbot.WithPipelineSettings(postbot.PostSettings{
			MainModel:   cfg.ModelMain,
			MainMaxLen:  cfg.MainPostMaxLen,
			PromoModel:  cfg.ModelSecond,
			PromoMaxLen: cfg.SecondPostMaxLen,
			ImageRef:    cfg.ImageURL,
		}),
		postbot.WithPipelineLogger(logger),
		postbot.WithPipelineNotifications(postbot.NewLoggingNotificationService(logger)),
	)
	if err != nil {
		log.Fatalf("Failed to create pipeline: %v", err)
	}
	log.Println("Pipeline created")

	scheduler := postbot.NewScheduler(store, pipeline, pipeline, postbot.SchedulerConfig{
		Location:       loc,
		Daily:          cfg.DailyTrigger(),
		SecondaryTimes: secondary,
	}, logger,
		postbot.WithSchedulerNotifications(postbot.NewLoggingNotificationService(logger)),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Reconcile whatever was missed while the process was down. A
	// transient failure here is not fatal: the daily trigger retries the
	// same ensure+publish work, so the live schedule still starts.
	if err := scheduler.CatchUp(ctx); err != nil {
		logger.Errorf("Catch-up failed: %v", err)
	}

	if err := scheduler.Start(); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}
	log.Println("post-bot is running")

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	cancel()
	scheduler.Stop()
	log.Println("post-bot stopped")
}
