package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/redis/go-redis/v9"

	"github.com/projects-showcase/reservation-bot/config"
	"github.com/projects-showcase/reservation-bot/internal/audit"
	"github.com/projects-showcase/reservation-bot/internal/health"
	"github.com/projects-showcase/reservation-bot/internal/locker"
	"github.com/projects-showcase/reservation-bot/internal/reservation/repository"
	"github.com/projects-showcase/reservation-bot/internal/reservation/service"
	"github.com/projects-showcase/reservation-bot/internal/telegram"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := repository.NewSheetsStore(ctx, cfg.Sheets.CredentialsFile, cfg.Sheets.SpreadsheetID)
	if err != nil {
		log.Fatalf("sheets: %v", err)
	}
	if err := store.Ping(ctx); err != nil {
		log.Fatalf("sheets: spreadsheet unreachable: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer redisClient.Close()

	locks := locker.New(redisClient, cfg.App.LockTTL)
	engine := service.NewReservationService(store)

	bot, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
	if err != nil {
		log.Fatalf("telegram: %v", err)
	}

	gateway := telegram.NewGateway(bot)
	dispatcher := telegram.NewDispatcher(bot, gateway, engine, locks, cfg.App.EventTimeout)

	auditor := audit.New(store)
	if err := auditor.Start(cfg.App.AuditSchedule); err != nil {
		log.Fatalf("audit: %v", err)
	}
	defer auditor.Stop()

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: health.NewRouter(store),
	}
	go func() {
		log.Printf("health: listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("health: server stopped: %v", err)
		}
	}()

	// Blocks until the stop signal arrives and in-flight events drain.
	dispatcher.Run(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("health: shutdown: %v", err)
	}

	log.Println("bot stopped")
}
