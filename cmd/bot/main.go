package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Spok95/telegisto-bot/internal/bot"
	"github.com/Spok95/telegisto-bot/internal/config"
	"github.com/Spok95/telegisto-bot/internal/conversions"
	"github.com/Spok95/telegisto-bot/internal/domain/subscriptions"
	"github.com/Spok95/telegisto-bot/internal/domain/users"
	"github.com/Spok95/telegisto-bot/internal/infra/db"
	httpx "github.com/Spok95/telegisto-bot/internal/infra/http"
	"github.com/Spok95/telegisto-bot/internal/infra/logger"
	"github.com/Spok95/telegisto-bot/internal/infra/telegram"
)

func fatal(log *slog.Logger, msg string, err error) {
	log.Error(msg, "err", err)
	os.Exit(1)
}

func main() {
	cfg, err := config.Load("config/example.yaml")
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.App.Env)

	if err := cfg.Validate(); err != nil {
		fatal(log, "invalid config", err)
	}

	if err := db.Migrate(cfg.Postgres.DSN); err != nil {
		fatal(log, "migrations failed", err)
	}
	log.Info("migrations applied")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg.Postgres.DSN)
	if err != nil {
		fatal(log, "db connect failed", err)
	}
	defer pool.Close()
	log.Info("db connected")

	usersRepo := users.NewRepo(pool)
	oracle := subscriptions.NewOracle(log, subscriptions.NewUsageRepo(pool))

	api, err := telegram.NewAPI(cfg.Telegram.Token, cfg.Telegram.Debug)
	if err != nil {
		fatal(log, "telegram init failed", err)
	}
	log.Info("bot authorized", "username", api.Self.UserName)

	sink := telegram.NewSink(api, cfg.Telegram.RatePerSecond)

	var (
		reg      prometheus.Registerer
		gatherer prometheus.Gatherer
	)
	if cfg.Metrics.Enabled {
		reg, gatherer = prometheus.DefaultRegisterer, prometheus.DefaultGatherer
	}

	seed := cfg.Queue.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	queue := conversions.NewQueue(log, conversions.Options{
		Resolver:    conversions.NewSimulatedResolver(seed),
		Transcoder:  conversions.SimulatedTranscoder{Unit: cfg.Queue.TimeUnit},
		Notifier:    sink,
		Usage:       oracle,
		Metrics:     conversions.NewMetrics(reg),
		SettleDelay: cfg.Queue.SettleDelay,
	})

	srv := httpx.New(cfg.HTTP.Addr, gatherer)
	go func() {
		if err := srv.Start(); err != nil {
			log.Error("http server error", "err", err)
		}
	}()
	log.Info("HTTP server started", "addr", cfg.HTTP.Addr)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = cfg.Telegram.PollTimeout
	updates := api.GetUpdatesChan(u)

	b := bot.New(sink, log, oracle, queue, usersRepo, cfg.Telegram.Username, reg)
	log.Info("bot started")
	if err := b.Run(ctx, updates); err != nil && ctx.Err() == nil {
		log.Error("bot stopped", "err", err)
	}

	api.StopReceivingUpdates()
	queue.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Info("graceful shutdown complete")
}
