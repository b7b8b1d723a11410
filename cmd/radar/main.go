package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"MarketRadar/internal/collector"
	"MarketRadar/internal/config"
	"MarketRadar/internal/model"
	"MarketRadar/internal/notifier"
	"MarketRadar/internal/recorder"
	"MarketRadar/internal/scanner"
	"MarketRadar/internal/scheduler"
	"MarketRadar/internal/store"
	"MarketRadar/internal/strategy"
)

// minLastPrice filters out dust symbols from the universe.
const minLastPrice = 0.01

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	log.Info().Msg("MarketRadar starting...")

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config validation")
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	// Market data client
	fetcher := collector.NewBinanceFetcher(cfg.SpotBaseURL, cfg.FuturesBaseURL)
	log.Info().Str("source", fetcher.Name()).Msg("data source ready")

	filter := model.UniverseFilter{
		MinLastPrice:   minLastPrice,
		MinQuoteVolume: cfg.MinQuoteVolumeUSD,
		TopN:           cfg.TopN,
	}
	if cfg.OnlyUSDT {
		filter.QuoteSuffix = "USDT"
	}
	thresholds := strategy.Thresholds{
		MinVolumeSurge: cfg.MinVolSurge,
		MinMomentum15m: cfg.MinMomentum15m,
		MaxFundingHot:  cfg.MaxFundingHot,
		MinOIGrowth:    cfg.MinOIGrowth,
	}
	limiter := rate.NewLimiter(rate.Every(time.Duration(cfg.SymbolDelayMS)*time.Millisecond), 1)
	sc := scanner.New(fetcher, filter, thresholds, limiter)

	// Persistence
	signalLog := store.NewJSONFileLog(cfg.SignalsFile, cfg.MaxSignalEntries)

	var rec recorder.Recorder
	if cfg.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.SQLitePath)
		if err != nil {
			log.Warn().Err(err).Msg("init sqlite recorder failed, using noop")
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Notification sink
	var nt notifier.Notifier = notifier.NewNoopNotifier()
	var tg *notifier.TelegramNotifier
	if cfg.EnableTelegram {
		tg, err = notifier.NewTelegramNotifier(cfg.TelegramBotToken, cfg.TelegramChatID)
		if err != nil {
			log.Warn().Err(err).Msg("init telegram failed, notifications disabled")
		} else {
			nt = tg
		}
	}

	sched := scheduler.New(sc, signalLog, rec, nt, time.Duration(cfg.IntervalSec)*time.Second)
	if err := sched.RegisterDigest(cfg.DigestCron); err != nil {
		log.Fatal().Err(err).Msg("register digest task")
	}

	if tg != nil {
		if err := tg.SendStartupPing(ctx); err != nil {
			log.Error().Err(err).Msg("startup ping failed")
		}
		go tg.ListenCommands(ctx, sched.HandleCommand)
		log.Info().Msg("telegram command listener started")
	}

	log.Info().Msg("MarketRadar is running. Press Ctrl+C to stop.")
	sched.Run(ctx)
	log.Info().Msg("MarketRadar stopped")
}
