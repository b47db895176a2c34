package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"lanewar/internal/ai"
	"lanewar/internal/combat"
	"lanewar/internal/config"
	"lanewar/internal/feed"
	"lanewar/internal/match"
	"lanewar/internal/protocol"
	"lanewar/internal/provider"
)

func main() {
	var catalogPath, envPath, modeName, difficulty, addr, out, logLevel string
	var seed int64
	var n, workers int
	var maxTime float64
	var start bool
	flag.StringVar(&catalogPath, "catalog", "", "catalog yaml (default: built-in)")
	flag.StringVar(&envPath, "env", ".env", "optional dotenv file")
	flag.StringVar(&modeName, "mode", "scripted", "opponent policy: scripted or external")
	flag.StringVar(&difficulty, "difficulty", "normal", "easy, normal, hard or super_hard")
	flag.StringVar(&addr, "addr", "", "listen address (default LANEWAR_ADDR or :8080)")
	flag.IntVar(&n, "n", 0, "headless: number of matches to simulate; 0 serves a live match")
	flag.IntVar(&workers, "workers", 8, "headless: worker count")
	flag.Int64Var(&seed, "seed", 12345, "headless: autopilot seed")
	flag.Float64Var(&maxTime, "max-time", 1200, "headless: match time cap in seconds")
	flag.StringVar(&out, "out", "summary.json", "headless: summary file")
	flag.BoolVar(&start, "start", false, "live: start a match immediately instead of waiting in the menu")
	flag.StringVar(&logLevel, "log-level", "", "debug, info, warn or error (default LANEWAR_LOG_LEVEL or info)")
	flag.Parse()

	env, err := config.LoadEnv(envPath)
	if err != nil {
		fatal(err)
	}
	level := env.LogLevel
	if logLevel != "" {
		if level, err = config.ParseLevel(logLevel); err != nil {
			fatal(err)
		}
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	cat, err := config.LoadCatalog(catalogPath)
	if err != nil {
		fatal(err)
	}
	mode, err := match.ParseMode(modeName)
	if err != nil {
		fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := provider.FromEnv(ctx, env)
	if err != nil {
		fatal(err)
	}
	var prov ai.Provider
	if client != nil {
		prov = client
	} else if mode == combat.ModeExternal {
		log.Warn("no provider configured, the external opponent will not act")
	}

	if n > 0 {
		sum, err := match.RunBatch(ctx, match.BatchConfig{
			Catalog:         cat,
			Mode:            mode,
			Difficulty:      difficulty,
			Runs:            n,
			Workers:         workers,
			Seed:            seed,
			MaxTime:         maxTime,
			Provider:        prov,
			ProviderTimeout: env.ProviderTimeout,
			Logger:          log,
		})
		if err != nil {
			fatal(err)
		}
		b, err := protocol.MarshalPretty(sum)
		if err != nil {
			fatal(err)
		}
		if err := os.WriteFile(out, b, 0644); err != nil {
			fatal(err)
		}
		fmt.Printf("Batch %d done. Win rate %.2f, avg %.1fs -> %s\n", n, sum.WinRate, sum.AvgDuration, filepath.Base(out))
		return
	}

	if addr == "" {
		addr = env.Addr
	}
	m := match.New(match.Options{
		Catalog:         cat,
		Logger:          log,
		Provider:        prov,
		ProviderTimeout: env.ProviderTimeout,
		Sink:            match.LogSink{Log: log},
	})
	if start {
		if err := m.Start(mode, difficulty); err != nil {
			fatal(err)
		}
	}
	go func() { _ = m.Run(ctx) }()

	srv := &http.Server{
		Addr:              addr,
		Handler:           feed.New(m, int(cat.TickRate), log),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdown)
	}()
	log.Info("listening", "addr", addr, "ws", "/ws")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		fatal(err)
	}
}

func fatal(err error) {
	slog.Error("lanewar", "err", err)
	os.Exit(1)
}
