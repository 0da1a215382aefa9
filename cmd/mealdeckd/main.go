// Command mealdeckd serves the extraction API over HTTP.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mealdeck/mealdeck/internal/app"
	"github.com/mealdeck/mealdeck/internal/server"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		configPath string
		listenAddr string
		redisAddr  string
		llmBaseURL string
		llmModel   string
		llmKey     string
		cacheDir   string
		verbose    bool
	)
	flag.StringVar(&configPath, "config", "", "Path to YAML or JSON config file")
	flag.StringVar(&listenAddr, "listen", "", "Listen address (default :8080)")
	flag.StringVar(&redisAddr, "redis", "", "Redis address for rate limiting; empty disables the limiter")
	flag.StringVar(&llmBaseURL, "llm.base", "", "OpenAI-compatible base URL")
	flag.StringVar(&llmModel, "llm.model", "", "Model name")
	flag.StringVar(&llmKey, "llm.key", "", "API key for the model endpoint")
	flag.StringVar(&cacheDir, "cache.dir", "", "Cache directory for pages and model replies")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	cfg := app.Config{
		ListenAddr: listenAddr,
		RedisAddr:  redisAddr,
		LLMBaseURL: llmBaseURL,
		LLMModel:   llmModel,
		LLMAPIKey:  llmKey,
		CacheDir:   cacheDir,
		Verbose:    verbose,
	}
	if configPath != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", configPath).Msg("load config")
		}
		app.ApplyFileConfig(&cfg, fc)
	}
	app.ApplyEnvToConfig(&cfg)

	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	a, err := app.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("configuration")
	}

	var limiter *server.RateLimiter
	if a.Config.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: a.Config.RedisAddr})
		limiter = server.NewRateLimiter(rdb, a.Config.RatePerMinute, time.Minute)
		log.Info().Str("redis", a.Config.RedisAddr).Int("per_minute", a.Config.RatePerMinute).Msg("rate limiting enabled")
	}

	srv := &server.Server{App: a, Limiter: limiter}
	httpSrv := &http.Server{
		Addr:              a.Config.ListenAddr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", a.Config.ListenAddr).Msg("listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}
