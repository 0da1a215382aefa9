// Package app wires configuration into a runnable extraction service: fetch
// client, on-disk caches, model provider, and the pipeline itself.
package app

import (
	"errors"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/mealdeck/mealdeck/internal/cache"
	"github.com/mealdeck/mealdeck/internal/fetch"
	"github.com/mealdeck/mealdeck/internal/llm"
	"github.com/mealdeck/mealdeck/internal/pipeline"
)

// App is the assembled extraction service.
type App struct {
	Config   Config
	Pipeline *pipeline.Pipeline
}

// New assembles an App from cfg. The model client is required; caches are
// optional and enabled by setting CacheDir.
func New(cfg Config) (*App, error) {
	cfg = cfg.WithDefaults()
	if cfg.LLMModel == "" {
		return nil, errors.New("LLM model is required")
	}

	var pages *cache.PageCache
	var replies *cache.ReplyCache
	if cfg.CacheDir != "" {
		pages = &cache.PageCache{Dir: filepath.Join(cfg.CacheDir, "pages")}
		replies = &cache.ReplyCache{Dir: filepath.Join(cfg.CacheDir, "replies")}
	}

	fetcher := &fetch.Client{
		UserAgent:         cfg.UserAgent,
		MaxAttempts:       2,
		PerRequestTimeout: cfg.FetchTimeout,
		Cache:             pages,
	}

	provider := llm.NewOpenAIProvider(cfg.LLMBaseURL, cfg.LLMAPIKey)

	p := &pipeline.Pipeline{
		Fetch:       fetcher,
		Client:      provider,
		Model:       cfg.LLMModel,
		VisionModel: cfg.VisionModel,
		Replies:     replies,
	}
	log.Debug().Str("model", cfg.LLMModel).Str("vision_model", cfg.VisionModel).Bool("cache", cfg.CacheDir != "").Msg("app assembled")
	return &App{Config: cfg, Pipeline: p}, nil
}
