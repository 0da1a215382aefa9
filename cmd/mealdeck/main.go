// Command mealdeck runs a single extraction and prints the resulting record
// as JSON on stdout. Modes: url (structured-only), url-ai, text, image, menu.
package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mealdeck/mealdeck/internal/app"
	"github.com/mealdeck/mealdeck/internal/pdfcard"
	"github.com/mealdeck/mealdeck/internal/pipeline"
	"github.com/mealdeck/mealdeck/internal/record"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		mode        string
		pageURL     string
		text        string
		textFile    string
		imagePath   string
		pdfPath     string
		configPath  string
		llmBaseURL  string
		llmModel    string
		visionModel string
		llmKey      string
		cacheDir    string
		verbose     bool
	)

	flag.StringVar(&mode, "mode", "url-ai", "Extraction mode: url, url-ai, text, image, menu")
	flag.StringVar(&pageURL, "url", "", "Page URL for url/url-ai/menu modes")
	flag.StringVar(&text, "text", "", "Inline recipe text for text mode")
	flag.StringVar(&textFile, "text.file", "", "Path to a file with recipe text for text mode")
	flag.StringVar(&imagePath, "image", "", "Path to a recipe image for image mode")
	flag.StringVar(&pdfPath, "pdf", "", "Also write the extracted recipe as a PDF card to this path")
	flag.StringVar(&configPath, "config", "", "Path to YAML or JSON config file")
	flag.StringVar(&llmBaseURL, "llm.base", "", "OpenAI-compatible base URL")
	flag.StringVar(&llmModel, "llm.model", "", "Model name")
	flag.StringVar(&visionModel, "llm.vision", "", "Vision model name (defaults to llm.model)")
	flag.StringVar(&llmKey, "llm.key", "", "API key for the model endpoint")
	flag.StringVar(&cacheDir, "cache.dir", "", "Cache directory for pages and model replies")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	cfg := app.Config{
		LLMBaseURL:  llmBaseURL,
		LLMModel:    llmModel,
		VisionModel: visionModel,
		LLMAPIKey:   llmKey,
		CacheDir:    cacheDir,
		Verbose:     verbose,
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

	ctx := context.Background()
	out, err := run(ctx, a, mode, pageURL, text, textFile, imagePath)
	if err != nil {
		if errors.Is(err, pipeline.ErrNoStructuredData) {
			log.Fatal().Msg("no structured recipe data on this page; retry with -mode url-ai")
		}
		log.Fatal().Err(err).Msg("extraction failed")
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatal().Err(err).Msg("encode output")
	}

	if pdfPath != "" {
		rec, ok := out.(record.RecipeRecord)
		if !ok {
			log.Fatal().Msg("-pdf applies to recipe modes only")
		}
		if err := pdfcard.Write(rec, pdfPath); err != nil {
			log.Fatal().Err(err).Msg("write pdf card")
		}
		log.Info().Str("path", pdfPath).Msg("wrote recipe card")
	}
}

func run(ctx context.Context, a *app.App, mode, pageURL, text, textFile, imagePath string) (any, error) {
	switch mode {
	case "url":
		if pageURL == "" {
			return nil, errors.New("-url is required")
		}
		return a.Pipeline.ExtractFromURL(ctx, pageURL, false)
	case "url-ai":
		if pageURL == "" {
			return nil, errors.New("-url is required")
		}
		return a.Pipeline.ExtractFromURL(ctx, pageURL, true)
	case "text":
		if textFile != "" {
			b, err := os.ReadFile(textFile)
			if err != nil {
				return nil, fmt.Errorf("read text file: %w", err)
			}
			text = string(b)
		}
		if strings.TrimSpace(text) == "" {
			return nil, errors.New("-text or -text.file is required")
		}
		return a.Pipeline.ExtractFromText(ctx, text)
	case "image":
		if imagePath == "" {
			return nil, errors.New("-image is required")
		}
		b, err := os.ReadFile(imagePath)
		if err != nil {
			return nil, fmt.Errorf("read image: %w", err)
		}
		mediaType, err := imageMediaType(imagePath)
		if err != nil {
			return nil, err
		}
		return a.Pipeline.ExtractFromImage(ctx, base64.StdEncoding.EncodeToString(b), mediaType)
	case "menu":
		if pageURL == "" {
			return nil, errors.New("-url is required")
		}
		return a.Pipeline.ExtractMenu(ctx, pageURL)
	default:
		return nil, fmt.Errorf("unknown mode %q", mode)
	}
}

func imageMediaType(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "image/jpeg", nil
	case ".png":
		return "image/png", nil
	case ".webp":
		return "image/webp", nil
	default:
		return "", fmt.Errorf("unsupported image type %q", filepath.Ext(path))
	}
}
