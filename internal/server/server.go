// Package server exposes the extraction pipeline over HTTP. Input validation
// lives here, at the transport boundary: the pipeline below assumes bounded,
// well-formed input, and the coercer below that never rejects anything.
package server

import (
	"encoding/base64"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mealdeck/mealdeck/internal/app"
	"github.com/mealdeck/mealdeck/internal/pipeline"
)

// Server wires the pipeline and middleware into a gin router.
type Server struct {
	App     *app.App
	Limiter *RateLimiter
}

var allowedImageTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/webp": {},
}

// Router builds the HTTP surface.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger())

	corsCfg := cors.DefaultConfig()
	if len(s.App.Config.AllowedOrigins) > 0 {
		corsCfg.AllowOrigins = s.App.Config.AllowedOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	r.Use(cors.New(corsCfg))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	extract := r.Group("/api/v1/extract")
	if s.Limiter != nil {
		extract.Use(s.Limiter.Middleware())
	}
	extract.POST("/url", s.handleURL)
	extract.POST("/text", s.handleText)
	extract.POST("/image", s.handleImage)
	extract.POST("/menu", s.handleMenu)
	return r
}

// requestLogger tags every request with an ID and logs its outcome.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.NewString()
		c.Set("request_id", id)
		c.Header("X-Request-ID", id)
		start := time.Now()
		c.Next()
		log.Info().
			Str("request_id", id).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	}
}

type urlRequest struct {
	URL      string `json:"url"`
	Assisted bool   `json:"assisted"`
}

type textRequest struct {
	Text string `json:"text"`
}

type imageRequest struct {
	ImageBase64 string `json:"image_base64"`
	MediaType   string `json:"media_type"`
}

func (s *Server) handleURL(c *gin.Context) {
	var req urlRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, &pipeline.ValidationError{Field: "body", Reason: "malformed JSON"})
		return
	}
	if err := validatePageURL(req.URL); err != nil {
		writeError(c, err)
		return
	}
	rec, err := s.App.Pipeline.ExtractFromURL(c.Request.Context(), req.URL, req.Assisted)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (s *Server) handleText(c *gin.Context) {
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, &pipeline.ValidationError{Field: "body", Reason: "malformed JSON"})
		return
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		writeError(c, &pipeline.ValidationError{Field: "text", Reason: "must not be empty"})
		return
	}
	if len(text) > s.App.Config.MaxTextChars {
		writeError(c, &pipeline.ValidationError{Field: "text", Reason: "exceeds maximum length"})
		return
	}
	rec, err := s.App.Pipeline.ExtractFromText(c.Request.Context(), text)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (s *Server) handleImage(c *gin.Context) {
	var req imageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, &pipeline.ValidationError{Field: "body", Reason: "malformed JSON"})
		return
	}
	if _, ok := allowedImageTypes[req.MediaType]; !ok {
		writeError(c, &pipeline.ValidationError{Field: "media_type", Reason: "must be image/jpeg, image/png or image/webp"})
		return
	}
	raw, err := base64.StdEncoding.DecodeString(req.ImageBase64)
	if err != nil {
		writeError(c, &pipeline.ValidationError{Field: "image_base64", Reason: "not valid base64"})
		return
	}
	if len(raw) == 0 {
		writeError(c, &pipeline.ValidationError{Field: "image_base64", Reason: "must not be empty"})
		return
	}
	if len(raw) > s.App.Config.MaxImageBytes {
		writeError(c, &pipeline.ValidationError{Field: "image_base64", Reason: "image too large"})
		return
	}
	rec, err := s.App.Pipeline.ExtractFromImage(c.Request.Context(), req.ImageBase64, req.MediaType)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (s *Server) handleMenu(c *gin.Context) {
	var req urlRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, &pipeline.ValidationError{Field: "body", Reason: "malformed JSON"})
		return
	}
	if err := validatePageURL(req.URL); err != nil {
		writeError(c, err)
		return
	}
	menu, err := s.App.Pipeline.ExtractMenu(c.Request.Context(), req.URL)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, menu)
}

func validatePageURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return &pipeline.ValidationError{Field: "url", Reason: "must not be empty"}
	}
	if len(raw) > 2048 {
		return &pipeline.ValidationError{Field: "url", Reason: "too long"}
	}
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return &pipeline.ValidationError{Field: "url", Reason: "must be an absolute URL"}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return &pipeline.ValidationError{Field: "url", Reason: "must use http or https"}
	}
	return nil
}

// writeError maps the pipeline error taxonomy onto HTTP statuses. Each
// response tells the caller what it can do next.
func writeError(c *gin.Context, err error) {
	var ve *pipeline.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "message": ve.Error(), "retryable": false})
		return
	}
	if errors.Is(err, pipeline.ErrNoStructuredData) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "needs_ai", "message": "no structured recipe data on this page; retry with assisted mode", "retryable": true})
		return
	}
	if errors.Is(err, pipeline.ErrUnparseableReply) {
		c.JSON(http.StatusBadGateway, gin.H{"error": "parse_failed", "message": "the model reply contained no recipe; try again", "retryable": true})
		return
	}
	var te *pipeline.TransportError
	if errors.As(err, &te) {
		c.JSON(http.StatusBadGateway, gin.H{"error": te.Op + "_failed", "message": "upstream request failed; check the URL and try again", "retryable": true})
		return
	}
	// Unexpected failures stay generic so internal detail never leaks.
	log.Error().Err(err).Msg("unhandled extraction error")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": "extraction failed", "retryable": false})
}
