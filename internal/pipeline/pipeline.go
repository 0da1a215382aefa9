// Package pipeline composes fetching, structured-data extraction, HTML
// reduction, model calls, and coercion into the per-mode extraction flows.
// Each call is an independent task: the only shared state is the reply cache,
// which is safe for concurrent use.
package pipeline

import (
	"context"
	"encoding/json"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mealdeck/mealdeck/internal/cache"
	"github.com/mealdeck/mealdeck/internal/htmltext"
	"github.com/mealdeck/mealdeck/internal/llm"
	"github.com/mealdeck/mealdeck/internal/record"
	"github.com/mealdeck/mealdeck/internal/reply"
	"github.com/mealdeck/mealdeck/internal/schemaorg"
)

// Fetcher retrieves a page body. Satisfied by fetch.Client; tests substitute
// a fake.
type Fetcher interface {
	Get(ctx context.Context, pageURL string) ([]byte, string, error)
}

const defaultModelTimeout = 30 * time.Second

// Pipeline holds the collaborators every extraction mode shares.
type Pipeline struct {
	Fetch       Fetcher
	Client      llm.Client
	Model       string
	VisionModel string
	// Replies, when set, short-circuits repeat model calls.
	Replies *cache.ReplyCache
	// ModelTimeout bounds each model call. Zero means 30s.
	ModelTimeout time.Duration
}

// ExtractFromURL fetches a page and extracts a recipe. In structured-only
// mode (assisted=false) a page without schema.org Recipe markup yields
// ErrNoStructuredData so the caller can escalate to the assisted path. In
// assisted mode the structured data, when present, rides along in the prompt
// as context for the model.
func (p *Pipeline) ExtractFromURL(ctx context.Context, pageURL string, assisted bool) (record.RecipeRecord, error) {
	body, _, err := p.Fetch.Get(ctx, pageURL)
	if err != nil {
		return record.RecipeRecord{}, &TransportError{Op: "fetch", Err: err}
	}
	raw := string(body)

	cand, found := schemaorg.FindRecipe(raw)
	if !assisted {
		if !found {
			return record.RecipeRecord{}, ErrNoStructuredData
		}
		rec := record.CoerceRecipe(schemaorg.Normalize(cand, pageURL))
		return withSlugName(rec, pageURL), nil
	}

	var structuredJSON string
	if found {
		if b, err := json.Marshal(cand.Fields); err == nil {
			structuredJSON = string(b)
		}
	}
	reduced := htmltext.Reduce(raw)
	log.Debug().Str("stage", "extract_url").Bool("structured", found).Int("reduced_len", len(reduced)).Msg("extraction prompt context")

	text, err := p.completeText(ctx, p.Model, recipeSystemPrompt, urlUserPrompt(structuredJSON, reduced, pageURL))
	if err != nil {
		return record.RecipeRecord{}, err
	}
	obj, ok := reply.ExtractObject(text)
	if !ok {
		return record.RecipeRecord{}, ErrUnparseableReply
	}
	rec := record.CoerceRecipe(obj)
	if rec.SourceURL == nil {
		rec.SourceURL = &pageURL
	}
	if rec.ImageURL == nil && found && cand.ImageURL != "" {
		img := cand.ImageURL
		rec.ImageURL = &img
	}
	return withSlugName(rec, pageURL), nil
}

// ExtractFromText turns free-form text (a pasted recipe, an email, a note)
// into a record. The caller bounds and sanitizes the input.
func (p *Pipeline) ExtractFromText(ctx context.Context, text string) (record.RecipeRecord, error) {
	out, err := p.completeText(ctx, p.Model, recipeSystemPrompt, textUserPrompt(text))
	if err != nil {
		return record.RecipeRecord{}, err
	}
	obj, ok := reply.ExtractObject(out)
	if !ok {
		return record.RecipeRecord{}, ErrUnparseableReply
	}
	return record.CoerceRecipe(obj), nil
}

// ExtractFromImage sends a size-bounded base64 image through the vision
// model. mediaType must match the encoded bytes (e.g. "image/jpeg").
func (p *Pipeline) ExtractFromImage(ctx context.Context, imageB64, mediaType string) (record.RecipeRecord, error) {
	model := p.VisionModel
	if model == "" {
		model = p.Model
	}
	req := llm.VisionRequest(model, recipeSystemPrompt, visionUserPrompt, imageB64, mediaType)
	key := cache.ReplyKey(model, recipeSystemPrompt+"\n\n"+visionUserPrompt+"\n\n"+imageB64)
	out, err := p.complete(ctx, req, key)
	if err != nil {
		return record.RecipeRecord{}, err
	}
	obj, ok := reply.ExtractObject(out)
	if !ok {
		return record.RecipeRecord{}, ErrUnparseableReply
	}
	return record.CoerceRecipe(obj), nil
}

// ExtractMenu fetches a restaurant page and extracts its menu. Menu coercion
// is permissive: a thin or partial reply still yields a usable MenuRecord.
func (p *Pipeline) ExtractMenu(ctx context.Context, pageURL string) (record.MenuRecord, error) {
	body, _, err := p.Fetch.Get(ctx, pageURL)
	if err != nil {
		return record.MenuRecord{}, &TransportError{Op: "fetch", Err: err}
	}
	reduced := htmltext.Reduce(string(body))
	out, err := p.completeText(ctx, p.Model, menuSystemPrompt, menuUserPrompt(reduced, pageURL))
	if err != nil {
		return record.MenuRecord{}, err
	}
	obj, ok := reply.ExtractObject(out)
	if !ok {
		return record.MenuRecord{}, ErrUnparseableReply
	}
	return record.CoerceMenu(obj), nil
}

func (p *Pipeline) completeText(ctx context.Context, model, system, user string) (string, error) {
	req := llm.TextRequest(model, system, user)
	return p.complete(ctx, req, cache.ReplyKey(model, system+"\n\n"+user))
}

// complete runs one model call with the shared timeout and reply cache. No
// retries here: retry policy belongs to the caller.
func (p *Pipeline) complete(ctx context.Context, req openai.ChatCompletionRequest, key string) (string, error) {
	if p.Replies != nil {
		if cached, ok := p.Replies.Get(ctx, key); ok {
			log.Debug().Str("stage", "model").Str("model", req.Model).Msg("reply cache hit")
			return cached, nil
		}
	}
	timeout := p.ModelTimeout
	if timeout <= 0 {
		timeout = defaultModelTimeout
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := p.Client.CreateChatCompletion(callCtx, req)
	if err != nil {
		return "", &TransportError{Op: "model", Err: err}
	}
	text := strings.TrimSpace(llm.ReplyText(resp))
	if text == "" {
		return "", ErrUnparseableReply
	}
	if p.Replies != nil {
		_ = p.Replies.Save(ctx, key, text)
	}
	return text, nil
}

// withSlugName replaces the placeholder name with a title-cased URL slug when
// the source gave us nothing better.
func withSlugName(rec record.RecipeRecord, sourceURL string) record.RecipeRecord {
	if rec.Name != record.DefaultName {
		return rec
	}
	if name := nameFromSlug(sourceURL); name != "" {
		rec.Name = name
	}
	return rec
}

func nameFromSlug(sourceURL string) string {
	u, err := url.Parse(sourceURL)
	if err != nil || u.Path == "" {
		return ""
	}
	base := path.Base(strings.TrimSuffix(u.Path, "/"))
	base = strings.TrimSuffix(base, path.Ext(base))
	base = strings.NewReplacer("-", " ", "_", " ").Replace(base)

	var words []string
	for _, w := range strings.Fields(base) {
		if strings.IndexFunc(w, func(r rune) bool { return r < '0' || r > '9' }) == -1 {
			continue // bare post IDs carry no title information
		}
		words = append(words, w)
	}
	if len(words) == 0 {
		return ""
	}
	return cases.Title(language.English).String(strings.Join(words, " "))
}
