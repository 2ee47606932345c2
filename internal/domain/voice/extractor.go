package voice

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/Ayush-2302/deploy-gro/internal/platform/apperr"
	"github.com/Ayush-2302/deploy-gro/internal/platform/cache"
	"github.com/Ayush-2302/deploy-gro/internal/platform/telemetry"
)

// Fallback reasons, used as the metric label.
const (
	ReasonNoKey       = "no_api_key"
	ReasonUpstream    = "upstream_error"
	ReasonInvalidJSON = "invalid_json"
)

const admissionSection = "admission"

// Extractor maps free text onto a section's fields with a chat model and
// falls back to the section's canned payload whenever the model cannot
// answer.
type Extractor struct {
	client   *resty.Client
	apiKey   string
	model    string
	catalog  *Catalog
	cache    cache.Cache
	cacheTTL time.Duration
	metrics  *telemetry.Metrics
	logger   zerolog.Logger
	now      func() time.Time
}

func NewExtractor(cfg ProviderConfig, catalog *Catalog, c cache.Cache, ttl time.Duration, metrics *telemetry.Metrics, logger zerolog.Logger) *Extractor {
	if c == nil {
		c = cache.Nop{}
	}
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Extractor{
		client:   client,
		apiKey:   cfg.APIKey,
		model:    cfg.Model,
		catalog:  catalog,
		cache:    c,
		cacheTTL: ttl,
		metrics:  metrics,
		logger:   logger.With().Str("component", "extractor").Logger(),
		now:      time.Now,
	}
}

func (e *Extractor) Enabled() bool {
	return e != nil && e.apiKey != ""
}

func (e *Extractor) Model() string {
	return e.model
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	ResponseFormat responseFormat `json:"response_format"`
	Messages       []chatMessage  `json:"messages"`
	Temperature    float64        `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Extract returns the structured fields for section. Only an unknown
// section or language is an error; every provider failure degrades to the
// fallback payload.
func (e *Extractor) Extract(ctx context.Context, section, text, language string) (map[string]interface{}, error) {
	sec, err := e.catalog.Lookup(section)
	if err != nil {
		return nil, err
	}
	lang, err := normalizeLanguage(language)
	if err != nil {
		return nil, err
	}

	if !e.Enabled() {
		return e.fallback(sec, text, ReasonNoKey, nil)
	}

	key := cacheKey(section, lang, text)
	if cached, ok, err := e.cache.Get(ctx, key); err != nil {
		e.logger.Warn().Err(err).Str("section", section).Msg("extraction cache read failed")
	} else if ok {
		out := make(map[string]interface{})
		if err := json.Unmarshal(cached, &out); err == nil {
			return out, nil
		}
	}

	content, err := e.complete(ctx, sec.Prompt, text)
	if err != nil {
		return e.fallback(sec, text, ReasonUpstream, err)
	}
	out := make(map[string]interface{})
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		return e.fallback(sec, text, ReasonInvalidJSON, err)
	}

	if err := e.cache.Set(ctx, key, []byte(content), e.cacheTTL); err != nil {
		e.logger.Warn().Err(err).Str("section", section).Msg("extraction cache write failed")
	}
	return out, nil
}

// Reference returns the example payload for section, the same one the
// fallback would produce for empty text.
func (e *Extractor) Reference(section string) (map[string]interface{}, error) {
	sec, err := e.catalog.Lookup(section)
	if err != nil {
		return nil, apperr.NotFound("no reference example for section %q", section)
	}
	return e.canned(sec, "")
}

func (e *Extractor) complete(ctx context.Context, prompt, text string) (string, error) {
	req := chatRequest{
		Model:          e.model,
		ResponseFormat: responseFormat{Type: "json_object"},
		Messages: []chatMessage{
			{Role: "system", Content: prompt},
			{Role: "user", Content: text},
		},
		Temperature: 0.1,
	}

	var out chatResponse
	start := time.Now()
	resp, err := e.client.R().
		SetContext(ctx).
		SetAuthToken(e.apiKey).
		SetBody(req).
		SetResult(&out).
		Post("/chat/completions")
	if err == nil && resp.IsError() {
		err = fmt.Errorf("provider returned %s", resp.Status())
	}
	if err == nil && len(out.Choices) == 0 {
		err = fmt.Errorf("provider returned no choices")
	}
	e.metrics.ObserveUpstream("extract", time.Since(start), err)
	if err != nil {
		return "", err
	}

	content := strings.TrimSpace(out.Choices[0].Message.Content)
	if content == "" {
		content = "{}"
	}
	return content, nil
}

func (e *Extractor) fallback(sec Section, text, reason string, cause error) (map[string]interface{}, error) {
	ev := e.logger.Warn().Str("section", sec.Name).Str("reason", reason)
	if cause != nil {
		ev = ev.Err(cause)
	}
	ev.Msg("extraction fell back to canned payload")
	e.metrics.ExtractionFallback(sec.Name, reason)
	return e.canned(sec, text)
}

func (e *Extractor) canned(sec Section, text string) (map[string]interface{}, error) {
	out, err := sec.FallbackMap()
	if err != nil {
		return nil, err
	}
	if sec.Name == admissionSection {
		out["admission_date"], out["admission_time"] = admissionWhen(text, e.now())
	}
	return out, nil
}

func cacheKey(section, language, text string) string {
	sum := sha256.Sum256([]byte(section + "|" + language + "|" + text))
	return "extract:" + hex.EncodeToString(sum[:])
}
