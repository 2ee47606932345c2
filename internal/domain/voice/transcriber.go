package voice

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/Ayush-2302/deploy-gro/internal/platform/apperr"
	"github.com/Ayush-2302/deploy-gro/internal/platform/telemetry"
)

const (
	MinAudioBytes = 100
	MaxAudioBytes = 25 << 20
)

// ErrNotConfigured is the cause reported when no provider key is set.
var ErrNotConfigured = errors.New("voice provider is not configured")

var languages = map[string]bool{"auto": true, "en": true, "hi": true}

// normalizeLanguage defaults an empty language to auto and rejects anything
// but auto, en and hi.
func normalizeLanguage(lang string) (string, error) {
	if lang == "" {
		return "auto", nil
	}
	if !languages[lang] {
		return "", apperr.Validation("only English (en) and Hindi (hi) are supported, got %q", lang)
	}
	return lang, nil
}

// CheckAudioSize rejects uploads outside [MinAudioBytes, MaxAudioBytes].
func CheckAudioSize(n int) error {
	if n < MinAudioBytes {
		return apperr.TooSmall("audio file too small or corrupted (%d bytes)", n)
	}
	if n > MaxAudioBytes {
		return apperr.TooLarge("audio file too large; maximum size is 25MB")
	}
	return nil
}

type ProviderConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Transcriber turns audio into text through an OpenAI-compatible
// /audio/transcriptions endpoint.
type Transcriber struct {
	client  *resty.Client
	apiKey  string
	model   string
	metrics *telemetry.Metrics
	logger  zerolog.Logger
}

func NewTranscriber(cfg ProviderConfig, metrics *telemetry.Metrics, logger zerolog.Logger) *Transcriber {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")

	return &Transcriber{
		client:  client,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		metrics: metrics,
		logger:  logger.With().Str("component", "transcriber").Logger(),
	}
}

func (t *Transcriber) Enabled() bool {
	return t != nil && t.apiKey != ""
}

func (t *Transcriber) Model() string {
	return t.model
}

type transcription struct {
	Text     string    `json:"text"`
	Language string    `json:"language"`
	Segments []Segment `json:"segments"`
}

// Transcribe validates the upload and returns the cleaned transcript.
func (t *Transcriber) Transcribe(ctx context.Context, filename string, audio []byte, language string) (string, error) {
	lang, err := normalizeLanguage(language)
	if err != nil {
		return "", err
	}
	if err := CheckAudioSize(len(audio)); err != nil {
		return "", err
	}
	if !t.Enabled() {
		return "", apperr.Upstream(ErrNotConfigured, "transcription unavailable")
	}

	form := map[string]string{
		"model":           t.model,
		"response_format": "verbose_json",
	}
	if lang != "auto" {
		form["language"] = lang
	}

	var out transcription
	start := time.Now()
	resp, err := t.client.R().
		SetContext(ctx).
		SetAuthToken(t.apiKey).
		SetFileReader("file", filename, bytes.NewReader(audio)).
		SetFormData(form).
		SetResult(&out).
		Post("/audio/transcriptions")
	if err == nil && resp.IsError() {
		err = fmt.Errorf("provider returned %s", resp.Status())
	}
	t.metrics.ObserveUpstream("transcribe", time.Since(start), err)
	if err != nil {
		t.logger.Error().Err(err).Int("bytes", len(audio)).Str("language", lang).Msg("transcription failed")
		return "", apperr.Upstream(err, "transcription failed")
	}

	text := CleanSegments(out.Segments)
	if len(out.Segments) == 0 {
		text = collapseSpace(out.Text)
	}
	t.logger.Debug().
		Int("segments", len(out.Segments)).
		Int("chars", len(text)).
		Str("detected_language", out.Language).
		Msg("transcribed audio")
	return text, nil
}
