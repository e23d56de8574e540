package transcribe

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

// Gemini transcribes documents with the Gemini API. It tries the primary
// model first and, on a recognized transient failure, makes exactly one
// more attempt with the fallback model. Non-transient failures are
// returned immediately.
type Gemini struct {
	model         string
	fallbackModel string
	log           zerolog.Logger
}

// NewGemini creates a provider using the given primary and fallback
// models. Credentials come from the environment, same as the rest of the
// Google clients (Application Default Credentials or GEMINI_API_KEY).
func NewGemini(model, fallbackModel string, log zerolog.Logger) *Gemini {
	return &Gemini{
		model:         model,
		fallbackModel: fallbackModel,
		log:           log,
	}
}

// Transcribe implements Provider.
func (g *Gemini) Transcribe(ctx context.Context, doc Document) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return "", fmt.Errorf("transcribe: create genai client: %w", err)
	}

	prompt := promptFor(doc)

	text, err := g.generate(ctx, client, g.model, prompt, doc.Data)
	if err != nil {
		if !isTransient(err) {
			return "", err
		}
		g.log.Warn().
			Err(err).
			Str("model", g.model).
			Str("fallback_model", g.fallbackModel).
			Str("filename", doc.Filename).
			Msg("Primary model failed with transient error, trying fallback")
		text, err = g.generate(ctx, client, g.fallbackModel, prompt, doc.Data)
		if err != nil {
			return "", err
		}
	}

	clean := cleanModelCSV(text)
	if clean == "" {
		return "", ErrEmptyTranscription
	}
	return clean, nil
}

// generate runs one model call with a short exponential backoff around
// transient failures, then gives up so the caller can switch models.
func (g *Gemini) generate(ctx context.Context, client *genai.Client, model, prompt string, pdfBytes []byte) (string, error) {
	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: prompt},
				{
					InlineData: &genai.Blob{
						MIMEType: "application/pdf",
						Data:     pdfBytes,
					},
				},
			},
		},
	}

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0.8),
		ThinkingConfig: &genai.ThinkingConfig{
			ThinkingBudget: genai.Ptr[int32](512),
		},
	}

	var text string
	operation := func() error {
		resp, err := client.Models.GenerateContent(ctx, model, contents, config)
		if err != nil {
			if isTransient(err) {
				return err
			}
			return backoff.Permanent(err)
		}
		text = resp.Text()
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 2 * time.Second
	b.MaxInterval = 30 * time.Second

	if err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(b, 2), ctx)); err != nil {
		return "", fmt.Errorf("transcribe: generate content with %s: %w", model, err)
	}
	return text, nil
}

// isTransient reports whether the model call failed in a way worth
// retrying or falling back on: rate limiting, a model variant that is
// not available, or a temporarily overloaded backend.
func isTransient(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, code := range []string{"429", "404", "503"} {
		if strings.Contains(msg, code) {
			return true
		}
	}
	return false
}

// cleanModelCSV strips Markdown fences and surrounding junk when the
// model ignores the raw-CSV instruction.
func cleanModelCSV(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		// Drop the first line (``` or ```csv).
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return ""
		}
		s = strings.TrimSpace(s)
	}

	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}

	return strings.TrimSpace(s)
}
