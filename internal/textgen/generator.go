package textgen

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Generator produces free-form text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Name() string
}

// ErrUnavailable is returned when no text model is configured.
var ErrUnavailable = errors.New("text model not configured")

// ErrEmptyResponse is returned when the model answers with no text.
var ErrEmptyResponse = errors.New("empty model response")

// Unavailable is the Generator used when no API key is set.
type Unavailable struct{}

func (Unavailable) Name() string { return "none" }

func (Unavailable) Generate(context.Context, string) (string, error) {
	return "", ErrUnavailable
}

// Provider names accepted by New.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// New builds the generator for provider. An empty apiKey yields Unavailable.
func New(ctx context.Context, provider, apiKey, model string) (Generator, error) {
	if apiKey == "" {
		return Unavailable{}, nil
	}
	switch strings.ToLower(provider) {
	case ProviderGemini, "":
		return NewGemini(ctx, apiKey, model)
	case ProviderOpenAI:
		return NewOpenAI(apiKey, model), nil
	default:
		return nil, fmt.Errorf("unknown text model provider %q", provider)
	}
}

var jsonBlock = regexp.MustCompile(`\{[\s\S]*\}`)

// ExtractJSON returns the outermost {...} block embedded in text.
func ExtractJSON(text string) (string, bool) {
	m := jsonBlock.FindString(text)
	return m, m != ""
}
