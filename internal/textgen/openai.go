package textgen

import (
	"context"
	"fmt"
	"strings"

	oa "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// DefaultOpenAIModel is used when no model name is configured.
const DefaultOpenAIModel = "gpt-4o-mini"

// OpenAI generates text with the OpenAI chat completions API.
type OpenAI struct {
	cli   oa.Client
	model string
}

// NewOpenAI creates an OpenAI generator.
func NewOpenAI(apiKey, model string) *OpenAI {
	if model == "" {
		model = DefaultOpenAIModel
	}
	return &OpenAI{
		cli:   oa.NewClient(option.WithAPIKey(apiKey)),
		model: model,
	}
}

func (o *OpenAI) Name() string { return "openai:" + o.model }

func (o *OpenAI) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := o.cli.Chat.Completions.New(ctx, oa.ChatCompletionNewParams{
		Model: oa.ChatModel(o.model),
		Messages: []oa.ChatCompletionMessageParamUnion{
			oa.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai API call failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
