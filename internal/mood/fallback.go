package mood

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jmorganca/ollama/api"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

func buildPrompt(text string, moods []string) string {
	return fmt.Sprintf(`Pick at most %d moods from the list below and answer ONLY with the names separated by ';'. Answer with nothing if none fit.

Moods:
%s

Text:
%s
`, maxMoods, strings.Join(moods, ", "), text)
}

// OpenAIFallback classifies via the OpenAI chat API.
type OpenAIFallback struct {
	llm    *openai.LLM
	model  string
	debug  bool
	logger *slog.Logger
}

func NewOpenAIFallback(model, apiKey string, debug bool, logger *slog.Logger) (*OpenAIFallback, error) {
	llm, err := openai.New(
		openai.WithModel(model),
		openai.WithToken(apiKey),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
	}
	return &OpenAIFallback{
		llm:    llm,
		model:  model,
		debug:  debug,
		logger: logger,
	}, nil
}

func (f *OpenAIFallback) Name() string {
	return "openai"
}

func (f *OpenAIFallback) Choose(ctx context.Context, text string, moods []string) (string, error) {
	prompt := buildPrompt(text, moods)
	if f.debug {
		f.logger.Info("Mood fallback prompt", "provider", f.Name(), "model", f.model, "prompt", prompt)
	}

	out, err := llms.GenerateFromSinglePrompt(ctx, f.llm, prompt,
		llms.WithTemperature(0.2),
		llms.WithMaxTokens(60),
	)
	if err != nil {
		return "", fmt.Errorf("generation failed: %w", err)
	}

	out = strings.TrimSpace(out)
	if f.debug {
		f.logger.Info("Mood fallback response", "provider", f.Name(), "response", out)
	}
	return out, nil
}

// OllamaFallback classifies via a local ollama instance, for runs that
// should not leave the machine.
type OllamaFallback struct {
	client *api.Client
	model  string
	debug  bool
	logger *slog.Logger
}

func NewOllamaFallback(model string, debug bool, logger *slog.Logger) (*OllamaFallback, error) {
	client, err := api.ClientFromEnvironment()
	if err != nil {
		return nil, fmt.Errorf("failed to create ollama client: %w", err)
	}
	return &OllamaFallback{
		client: client,
		model:  model,
		debug:  debug,
		logger: logger,
	}, nil
}

func (f *OllamaFallback) Name() string {
	return "ollama"
}

func (f *OllamaFallback) Choose(ctx context.Context, text string, moods []string) (string, error) {
	prompt := buildPrompt(text, moods)
	if f.debug {
		f.logger.Info("Mood fallback prompt", "provider", f.Name(), "model", f.model, "prompt", prompt)
	}

	stream := false
	req := &api.GenerateRequest{
		Model:  f.model,
		Prompt: prompt,
		Stream: &stream,
		Options: map[string]any{
			"temperature": 0.2,
		},
	}

	var out strings.Builder
	err := f.client.Generate(ctx, req, func(resp api.GenerateResponse) error {
		out.WriteString(resp.Response)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("generation failed: %w", err)
	}

	response := strings.TrimSpace(out.String())
	if f.debug {
		f.logger.Info("Mood fallback response", "provider", f.Name(), "response", response)
	}
	return response, nil
}
