package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/generative-ai-go/genai"
)

const (
	contextPromptTemplate = "Context:\n%s\n\nQuery:\n%s"

	degradedResponsePrefix = "Error: Unable to generate response - "

	defaultMaxOutputTokens = 1000
)

// Generator produces text completions for a prompt
type Generator interface {
	GenerateText(ctx context.Context, prompt string, temperature float32, maxTokens int32) (string, error)
}

// GeminiGenerator implements Generator against the Gemini API
type GeminiGenerator struct {
	client    *genai.Client
	modelName string
}

// NewGeminiGenerator creates a generator for the given Gemini model
func NewGeminiGenerator(client *genai.Client, modelName string) *GeminiGenerator {
	return &GeminiGenerator{client: client, modelName: modelName}
}

// GenerateText runs a single completion with the given sampling settings
func (g *GeminiGenerator) GenerateText(ctx context.Context, prompt string, temperature float32, maxTokens int32) (string, error) {
	model := g.client.GenerativeModel(g.modelName)
	model.SetTemperature(temperature)
	model.SetMaxOutputTokens(maxTokens)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("generate content failed: %w", err)
	}
	return extractText(resp)
}

func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("model returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("model returned no text parts")
	}
	return sb.String(), nil
}

// LLMService wraps a Generator with prompt assembly and degraded-response
// handling. Provider failures never surface as errors; they become an
// error string so workflow execution can continue and persist the turn.
type LLMService struct {
	gen             Generator
	maxOutputTokens int32
	logger          *log.Logger
}

// NewLLMService creates a new LLM service
func NewLLMService(gen Generator, logger *log.Logger) *LLMService {
	return &LLMService{
		gen:             gen,
		maxOutputTokens: defaultMaxOutputTokens,
		logger:          logger,
	}
}

// GenerateResponse assembles the prompt from the optional context block
// and the query, then generates a completion. On provider failure it
// returns a degraded error string instead of an error.
func (s *LLMService) GenerateResponse(ctx context.Context, query string, contextText string, temperature float32) string {
	prompt := query
	if contextText != "" {
		prompt = fmt.Sprintf(contextPromptTemplate, contextText, query)
	}

	text, err := s.gen.GenerateText(ctx, prompt, temperature, s.maxOutputTokens)
	if err != nil {
		s.logger.Printf("WARNING: LLM generation failed: %v", err)
		return degradedResponsePrefix + err.Error()
	}
	return text
}

// IsDegradedResponse reports whether a response string is a degraded
// error placeholder rather than model output
func IsDegradedResponse(response string) bool {
	return strings.HasPrefix(response, "Error:")
}
