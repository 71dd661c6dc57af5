package services

import (
	"context"
	"fmt"
	"log"

	"github.com/google/generative-ai-go/genai"

	"genai-stack/internal/models"
)

const assistantSystemPrompt = "You are a helpful assistant for a workflow builder application. " +
	"Help users design workflows that connect documents, knowledge bases and language models. " +
	"Keep answers short and practical."

// Assistant answers free-form chat messages outside workflow execution
type Assistant interface {
	Chat(ctx context.Context, message string, history []models.ChatMessage) (string, error)
}

// GeminiAssistant implements Assistant with a Gemini chat session
type GeminiAssistant struct {
	client    *genai.Client
	modelName string
	logger    *log.Logger
}

// NewGeminiAssistant creates a new assistant backed by the given model
func NewGeminiAssistant(client *genai.Client, modelName string, logger *log.Logger) *GeminiAssistant {
	return &GeminiAssistant{
		client:    client,
		modelName: modelName,
		logger:    logger,
	}
}

// Chat sends the message with prior history as a chat session turn
func (a *GeminiAssistant) Chat(ctx context.Context, message string, history []models.ChatMessage) (string, error) {
	model := a.client.GenerativeModel(a.modelName)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(assistantSystemPrompt)},
	}

	session := model.StartChat()
	session.History = make([]*genai.Content, 0, len(history))
	for _, msg := range history {
		role := "user"
		if msg.Role == "assistant" {
			role = "model"
		}
		session.History = append(session.History, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(msg.Content)},
		})
	}

	resp, err := session.SendMessage(ctx, genai.Text(message))
	if err != nil {
		return "", fmt.Errorf("assistant chat failed: %w", err)
	}
	return extractText(resp)
}
