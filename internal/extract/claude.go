package extract

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/niems-digital/emslog/internal/models"
)

// ClaudeEngine extracts activity records using the Anthropic Messages API.
type ClaudeEngine struct {
	client *anthropic.Client
	model  string
	logger *slog.Logger
}

// NewClaudeEngine creates a Claude-backed extraction engine.
func NewClaudeEngine(apiKey, model string, logger *slog.Logger) *ClaudeEngine {
	if logger == nil {
		logger = slog.Default()
	}
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &ClaudeEngine{
		client: &client,
		model:  model,
		logger: logger,
	}
}

// Extract sends the log text to Claude and decodes the draft array.
func (e *ClaudeEngine) Extract(ctx context.Context, logText string) ([]models.ActivityDraft, error) {
	prompt := BuildPrompt(logText)

	resp, err := e.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(e.model),
		MaxTokens: 4096,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewTextBlock(prompt),
			),
		},
		System: []anthropic.TextBlockParam{
			{Text: "You are a precise log parsing system. Output only valid JSON."},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("extract: calling Claude API: %w", err)
	}

	var responseText string
	for i := range resp.Content {
		if resp.Content[i].Type == "text" {
			responseText = resp.Content[i].Text
			break
		}
	}
	if responseText == "" {
		return nil, fmt.Errorf("extract: empty response from Claude")
	}

	e.logger.Debug("claude extraction response", "response", responseText)

	drafts, err := DecodeDrafts(responseText)
	if err != nil {
		return nil, err
	}

	e.logger.Info("extracted draft records", "engine", "claude", "count", len(drafts))
	return drafts, nil
}
