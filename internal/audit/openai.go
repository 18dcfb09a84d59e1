package audit

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"crypto-journal/internal/errors"
	"crypto-journal/internal/models"
)

// OpenAIProvider implements Provider using the OpenAI chat API.
type OpenAIProvider struct {
	client    *openai.Client
	model     string
	maxTokens int
}

// NewOpenAIProvider creates a new OpenAI-backed audit provider. A maxTokens
// of zero leaves the completion length up to the API.
func NewOpenAIProvider(apiKey, model string, maxTokens int) *OpenAIProvider {
	return &OpenAIProvider{
		client:    openai.NewClient(apiKey),
		model:     model,
		maxTokens: maxTokens,
	}
}

const systemPrompt = `You are an experienced trading coach reviewing a discretionary trader's journal.
Analyze the trade history for recurring mistakes, risk management issues, overtrading,
and deviations from the stated strategy. Be specific, reference trades by id and date,
and end with three concrete recommendations.`

// RunAudit sends the trade history to the model and returns its assessment.
func (p *OpenAIProvider) RunAudit(ctx context.Context, trades []models.Trade, strategy *models.Strategy) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     p.model,
		MaxTokens: p.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: BuildPrompt(trades, strategy)},
		},
	})
	if err != nil {
		return "", errors.NewAuditError("openai", "completion", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.NewAuditError("openai", "completion", fmt.Errorf("no response from openai"))
	}
	return resp.Choices[0].Message.Content, nil
}
