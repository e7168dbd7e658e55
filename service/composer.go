package service

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"github.com/harborview/claimchat/backend/config"
	"github.com/harborview/claimchat/backend/model"
)

const (
	composerMaxTokens   = 500
	composerTemperature = 0.7
)

const baseSystemPrompt = "You are a professional, empathetic insurance claims assistant. " +
	"Your role is to help customers understand their claim status in a clear, friendly, " +
	"and reassuring manner. Always be professional but warm in your communication."

// chatCompleter is the slice of the OpenAI client the composer needs; tests
// substitute a stub so no network access is required.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// ResponseComposer phrases user-facing replies by delegating to a chat
// completion model with the claim context folded into the system instruction.
type ResponseComposer struct {
	client     chatCompleter
	model      string
	configured bool
}

// NewResponseComposer builds a composer from the OpenAI configuration
func NewResponseComposer(cfg *config.OpenAIConfig) *ResponseComposer {
	return &ResponseComposer{
		client:     openai.NewClient(cfg.APIKey),
		model:      cfg.Model,
		configured: cfg.APIKey != "",
	}
}

// Configured reports whether a generation credential was supplied
func (rc *ResponseComposer) Configured() bool {
	return rc.configured
}

// Compose generates a reply to userMessage. Exactly one framing applies, in
// precedence order: upstream error, resolved claim, no claim. Prior history
// is passed ahead of the instruction so the model keeps conversational
// context. Generation failures are returned to the caller, never swallowed.
func (rc *ResponseComposer) Compose(ctx context.Context, userMessage string, claim *model.ClaimRecord, upstreamErr string, history []model.ConversationEntry) (string, error) {
	systemPrompt := buildSystemPrompt(claim, upstreamErr)

	messages := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	for _, entry := range history {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    entry.Role,
			Content: entry.Content,
		})
	}
	messages = append(messages,
		openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
		openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: userMessage},
	)

	resp, err := rc.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       rc.model,
		Messages:    messages,
		MaxTokens:   composerMaxTokens,
		Temperature: composerTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate AI response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("failed to generate AI response: no choices returned")
	}

	return resp.Choices[0].Message.Content, nil
}

func buildSystemPrompt(claim *model.ClaimRecord, upstreamErr string) string {
	prompt := baseSystemPrompt

	switch {
	case upstreamErr != "":
		prompt += fmt.Sprintf(" There was an issue retrieving the claim information: %s."+
			" Please provide a helpful response explaining that there might be a temporary"+
			" issue with the system and suggest they try again or contact support.", upstreamErr)

	case claim != nil:
		prompt += fmt.Sprintf(" The customer has asked about claim %s. Here is the claim information:"+
			" Status: %s, Details: %s", claim.ClaimID, claim.Status, claim.Details)
		if claim.Amount > 0 {
			prompt += fmt.Sprintf(", Amount: $%g", claim.Amount)
		}
		if claim.SubmissionDate != "" {
			prompt += fmt.Sprintf(", Submitted: %s", claim.SubmissionDate)
		}
		if claim.ExpectedResolution != "" &&
			claim.ExpectedResolution != model.ResolutionCompleted &&
			claim.ExpectedResolution != model.ResolutionFinal {
			prompt += fmt.Sprintf(", Expected resolution: %s", claim.ExpectedResolution)
		}
		prompt += ". Please provide a helpful, human-like explanation of their claim status. Keep it concise but informative."

	default:
		prompt += " The customer's message doesn't contain a valid claim ID or the claim was not found." +
			" Please ask them to provide their claim ID in a helpful and professional manner," +
			" or suggest they verify the claim ID if they provided one."
	}

	return prompt
}
