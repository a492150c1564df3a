package summarization

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"go-eduwatch/types"
)

const maxIncidentsForSummary = 50
const maxPromptLength = 15000 // Rough character limit for prompt

// GenerateIncidentSummary asks OpenAI for a short narrative over a filtered
// incident set, for the dashboard's summary panel.
func GenerateIncidentSummary(ctx context.Context, incidents []types.Incident, client *openai.Client) (string, error) {
	if len(incidents) == 0 {
		return "", fmt.Errorf("no incidents to summarize")
	}

	var lines []string
	for i := range incidents {
		if len(lines) >= maxIncidentsForSummary {
			break
		}
		inc := &incidents[i]
		lines = append(lines, fmt.Sprintf("%s | %s, %s | %s school | severity %s | %s",
			inc.Date, inc.City, inc.State, inc.InstitutionType, inc.Severity, inc.Description))
	}

	combined := strings.Join(lines, "\n")
	if len(combined) > maxPromptLength {
		combined = combined[:maxPromptLength]
	}

	prompt := fmt.Sprintf("Summarize the following school safety incident records. Focus on the overall pattern: where incidents concentrate, how severe they are, and any notable outliers. Provide a concise summary (2-3 sentences maximum):\n\n---\n%s\n---\n\nSummary:", combined)

	resp, err := client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4oMini,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: "You are an assistant that summarizes school safety incident data concisely and factually.",
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			MaxTokens:   150,
			N:           1,
			Temperature: 0.5, // Lower temperature for more focused summary
		},
	)
	if err != nil {
		return "", fmt.Errorf("openai chat completion error: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("openai returned empty response or choices")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
