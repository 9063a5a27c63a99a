package adapters

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/vibe-budget/backend/internal/application/adapter"
	"github.com/vibe-budget/backend/internal/domain/valueobject"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-2.5-flash-lite"

// maxTipLength caps the returned tip, in runes.
const maxTipLength = 400

// GeminiCoach implements adapter.BudgetCoach using Google Gemini.
type GeminiCoach struct {
	apiKey    string
	modelName string
}

// NewGeminiCoach creates a new Gemini-backed coach. An empty key leaves it unavailable.
func NewGeminiCoach(apiKey, modelName string) *GeminiCoach {
	if modelName == "" {
		modelName = DefaultGeminiModel
	}
	return &GeminiCoach{
		apiKey:    apiKey,
		modelName: modelName,
	}
}

// IsAvailable checks if the Gemini coach is properly configured.
func (c *GeminiCoach) IsAvailable() bool {
	return c.apiKey != ""
}

// Tip asks Gemini for a short spending tip for this week.
func (c *GeminiCoach) Tip(ctx context.Context, request adapter.CoachRequest) (string, error) {
	if !c.IsAvailable() {
		return "", fmt.Errorf("gemini coach is not configured")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(c.apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(c.modelName)
	model.SetTemperature(0.7)
	model.SetMaxOutputTokens(160)

	resp, err := model.GenerateContent(ctx, genai.Text(buildCoachPrompt(request)))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	return parseCoachResponse(resp)
}

func buildCoachPrompt(request adapter.CoachRequest) string {
	snap := request.Snapshot
	var sb strings.Builder

	sb.WriteString(`You are a friendly, slightly sassy budgeting coach for young adults.
Write ONE or TWO short sentences of practical advice for this week's spending.
Plain text only, no lists, no markdown, no emojis. Do not restate every number.

THIS MONTH:
`)
	fmt.Fprintf(&sb, "- Monthly income: $%s\n", valueobject.FormatMoney(snap.MonthlyIncome))
	fmt.Fprintf(&sb, "- Savings goal: $%s\n", valueobject.FormatMoney(snap.SavingsGoal))
	fmt.Fprintf(&sb, "- Bills total: $%s\n", valueobject.FormatMoney(snap.TotalBills))
	fmt.Fprintf(&sb, "- Fun money for the month: $%s\n", valueobject.FormatMoney(snap.DiscretionLimit))
	fmt.Fprintf(&sb, "- Spent on cards so far: $%s\n", valueobject.FormatMoney(snap.DiscretionarySpent))
	fmt.Fprintf(&sb, "- Fun money left: $%s (%s%%)\n", valueobject.FormatMoney(snap.DiscretionaryLeft), snap.DiscretionaryLeftPercentage.StringFixed(0))
	if snap.IsOverBudget() {
		sb.WriteString("- The user is OVER their fun money for the month.\n")
	}

	sb.WriteString("\nWEEKLY OPTIONS:\n")
	for _, tier := range request.Tiers {
		status := "fits"
		if tier.OverBudget {
			status = "does not fit"
		}
		fmt.Fprintf(&sb, "- %s: $%s per week (%s)\n", tier.Label, valueobject.FormatMoney(tier.Value), status)
	}

	fmt.Fprintf(&sb, "\nRECOMMENDED: %s at $%s per week, about $%s per day after that.\n",
		request.BestTier.Label,
		valueobject.FormatMoney(request.BestTier.Value),
		valueobject.FormatMoney(request.BestTier.DailyRemaining),
	)

	return sb.String()
}

func parseCoachResponse(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty response from gemini")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	tip := strings.Join(strings.Fields(sb.String()), " ")
	if tip == "" {
		return "", fmt.Errorf("no text content in response")
	}
	if runes := []rune(tip); len(runes) > maxTipLength {
		tip = strings.TrimSpace(string(runes[:maxTipLength])) + "…"
	}
	return tip, nil
}

var _ adapter.BudgetCoach = (*GeminiCoach)(nil)
