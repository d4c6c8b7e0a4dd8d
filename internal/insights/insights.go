package insights

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"google.golang.org/genai"

	"github.com/finexa/finexa-server/internal/domain"
)

const modelName = "gemini-2.5-flash"

// fallbackInsights is returned when the model is unavailable or replies
// with something we cannot parse. Reports still go out on time.
var fallbackInsights = []string{
	"Your highest expense category this month might need attention.",
	"Consider setting up a budget for better financial management.",
	"Track your recurring expenses to identify potential savings.",
}

// Client wraps the Gemini API for receipt scanning and report insights.
type Client struct {
	model  *genai.Client
	logger *logrus.Logger
}

func NewClient(ctx context.Context, apiKey string, logger *logrus.Logger) (*Client, error) {
	model, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Client{model: model, logger: logger}, nil
}

const receiptPrompt = `Analyze this receipt image and extract the following information in JSON format:
- Total amount (just the number)
- Date (in ISO format)
- Description or items purchased (brief summary)
- Merchant/store name
- Suggested category (one of: housing,transportation,groceries,utilities,entertainment,food,shopping,healthcare,education,personal,travel,insurance,gifts,bills,other-expense)

Only respond with valid JSON in this exact format:
{
  "amount": number,
  "date": "ISO date string",
  "description": "string",
  "merchantName": "string",
  "category": "string"
}

If it is not a receipt, return an empty object.`

// ScanReceipt extracts transaction fields from a receipt image.
// Returns ErrValidation when the image does not look like a receipt.
func (c *Client) ScanReceipt(ctx context.Context, imageData []byte, mimeType string) (domain.ReceiptScan, error) {
	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{
					InlineData: &genai.Blob{
						MIMEType: mimeType,
						Data:     imageData,
					},
				},
				{Text: receiptPrompt},
			},
		},
	}

	resp, err := c.model.Models.GenerateContent(ctx, modelName, contents, nil)
	if err != nil {
		return domain.ReceiptScan{}, fmt.Errorf("scan receipt: %w", err)
	}

	rawText := resp.Text()
	if rawText == "" {
		return domain.ReceiptScan{}, fmt.Errorf("scan receipt: empty response from model")
	}

	clean := cleanModelJSON(rawText)

	var scan domain.ReceiptScan
	if err := json.Unmarshal([]byte(clean), &scan); err != nil {
		return domain.ReceiptScan{}, fmt.Errorf("scan receipt: unmarshal response: %w", err)
	}
	if scan.Amount.IsZero() && scan.MerchantName == "" {
		return domain.ReceiptScan{}, fmt.Errorf("scan receipt: %w: image is not a receipt", domain.ErrValidation)
	}

	return scan, nil
}

// GenerateInsights asks the model for three short observations about a
// month of activity. Falls back to canned advice on any failure so the
// monthly report is never blocked on the model.
func (c *Client) GenerateInsights(ctx context.Context, stats domain.MonthlyStats, month string) []string {
	prompt := buildInsightsPrompt(stats, month)

	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		},
	}

	resp, err := c.model.Models.GenerateContent(ctx, modelName, contents, nil)
	if err != nil {
		c.logger.WithError(err).Warn("insights generation failed, using fallback")
		return fallbackInsights
	}

	clean := cleanModelJSON(resp.Text())

	var out []string
	if err := json.Unmarshal([]byte(clean), &out); err != nil || len(out) == 0 {
		c.logger.WithError(err).Warn("insights response unparseable, using fallback")
		return fallbackInsights
	}
	return out
}

func buildInsightsPrompt(stats domain.MonthlyStats, month string) string {
	categories := make([]string, 0, len(stats.ByCategory))
	for category := range stats.ByCategory {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	lines := make([]string, 0, len(categories))
	for _, category := range categories {
		lines = append(lines, fmt.Sprintf("%s: $%s", category, stats.ByCategory[category]))
	}

	return fmt.Sprintf(`Analyze this financial data and provide 3 concise, actionable insights.
Focus on spending patterns and practical advice.
Keep it friendly and conversational.

Financial Data for %s:
- Total Income: $%s
- Total Expenses: $%s
- Net Income: $%s
- Expense Categories: %s

Format the response as a JSON array of strings, like this:
["insight 1", "insight 2", "insight 3"]`,
		month,
		stats.TotalIncome,
		stats.TotalExpenses,
		stats.TotalIncome.Sub(stats.TotalExpenses),
		strings.Join(lines, ", "))
}

// cleanModelJSON strips Markdown code fences the model sometimes adds
// despite instructions, keeping only the JSON payload.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
		s = strings.TrimSpace(s)
	}

	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}

	return strings.TrimSpace(s)
}
