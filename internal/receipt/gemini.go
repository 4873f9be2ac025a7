package receipt

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/yudhistira-dev/orgintel/internal/domain"
)

// ProviderGemini tags results produced by the vision-model fallback.
const ProviderGemini = "gemini"

// DefaultGeminiModel is the model used for receipt extraction when the
// local heuristic path scores too low.
const DefaultGeminiModel = "gemini-2.5-flash"

// GeminiProvider extracts receipt fields with a Gemini vision model. It is
// the optional secondary provider in the chain: slower and metered, but far
// more tolerant of crumpled or badly lit photos.
type GeminiProvider struct {
	model string
}

// NewGeminiProvider creates the provider; an empty model selects
// DefaultGeminiModel.
func NewGeminiProvider(model string) *GeminiProvider {
	if model == "" {
		model = DefaultGeminiModel
	}
	return &GeminiProvider{model: model}
}

// Name implements Provider.
func (g *GeminiProvider) Name() string { return ProviderGemini }

const geminiPrompt = "You are a receipt parser for Indonesian shop and vendor receipts.\n\n" +
	"Task:\n" +
	"- Read the attached receipt photo.\n" +
	"- Output STRICT JSON only (no comments, no trailing commas, no extra text).\n" +
	"- Output a single JSON object.\n\n" +
	"The object must have these fields:\n" +
	"- \"amount\": integer, the grand total in rupiah (no decimals, no separators), 0 if unreadable\n" +
	"- \"merchant_name\": string, or \"Unknown Merchant\" if unreadable\n" +
	"- \"date\": string \"YYYY-MM-DD\" or null\n" +
	"- \"category\": one of \"Logistics\", \"Program\", \"Operations\", \"Consumables\", \"Transport\", \"Other\"\n" +
	"- \"confidence\": number between 0 and 1, how sure you are about the amount\n\n" +
	"Return ONLY valid raw JSON.\n" +
	"Do NOT wrap the response in code fences.\n" +
	"Do NOT use ```json or any Markdown.\n" +
	"Output must begin with \"{\" and end with \"}\".\n"

// Extract implements Provider.
func (g *GeminiProvider) Extract(ctx context.Context, image []byte) (domain.ReceiptData, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return domain.ReceiptData{}, fmt.Errorf("gemini: create client: %w", err)
	}

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: geminiPrompt},
				{
					InlineData: &genai.Blob{
						MIMEType: http.DetectContentType(image),
						Data:     image,
					},
				},
			},
		},
	}

	resp, err := client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return domain.ReceiptData{}, fmt.Errorf("gemini: generate content: %w", err)
	}

	rawText := resp.Text()
	if rawText == "" {
		return domain.ReceiptData{}, fmt.Errorf("gemini: empty response from model")
	}

	clean := cleanModelJSON(rawText)

	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(clean), &parsed); err != nil {
		return domain.ReceiptData{}, fmt.Errorf("gemini: unmarshal JSON: %w\nraw response: %s", err, rawText)
	}

	return receiptFromModelOutput(parsed)
}

// receiptFromModelOutput maps the model's JSON object into a ReceiptData,
// tolerating missing optional fields but rejecting wrong types.
func receiptFromModelOutput(obj map[string]interface{}) (domain.ReceiptData, error) {
	amount, err := getFloat64Field(obj, "amount")
	if err != nil {
		return domain.ReceiptData{}, err
	}
	merchant, err := getStringField(obj, "merchant_name")
	if err != nil {
		return domain.ReceiptData{}, err
	}
	if merchant == "" {
		merchant = domain.UnknownMerchant
	}
	date, err := getStringField(obj, "date")
	if err != nil {
		return domain.ReceiptData{}, err
	}
	category, err := getStringField(obj, "category")
	if err != nil {
		return domain.ReceiptData{}, err
	}
	if category == "" {
		category = domain.CategoryOther
	}
	score, err := getFloat64Field(obj, "confidence")
	if err != nil {
		return domain.ReceiptData{}, err
	}
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}

	data := domain.ReceiptData{
		Amount:          int64(amount),
		MerchantName:    merchant,
		Date:            date,
		Category:        category,
		ConfidenceScore: score,
		IsInvalid:       int64(amount) == 0,
		Provider:        ProviderGemini,
	}
	if score >= 0.7 && data.Amount > 0 {
		data.Confidence = domain.ConfidenceHigh
	} else {
		data.Confidence = domain.ConfidenceLow
	}
	return data, nil
}

func getStringField(m map[string]interface{}, key string) (string, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("gemini: field %q has type %T, want string", key, v)
	}
	return strings.TrimSpace(s), nil
}

func getFloat64Field(m map[string]interface{}, key string) (float64, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return 0, nil
	}
	f, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("gemini: field %q has type %T, want number", key, v)
	}
	return f, nil
}

// cleanModelJSON strips Markdown fences and surrounding junk when the model
// ignores the raw-JSON instruction.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		// Drop the first line (``` or ```json).
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

	s = strings.TrimSpace(s)

	// Extra safety: keep only from the first '{' to the last '}'.
	if start := strings.Index(s, "{"); start != -1 {
		if end := strings.LastIndex(s, "}"); end != -1 && end > start {
			s = strings.TrimSpace(s[start : end+1])
		}
	}

	return s
}
