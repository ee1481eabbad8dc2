// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/shopspring/decimal"
	"google.golang.org/api/option"

	"github.com/invoice-tracker/invoicetrack/internal/application/adapter"
	"github.com/invoice-tracker/invoicetrack/internal/domain/entity"
)

// GeminiService implements adapter.ExtractionService using Google Gemini.
// The uploaded document is sent as an inline blob; the model answers with a
// single JSON object holding the recovered fields.
type GeminiService struct {
	apiKey    string
	modelName string
}

// NewGeminiService creates a new Gemini extraction service instance.
func NewGeminiService(apiKey, modelName string) *GeminiService {
	if modelName == "" {
		modelName = "gemini-2.0-flash"
	}
	return &GeminiService{
		apiKey:    apiKey,
		modelName: modelName,
	}
}

// IsAvailable checks if the Gemini service is properly configured.
func (s *GeminiService) IsAvailable() bool {
	return s.apiKey != ""
}

// ModelName returns the identifier of the underlying model.
func (s *GeminiService) ModelName() string {
	return s.modelName
}

// Extract recovers invoice fields from the uploaded document.
func (s *GeminiService) Extract(ctx context.Context, request *adapter.ExtractionRequest) (*entity.ExtractionResult, error) {
	if !s.IsAvailable() {
		return nil, fmt.Errorf("gemini service is not configured")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(s.modelName)

	// Configure model for JSON output
	model.SetTemperature(0.3)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx,
		genai.Blob{MIMEType: request.MIMEType, Data: request.Data},
		genai.Text(extractionPrompt),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	result, err := s.parseResponse(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return result, nil
}

const extractionPrompt = `You are an expert at reading expense invoices. Extract the following fields from the attached document:

- vendor: the business or person that issued the invoice
- amount: the total amount due, as a plain decimal number without currency symbols
- invoice_date: the invoice issue date in YYYY-MM-DD format
- category: a single expense category such as Travel, Office, Software, Utilities, Meals
- keywords: up to 10 short keywords found on the document that justify the extraction

RULES:
- If a field cannot be determined from the document, set it to null.
- Never guess. A null field is better than a wrong value.
- amount uses a dot as the decimal separator and no thousands separators.

RESPONSE FORMAT: Return only a JSON object:
{
  "vendor": "string or null",
  "amount": "string or null",
  "invoice_date": "YYYY-MM-DD or null",
  "category": "string or null",
  "keywords": ["string"]
}`

// extractionPayload is the JSON shape the model answers with. Amount comes
// back as a string per the prompt, but models occasionally send a bare
// number, so it is decoded leniently.
type extractionPayload struct {
	Vendor      *string          `json:"vendor"`
	Amount      *decimal.Decimal `json:"amount"`
	InvoiceDate *string          `json:"invoice_date"`
	Category    *string          `json:"category"`
	Keywords    []string         `json:"keywords"`
}

// parseResponse parses the Gemini response into an ExtractionResult.
func (s *GeminiService) parseResponse(resp *genai.GenerateContentResponse) (*entity.ExtractionResult, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("empty response from gemini")
	}

	// Get the text content from the response
	var textContent string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			textContent = string(text)
			break
		}
	}

	if textContent == "" {
		return nil, fmt.Errorf("no text content in response")
	}

	// Strip markdown fences some models wrap JSON in
	textContent = strings.TrimSpace(textContent)
	textContent = strings.TrimPrefix(textContent, "```json")
	textContent = strings.TrimPrefix(textContent, "```")
	textContent = strings.TrimSuffix(textContent, "```")
	textContent = strings.TrimSpace(textContent)

	var payload extractionPayload
	if err := json.Unmarshal([]byte(textContent), &payload); err != nil {
		return nil, fmt.Errorf("invalid JSON in response: %w", err)
	}

	result := &entity.ExtractionResult{
		Vendor:   normalizeField(payload.Vendor),
		Amount:   payload.Amount,
		Category: normalizeField(payload.Category),
		Keywords: payload.Keywords,
	}

	// A malformed date from the model is dropped rather than surfaced.
	if payload.InvoiceDate != nil {
		if t, err := time.Parse(entity.InvoiceDateLayout, *payload.InvoiceDate); err == nil {
			result.InvoiceDate = &t
		}
	}

	return result, nil
}

// normalizeField trims a nullable string and collapses blanks to nil.
func normalizeField(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
