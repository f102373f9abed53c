package categorizer

import (
	"context"
	"fmt"
	"strings"

	"finize/txextract/internal/logging"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DefaultGeminiModel is used when no model name is configured.
const DefaultGeminiModel = "gemini-1.5-flash"

// GeminiClient implements the AIClient interface for the Google Gemini API.
type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
	logger logging.Logger
}

// NewGeminiClient creates a client for modelName authenticated with apiKey.
func NewGeminiClient(ctx context.Context, apiKey, modelName string, logger logging.Logger) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not set")
	}
	if modelName == "" {
		modelName = DefaultGeminiModel
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		model:  client.GenerativeModel(modelName),
		logger: logger,
	}, nil
}

// Categorize sends one prompt per transaction and returns the category name
// found in the "Category:" line of the answer.
func (c *GeminiClient) Categorize(ctx context.Context, tx Transaction, categories []string) (string, error) {
	c.logger.Debug("Requesting Gemini categorization",
		logging.Field{Key: logging.FieldOperation, Value: "gemini_categorization"},
		logging.Field{Key: logging.FieldMerchant, Value: tx.Merchant})

	resp, err := c.model.GenerateContent(ctx, genai.Text(buildPrompt(tx, categories)))
	if err != nil {
		return "", fmt.Errorf("gemini API error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from Gemini API")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return parseCategoryResponse(b.String(), categories), nil
}

// Close releases the underlying connection.
func (c *GeminiClient) Close() error {
	return c.client.Close()
}

func buildPrompt(tx Transaction, categories []string) string {
	return fmt.Sprintf(`Categorize the following personal finance transaction message:
Message: %s
Merchant: %s
Amount: %s

Assign it to exactly one of the following categories:
%s

Respond in this format:
Category: [Selected Category Name]`,
		tx.Text, tx.Merchant, tx.Amount, strings.Join(categories, ", "))
}

// parseCategoryResponse reads the "Category:" line of a model answer. When
// the answer is unstructured, the first listed category it mentions is used.
func parseCategoryResponse(response string, categories []string) string {
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if rest, ok := strings.CutPrefix(line, "Category:"); ok {
			return strings.Trim(strings.TrimSpace(rest), "[]*\"'.")
		}
	}
	for _, name := range categories {
		if strings.Contains(response, name) {
			return name
		}
	}
	return ""
}
