package extract

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"google.golang.org/genai"

	"github.com/procurelab/matchbook/pkg/documents"
	"github.com/procurelab/matchbook/pkg/errors"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// APIKeyEnvVar is the environment variable consulted when no API key is
// passed explicitly.
const APIKeyEnvVar = "GEMINI_API_KEY"

// GeminiExtractor implements Extractor against the Gemini API. Responses are
// constrained by a JSON response schema, so the model always returns a single
// object with the document fields.
type GeminiExtractor struct {
	apiKey string
	model  string

	// GenAI client - created lazily and reused across calls
	client *genai.Client
	mu     sync.Mutex
}

// GeminiOption configures a GeminiExtractor.
type GeminiOption func(*GeminiExtractor)

// WithModel overrides the default Gemini model.
func WithModel(model string) GeminiOption {
	return func(g *GeminiExtractor) {
		if model != "" {
			g.model = model
		}
	}
}

// NewGeminiExtractor creates an extractor backed by the Gemini API. An empty
// apiKey falls back to the GEMINI_API_KEY environment variable; without a key
// from either source the constructor fails.
func NewGeminiExtractor(apiKey string, opts ...GeminiOption) (*GeminiExtractor, error) {
	if apiKey == "" {
		apiKey = os.Getenv(APIKeyEnvVar)
	}
	if apiKey == "" {
		return nil, &errors.ConfigError{
			Component: "gemini",
			Message:   "no API key configured - set " + APIKeyEnvVar,
			Err:       errors.ErrAPIKeyRequired,
		}
	}

	g := &GeminiExtractor{
		apiKey: apiKey,
		model:  DefaultModel,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Model returns the Gemini model this extractor calls.
func (g *GeminiExtractor) Model() string {
	return g.model
}

// Close releases the cached client reference.
func (g *GeminiExtractor) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	// GenAI client doesn't have a Close method, but we clear the reference
	g.client = nil
	return nil
}

// Extract sends the document text to Gemini and decodes the structured
// response into a raw field mapping.
func (g *GeminiExtractor) Extract(ctx context.Context, text string, kind Kind) (documents.Raw, error) {
	if err := kind.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, errors.NewExtractionError(string(kind), "document text is empty", nil)
	}

	client, err := g.getOrCreateClient(ctx)
	if err != nil {
		return nil, err
	}

	response, err := client.Models.GenerateContent(ctx, g.model, genai.Text(userPrompt(text)), generateConfig(kind))
	if err != nil {
		return nil, errors.NewExtractionError(string(kind), "Gemini API call failed", err)
	}

	payload := response.Text()
	if payload == "" {
		return nil, errors.NewExtractionError(string(kind), "model returned an empty response", nil)
	}

	raw, err := documents.ParseJSON([]byte(payload))
	if err != nil {
		return nil, errors.NewExtractionError(string(kind), "model returned malformed JSON", err)
	}
	return raw, nil
}

// getOrCreateClient gets or creates the GenAI client.
func (g *GeminiExtractor) getOrCreateClient(ctx context.Context) (*genai.Client, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.client != nil {
		return g.client, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
		APIKey:  g.apiKey,
	})
	if err != nil {
		return nil, &errors.ConfigError{
			Component: "gemini",
			Message:   "client initialization failed",
			Err:       err,
		}
	}

	g.client = client
	return client, nil
}

// generateConfig builds the generation config for one extraction call. The
// response schema pins the output to the document shape, so the reply parses
// as a single JSON object.
func generateConfig(kind Kind) *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemPrompt(kind)}},
		},
		ResponseMIMEType: "application/json",
		ResponseSchema:   responseSchema(kind),
	}
}

// systemPrompt builds the extraction instruction for a document kind.
func systemPrompt(kind Kind) string {
	return fmt.Sprintf("You are an expert Finance Document Processor. "+
		"Your task is to analyze the provided text from a financial document "+
		"which is a '%s', and extract the required fields. "+
		"Strictly adhere to the provided JSON schema. "+
		"Ensure the 'total' is the final amount (including tax/VAT).", kind.Label())
}

// userPrompt wraps the document text for the model.
func userPrompt(text string) string {
	return fmt.Sprintf("Extract all data from the following document text:\n\n---\n%s\n---", text)
}

// responseSchema declares the document shape the model must return. Field
// names match the record schema consumed by documents.Normalize.
func responseSchema(kind Kind) *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"id": {
				Type:        genai.TypeString,
				Description: fmt.Sprintf("%s Number (e.g., INV-2025-001 or PO-2025-001)", kind.Label()),
			},
			"vendor": {
				Type:        genai.TypeString,
				Description: "The name of the vendor/supplier.",
			},
			"total": {
				Type:        genai.TypeNumber,
				Format:      "float",
				Description: "The final total amount including VAT/Tax.",
			},
			"items": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"description": {Type: genai.TypeString},
						"quantity":    {Type: genai.TypeInteger},
						"unit_price":  {Type: genai.TypeNumber, Format: "float"},
						"line_total":  {Type: genai.TypeNumber, Format: "float"},
					},
					Required: []string{"description", "quantity", "line_total"},
				},
			},
		},
		Required: []string{"id", "vendor", "total", "items"},
	}
}
