package extract

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/genai"

	"github.com/niems-digital/emslog/internal/models"
	"github.com/niems-digital/emslog/internal/taxonomy"
)

// GeminiEngine extracts activity records using the Google Gemini API with
// a declared response schema, so the model output is constrained to the
// draft record shape before decoding.
type GeminiEngine struct {
	client *genai.Client
	model  string
	logger *slog.Logger
}

// NewGeminiEngine creates a Gemini-backed extraction engine.
func NewGeminiEngine(ctx context.Context, apiKey, model string, logger *slog.Logger) (*GeminiEngine, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("extract: Gemini API key is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("extract: creating Gemini client: %w", err)
	}
	return &GeminiEngine{client: client, model: model, logger: logger}, nil
}

// responseSchema constrains Gemini output to an array of draft records,
// with enum fields limited to the taxonomy vocabularies.
func responseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"date": {
					Type:        genai.TypeString,
					Description: "The date in YYYY-MM-DD format (convert Thai BE to AD).",
				},
				"time_range":  {Type: genai.TypeString},
				"summary":     {Type: genai.TypeString},
				"description": {Type: genai.TypeString},
				"location":    {Type: genai.TypeString},
				"participants": {
					Type:  genai.TypeArray,
					Items: &genai.Schema{Type: genai.TypeString},
				},
				"activity_type": {
					Type: genai.TypeString,
					Enum: taxonomy.ActivityTypes,
				},
				"project_code": {
					Type:        genai.TypeString,
					Description: "Exact project code (e.g. F-69-..., I-69-..., EC-69-..., R-69-...).",
				},
				"kpi_code": {
					Type:        genai.TypeString,
					Description: "KPI code (e.g. KPI-18).",
				},
				"section15": {
					Type:        genai.TypeString,
					Enum:        taxonomy.Section15,
					Description: "One of the nine mandates. Infer from content if not explicit.",
				},
				"region": {
					Type: genai.TypeString,
					Enum: taxonomy.Regions,
				},
				"org_unit": {
					Type:        genai.TypeString,
					Description: "The bureau/unit owner (e.g. 'Strategy Bureau').",
				},
			},
			Required: []string{"date", "summary", "description", "activity_type", "section15"},
		},
	}
}

// Extract sends the log text to Gemini and decodes the draft array.
func (e *GeminiEngine) Extract(ctx context.Context, logText string) ([]models.ActivityDraft, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(BuildPrompt(logText), genai.RoleUser),
	}

	result, err := e.client.Models.GenerateContent(ctx, e.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   responseSchema(),
	})
	if err != nil {
		return nil, fmt.Errorf("extract: calling Gemini API: %w", err)
	}

	responseText := result.Text()
	if responseText == "" {
		return nil, fmt.Errorf("extract: empty response from Gemini")
	}

	e.logger.Debug("gemini extraction response", "response", responseText)

	drafts, err := DecodeDrafts(responseText)
	if err != nil {
		return nil, err
	}

	e.logger.Info("extracted draft records", "engine", "gemini", "count", len(drafts))
	return drafts, nil
}
