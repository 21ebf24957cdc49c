package extract

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// generator is the thin seam over the extraction service so the retry and
// parsing logic can be tested against a mock.
type generator interface {
	generate(ctx context.Context, parts []*genai.Part) (string, error)
}

// entryListSchema constrains the typed response to the canonical entry list.
// Department and series are deliberately absent: the pipeline already knows
// them from configuration and never trusts the service for them.
var entryListSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"seminar_title": {Type: genai.TypeString},
			"date":          {Type: genai.TypeString},
			"location":      {Type: genai.TypeString},
			"time":          {Type: genai.TypeString},
			"speaker":       {Type: genai.TypeString},
			"affiliation":   {Type: genai.TypeString},
			"abstract":      {Type: genai.TypeString},
			"bio":           {Type: genai.TypeString},
		},
		Required: []string{
			"seminar_title", "date", "location", "time",
			"speaker", "affiliation", "abstract", "bio",
		},
	},
}

// geminiGenerator implements generator against the Gemini API.
type geminiGenerator struct {
	client *genai.Client
	model  string
}

func newGeminiGenerator(ctx context.Context, apiKey, model string) (*geminiGenerator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &geminiGenerator{client: client, model: model}, nil
}

func (g *geminiGenerator) generate(ctx context.Context, parts []*genai.Part) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   entryListSchema,
	})
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}
