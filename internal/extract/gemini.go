package extract

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/shanehull/lmsentiment/internal/types"
)

const DefaultGeminiModel = "gemini-2.5-flash"

const transcribeInstruction = `
You transcribe financial filings. Return the full plain text of the attached PDF,
page by page, in reading order. Include text found in scanned images.
Do not summarize, translate, comment or add markdown. Return only the document text.
`

type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Gemini sends the PDF to the Gemini API and asks for a verbatim transcription.
// It is meant as the last backend of a chain, for image-based filings.
type Gemini struct {
	models contentGenerator
	model  string
}

func NewGemini(ctx context.Context, apiKey string, modelName string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if modelName == "" {
		modelName = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &Gemini{models: client.Models, model: modelName}, nil
}

func (g *Gemini) Extract(ctx context.Context, doc types.Document) (string, error) {
	userContent := &genai.Content{
		Parts: []*genai.Part{
			{InlineData: &genai.Blob{MIMEType: "application/pdf", Data: doc.Content}},
			{Text: fmt.Sprintf("Transcribe the document %q.", doc.Name)},
		},
		Role: "user",
	}

	resp, err := g.models.GenerateContent(ctx, g.model, []*genai.Content{userContent}, &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: transcribeInstruction}},
		},
		ResponseMIMEType: "text/plain",
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", fmt.Errorf("%w: %s: gemini API call failed: %v", ErrExtraction, doc.Name, err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: %s: gemini returned no text", ErrExtraction, doc.Name)
	}
	return text, nil
}
