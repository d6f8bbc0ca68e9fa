package llm

import (
	"context"
	"strings"

	"google.golang.org/genai"
)

type GeminiConfig struct {
	APIKey  string
	BaseURL string
}

// contentGenerator is the slice of *genai.Models the provider uses.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type GeminiProvider struct {
	apiKey  string
	baseURL string
	connect func(ctx context.Context, cfg *genai.ClientConfig) (contentGenerator, error)
}

func NewGeminiProvider(cfg GeminiConfig) *GeminiProvider {
	return &GeminiProvider{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		connect: connectGenAI,
	}
}

func connectGenAI(ctx context.Context, cfg *genai.ClientConfig) (contentGenerator, error) {
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return client.Models, nil
}

// Generate opens a client for this call only; the key is not checked beyond
// what the SDK and the service enforce.
func (p *GeminiProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  p.apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if p.baseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: p.baseURL}
	}
	models, err := p.connect(ctx, clientCfg)
	if err != nil {
		return nil, err
	}

	resp, err := models.GenerateContent(ctx, req.Model, genai.Text(req.Prompt), generateConfig(req))
	if err != nil {
		return nil, err
	}
	return &Response{
		Text:      responseText(resp),
		Citations: groundingCitations(resp),
	}, nil
}

func generateConfig(req Request) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{}
	if req.SystemInstruction != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.SystemInstruction, genai.RoleUser)
	}
	if req.WebSearch {
		cfg.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}
	return cfg
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	content := resp.Candidates[0].Content
	if content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range content.Parts {
		if part == nil || part.Thought {
			continue
		}
		sb.WriteString(part.Text)
	}
	return sb.String()
}

func groundingCitations(resp *genai.GenerateContentResponse) []Citation {
	if resp == nil || len(resp.Candidates) == 0 {
		return []Citation{}
	}
	metadata := resp.Candidates[0].GroundingMetadata
	if metadata == nil {
		return []Citation{}
	}
	citations := make([]Citation, 0, len(metadata.GroundingChunks))
	for _, chunk := range metadata.GroundingChunks {
		var citation Citation
		if chunk != nil && chunk.Web != nil {
			citation.Title = chunk.Web.Title
			citation.URI = chunk.Web.URI
		}
		citations = append(citations, citation)
	}
	return citations
}
