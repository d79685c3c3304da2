package gateway

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"vizu/internal/domain"
)

// Options configures the Gemini-backed gateway.
type Options struct {
	APIKey        string
	AnalysisModel string
	ImageModel    string
	EditModel     string
	TextModel     string
	Logger        zerolog.Logger
}

const (
	defaultAnalysisModel = "gemini-3-pro-preview"
	defaultImageModel    = "gemini-3-pro-image-preview"
	defaultEditModel     = "gemini-2.5-flash-image"
	defaultTextModel     = "gemini-2.5-flash"
)

// Gemini implements Client against the Google Gemini API.
type Gemini struct {
	client *genai.Client
	opts   Options
	log    zerolog.Logger
}

// NewGemini constructs the gateway. Models default to the production set when
// unset so only the API key is mandatory.
func NewGemini(ctx context.Context, opts Options) (*Gemini, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errors.New("gateway: gemini api key is required")
	}
	if opts.AnalysisModel == "" {
		opts.AnalysisModel = defaultAnalysisModel
	}
	if opts.ImageModel == "" {
		opts.ImageModel = defaultImageModel
	}
	if opts.EditModel == "" {
		opts.EditModel = defaultEditModel
	}
	if opts.TextModel == "" {
		opts.TextModel = defaultTextModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gateway: create genai client: %w", err)
	}
	return &Gemini{
		client: client,
		opts:   opts,
		log:    opts.Logger.With().Str("component", "gateway").Logger(),
	}, nil
}

var analysisSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"season":        {Type: genai.TypeString},
		"faceShape":     {Type: genai.TypeString},
		"contrast":      {Type: genai.TypeString},
		"traits":        {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"description":   {Type: genai.TypeString},
		"lightingGuide": {Type: genai.TypeString},
		"visagismTips":  {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
	},
}

// AnalyzeImage runs the multistep visagism/colorimetry analysis. Transport
// errors propagate; an empty or unparseable payload is replaced by the fixed
// default result, which callers must treat as valid data.
func (g *Gemini) AnalyzeImage(ctx context.Context, image []byte) (domain.AnalysisResult, error) {
	parts := []*genai.Part{
		genai.NewPartFromBytes(image, "image/jpeg"),
		genai.NewPartFromText(buildAnalysisPrompt()),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   analysisSchema,
	}
	resp, err := g.client.Models.GenerateContent(ctx, g.opts.AnalysisModel, contents, cfg)
	if err != nil {
		return domain.AnalysisResult{}, fmt.Errorf("gateway: analyze image: %w", err)
	}
	res, ok := parseAnalysis(resp.Text())
	if !ok {
		g.log.Warn().Msg("analysis payload unparseable, using default result")
		return domain.DefaultAnalysis(), nil
	}
	return res, nil
}

// GenerateLook synthesizes one styled image, optionally conditioned on the
// user's own photo. A response without an inline image part is an error; no
// placeholder image is substituted.
func (g *Gemini) GenerateLook(ctx context.Context, req LookRequest) ([]byte, error) {
	parts := make([]*genai.Part, 0, 2)
	if len(req.Reference) > 0 {
		parts = append(parts, genai.NewPartFromBytes(req.Reference, "image/jpeg"))
	}
	parts = append(parts, genai.NewPartFromText(req.Prompt))
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
	cfg := &genai.GenerateContentConfig{
		ImageConfig: &genai.ImageConfig{
			AspectRatio: string(req.Aspect),
			ImageSize:   string(req.Resolution),
		},
	}
	resp, err := g.client.Models.GenerateContent(ctx, g.opts.ImageModel, contents, cfg)
	if err != nil {
		return nil, fmt.Errorf("gateway: generate look: %w", err)
	}
	img := firstInlineImage(resp)
	if img == nil {
		return nil, fmt.Errorf("gateway: generate look: %w: no image in response", domain.ErrProviderFailure)
	}
	return img, nil
}

// ExplainLook produces the short "why this works" text. Every failure path
// resolves to product copy so the explanation branch can never abort a
// generation.
func (g *Gemini) ExplainLook(ctx context.Context, profile domain.UserProfile, objective domain.LookObjective) string {
	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](0.7),
		MaxOutputTokens: 100,
	}
	resp, err := g.client.Models.GenerateContent(ctx, g.opts.TextModel,
		genai.Text(buildExplanationPrompt(profile, objective)), cfg)
	if err != nil {
		g.log.Warn().Err(err).Msg("look explanation failed, using fallback copy")
		return explanationFallback
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "Este look foi selecionado para harmonizar com seus traços naturais e comunicar seu objetivo com clareza."
	}
	return text
}

// EditImage applies a described edit to a previously generated image.
func (g *Gemini) EditImage(ctx context.Context, image []byte, instruction string) ([]byte, error) {
	parts := []*genai.Part{
		genai.NewPartFromBytes(image, "image/png"),
		genai.NewPartFromText(instruction),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
	resp, err := g.client.Models.GenerateContent(ctx, g.opts.EditModel, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("gateway: edit image: %w", err)
	}
	img := firstInlineImage(resp)
	if img == nil {
		return nil, fmt.Errorf("gateway: edit image: %w: no image in response", domain.ErrProviderFailure)
	}
	return img, nil
}

// GetAdvice answers a free-text query with the selected grounding tool
// attached, in the request locale. Provider failures are absorbed into canned
// copy; only context cancellation surfaces as an error.
func (g *Gemini) GetAdvice(ctx context.Context, req AdviceRequest) (Advice, error) {
	cfg := &genai.GenerateContentConfig{}
	switch req.Mode {
	case AdviceModeMaps:
		cfg.Tools = []*genai.Tool{{GoogleMaps: &genai.GoogleMaps{}}}
		if req.Location != nil {
			cfg.ToolConfig = &genai.ToolConfig{
				RetrievalConfig: &genai.RetrievalConfig{
					LatLng: &genai.LatLng{Latitude: genai.Ptr(req.Location.Lat), Longitude: genai.Ptr(req.Location.Lng)},
				},
			}
		}
	default:
		cfg.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}
	prompt := buildAdvicePrompt(req.Query, req.Locale)
	resp, err := g.client.Models.GenerateContent(ctx, g.opts.TextModel, genai.Text(prompt), cfg)
	if err != nil {
		if ctx.Err() != nil {
			return Advice{}, ctx.Err()
		}
		g.log.Warn().Err(err).Str("mode", string(req.Mode)).Msg("advice call failed, using fallback copy")
		return Advice{Text: adviceFallbackText(req.Locale), Sources: []Source{}}, nil
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		text = adviceEmptyText(req.Locale)
	}
	return Advice{Text: text, Sources: normalizeSources(groundingChunks(resp))}, nil
}

// firstInlineImage returns the first inline image payload of the first
// candidate, or nil when the response carries none.
func firstInlineImage(resp *genai.GenerateContentResponse) []byte {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
			return part.InlineData.Data
		}
	}
	return nil
}

func groundingChunks(resp *genai.GenerateContentResponse) []*genai.GroundingChunk {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].GroundingMetadata == nil {
		return nil
	}
	return resp.Candidates[0].GroundingMetadata.GroundingChunks
}
