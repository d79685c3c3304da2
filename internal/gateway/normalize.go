package gateway

import (
	"encoding/json"
	"strings"

	"google.golang.org/genai"

	"vizu/internal/domain"
)

type analysisPayload struct {
	Season        string   `json:"season"`
	FaceShape     string   `json:"faceShape"`
	Contrast      string   `json:"contrast"`
	Traits        []string `json:"traits"`
	Description   string   `json:"description"`
	LightingGuide string   `json:"lightingGuide"`
	VisagismTips  []string `json:"visagismTips"`
}

// parseAnalysis decodes the analysis JSON, tolerating markdown fences or
// prose around the object. ok is false when nothing usable can be recovered,
// which the caller maps to the fixed default result.
func parseAnalysis(text string) (domain.AnalysisResult, bool) {
	raw := extractJSON(text)
	if raw == "" {
		return domain.AnalysisResult{}, false
	}
	var p analysisPayload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return domain.AnalysisResult{}, false
	}
	if strings.TrimSpace(p.Season) == "" && strings.TrimSpace(p.FaceShape) == "" {
		return domain.AnalysisResult{}, false
	}
	return domain.AnalysisResult{
		Season:        strings.TrimSpace(p.Season),
		FaceShape:     strings.TrimSpace(p.FaceShape),
		Contrast:      domain.NormalizeContrast(p.Contrast),
		Traits:        p.Traits,
		Description:   strings.TrimSpace(p.Description),
		LightingGuide: strings.TrimSpace(p.LightingGuide),
		VisagismTips:  p.VisagismTips,
	}, true
}

// extractJSON isolates the outermost JSON object in a model reply.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	if strings.HasPrefix(text, "{") && strings.HasSuffix(text, "}") {
		return text
	}
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return ""
	}
	return text[start : end+1]
}

// normalizeSources converts heterogeneous grounding chunks into the tagged
// Source union. The decision happens once here; render code never probes
// optional provider fields. Shapes we do not recognize keep their raw payload
// under SourceUnknown so the assistant can still render a citation.
func normalizeSources(chunks []*genai.GroundingChunk) []Source {
	if len(chunks) == 0 {
		return []Source{}
	}
	out := make([]Source, 0, len(chunks))
	for _, chunk := range chunks {
		if chunk == nil {
			continue
		}
		switch {
		case chunk.Web != nil:
			out = append(out, Source{Kind: SourceWeb, URI: chunk.Web.URI, Title: chunk.Web.Title})
		case chunk.Maps != nil:
			out = append(out, Source{Kind: SourceMap, URI: chunk.Maps.URI, Title: chunk.Maps.Title})
		default:
			raw, err := json.Marshal(chunk)
			if err != nil {
				continue
			}
			out = append(out, Source{Kind: SourceUnknown, Raw: raw})
		}
	}
	return out
}
