package gateway

import (
	"context"
	"encoding/json"

	"vizu/internal/domain"
)

// AdviceMode selects which grounding tool is attached to an advice query.
type AdviceMode string

const (
	AdviceModeSearch AdviceMode = "search"
	AdviceModeMaps   AdviceMode = "maps"
)

// ParseAdviceMode validates free-form input, defaulting to web search.
func ParseAdviceMode(raw string) AdviceMode {
	if AdviceMode(raw) == AdviceModeMaps {
		return AdviceModeMaps
	}
	return AdviceModeSearch
}

// LatLng is a caller-supplied or GeoIP-derived location for maps grounding.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// SourceKind tags the shape of a grounding citation.
type SourceKind string

const (
	SourceWeb     SourceKind = "web"
	SourceMap     SourceKind = "map"
	SourceUnknown SourceKind = "unknown"
)

// Source is a normalized grounding citation. The heterogeneous provider
// shapes are decided here, at the gateway boundary, so callers never probe
// optional fields again. Unknown shapes keep their raw payload.
type Source struct {
	Kind  SourceKind      `json:"kind"`
	URI   string          `json:"uri,omitempty"`
	Title string          `json:"title,omitempty"`
	Raw   json.RawMessage `json:"raw,omitempty"`
}

// Advice is the grounded answer returned to the assistant screen.
type Advice struct {
	Text    string   `json:"text"`
	Sources []Source `json:"sources"`
}

// AdviceRequest carries one assistant query. Locale is the request locale
// resolved by the i18n middleware ("pt" or "en"); it selects the answer
// language and the fallback copy. Location is optional and only consulted in
// maps mode.
type AdviceRequest struct {
	Query    string
	Mode     AdviceMode
	Locale   string
	Location *LatLng
}

// LookRequest carries everything needed to synthesize one styled image.
type LookRequest struct {
	Prompt     string
	Aspect     domain.AspectRatio
	Resolution domain.Resolution
	// Reference conditions the generation on the user's own photo so the
	// generated look preserves facial identity. Optional.
	Reference []byte
}

// Client is the stateless AI gateway. Each method is a single round-trip with
// no retries; failures either propagate as-is or are absorbed into documented
// fallbacks (AnalyzeImage on unparseable payloads, ExplainLook always).
type Client interface {
	AnalyzeImage(ctx context.Context, image []byte) (domain.AnalysisResult, error)
	GenerateLook(ctx context.Context, req LookRequest) ([]byte, error)
	// ExplainLook never fails: any provider error is replaced by a canned
	// consultative sentence so it cannot abort a look generation.
	ExplainLook(ctx context.Context, profile domain.UserProfile, objective domain.LookObjective) string
	EditImage(ctx context.Context, image []byte, instruction string) ([]byte, error)
	GetAdvice(ctx context.Context, req AdviceRequest) (Advice, error)
}
