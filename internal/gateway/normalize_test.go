package gateway

import (
	"testing"

	"google.golang.org/genai"

	"vizu/internal/domain"
)

func TestParseAnalysisPlainJSON(t *testing.T) {
	res, ok := parseAnalysis(`{"season":"Verão Suave","faceShape":"Redondo","contrast":"baixo","traits":["a"],"description":"d","lightingGuide":"Luz Frontal Difusa","visagismTips":["t"]}`)
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	if res.Season != "Verão Suave" || res.FaceShape != "Redondo" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Contrast != domain.ContrastLow {
		t.Fatalf("Contrast = %q, want normalized Baixo", res.Contrast)
	}
}

func TestParseAnalysisRescuesFencedJSON(t *testing.T) {
	text := "Claro! Aqui está:\n```json\n{\"season\":\"Outono Profundo\",\"faceShape\":\"Quadrado\",\"contrast\":\"Alto\"}\n```"
	res, ok := parseAnalysis(text)
	if !ok {
		t.Fatal("expected brace-scan rescue to succeed")
	}
	if res.Season != "Outono Profundo" || res.Contrast != domain.ContrastHigh {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestParseAnalysisRejectsGarbage(t *testing.T) {
	for _, text := range []string{"", "   ", "no json here", `{"contrast":"Alto"}`, "{broken"} {
		if _, ok := parseAnalysis(text); ok {
			t.Fatalf("parseAnalysis(%q) should fail", text)
		}
	}
}

func TestNormalizeSourcesTaggedUnion(t *testing.T) {
	chunks := []*genai.GroundingChunk{
		{Web: &genai.GroundingChunkWeb{URI: "https://example.com", Title: "Example"}},
		{Maps: &genai.GroundingChunkMaps{URI: "https://maps.example.com/p", Title: "Atelier"}},
		{},
		nil,
	}
	sources := normalizeSources(chunks)
	if len(sources) != 3 {
		t.Fatalf("len(sources) = %d, want 3", len(sources))
	}
	if sources[0].Kind != SourceWeb || sources[0].URI != "https://example.com" {
		t.Fatalf("web source wrong: %+v", sources[0])
	}
	if sources[1].Kind != SourceMap || sources[1].Title != "Atelier" {
		t.Fatalf("map source wrong: %+v", sources[1])
	}
	if sources[2].Kind != SourceUnknown || len(sources[2].Raw) == 0 {
		t.Fatalf("unknown source must keep raw payload: %+v", sources[2])
	}
}

func TestNormalizeSourcesEmpty(t *testing.T) {
	if got := normalizeSources(nil); got == nil || len(got) != 0 {
		t.Fatalf("nil chunks should yield empty slice, got %v", got)
	}
}
