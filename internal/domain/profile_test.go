package domain

import (
	"reflect"
	"testing"
)

func TestApplyAnalysisAtomic(t *testing.T) {
	p := NewProfile()
	p.SetImage([]byte("jpeg-bytes"))

	res := AnalysisResult{
		Season:        "Inverno Brilhante",
		FaceShape:     "Coração",
		Contrast:      ContrastHigh,
		Traits:        []string{"a", "b", "c"},
		Description:   "desc",
		LightingGuide: "Luz Rembrandt",
		VisagismTips:  []string{"tip"},
	}
	p.ApplyAnalysis(res)

	if !p.Analyzed {
		t.Fatal("profile should be analyzed")
	}
	if p.FaceShape != "Coração" || p.Season != "Inverno Brilhante" || p.Contrast != ContrastHigh {
		t.Fatalf("analysis fields not applied: %+v", p)
	}
	want := PaletteFor("Inverno Brilhante")
	if !reflect.DeepEqual(p.Palette, want) {
		t.Fatalf("Palette = %v, want %v", p.Palette, want)
	}

	// The stored palette is a snapshot, not an alias into the season table.
	p.Palette[0] = "#123456"
	if PaletteFor("Inverno Brilhante")[0] == "#123456" {
		t.Fatal("season table mutated through a profile palette")
	}
}

func TestSetImageClearsAnalyzed(t *testing.T) {
	p := NewProfile()
	p.ApplyAnalysis(DefaultAnalysis())
	p.Rotate()

	p.SetImage([]byte("new"))
	if p.Analyzed {
		t.Fatal("re-capture must clear the analyzed flag")
	}
	if p.Rotation != 0 {
		t.Fatalf("Rotation = %d, want reset to 0", p.Rotation)
	}
}

func TestRotateWraps(t *testing.T) {
	p := NewProfile()
	for i := 0; i < 4; i++ {
		p.Rotate()
	}
	if p.Rotation != 0 {
		t.Fatalf("Rotation after full turn = %d, want 0", p.Rotation)
	}
}

func TestDefaultAnalysisFallbackShape(t *testing.T) {
	res := DefaultAnalysis()
	if res.Season != "Inverno Brilhante" || res.FaceShape != "Oval" || res.Contrast != ContrastHigh {
		t.Fatalf("unexpected fallback: %+v", res)
	}
	if len(res.Traits) != 3 || len(res.VisagismTips) != 3 {
		t.Fatalf("fallback lists incomplete: %+v", res)
	}
}

func TestNormalizeContrast(t *testing.T) {
	tests := []struct {
		in   string
		want Contrast
	}{
		{"Alto", ContrastHigh},
		{"baixo", ContrastLow},
		{"LOW", ContrastLow},
		{"Médio", ContrastMedium},
		{"whatever", ContrastMedium},
		{"", ContrastMedium},
	}
	for _, tt := range tests {
		if got := NormalizeContrast(tt.in); got != tt.want {
			t.Fatalf("NormalizeContrast(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLookupSeasonAndObjectives(t *testing.T) {
	if _, ok := LookupSeason("Inverno Brilhante"); !ok {
		t.Fatal("known season missing")
	}
	if _, ok := LookupSeason("Estação Inventada"); ok {
		t.Fatal("unknown season should not resolve")
	}
	if PaletteFor("Estação Inventada") != nil {
		t.Fatal("unknown season palette should be nil")
	}

	obj, ok := ObjectiveByID("formal")
	if !ok || !obj.Premium {
		t.Fatalf("formal objective = %+v, ok=%v", obj, ok)
	}
	if obj, _ := ObjectiveByID("work"); obj.Premium {
		t.Fatal("work objective must not be premium")
	}
	if len(Objectives()) != 6 {
		t.Fatalf("objective catalog size = %d, want 6", len(Objectives()))
	}
}

func TestParseAspectAndResolution(t *testing.T) {
	if got := ParseAspectRatio("9:16"); got != AspectTall {
		t.Fatalf("ParseAspectRatio = %q", got)
	}
	if got := ParseAspectRatio("2:3"); got != AspectPortrait {
		t.Fatalf("invalid aspect should default to portrait, got %q", got)
	}
	if got := ParseResolution("4k"); got != ResolutionHigh {
		t.Fatalf("ParseResolution = %q", got)
	}
	if got := ParseResolution(""); got != ResolutionLow {
		t.Fatalf("empty resolution should default to 1K, got %q", got)
	}
}
