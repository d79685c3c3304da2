package domain

import "strings"

// Contrast enumerates the perceived facial contrast levels. Values keep the
// Portuguese product copy because they flow verbatim into prompts and UI text.
type Contrast string

const (
	ContrastLow    Contrast = "Baixo"
	ContrastMedium Contrast = "Médio"
	ContrastHigh   Contrast = "Alto"
)

// NormalizeContrast maps free-form model output onto the closed contrast set.
func NormalizeContrast(raw string) Contrast {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "baixo", "low":
		return ContrastLow
	case "alto", "high":
		return ContrastHigh
	default:
		return ContrastMedium
	}
}

// AnalysisResult is the transient outcome of one image analysis round-trip.
// It is consumed once by UserProfile.ApplyAnalysis and never stored on its own.
type AnalysisResult struct {
	Season        string   `json:"season"`
	FaceShape     string   `json:"faceShape"`
	Contrast      Contrast `json:"contrast"`
	Traits        []string `json:"traits"`
	Description   string   `json:"description"`
	LightingGuide string   `json:"lightingGuide"`
	VisagismTips  []string `json:"visagismTips"`
}

// DefaultAnalysis returns the fixed result substituted when the analysis
// service answers with an empty or unparseable payload. Callers must treat it
// as valid data, not as an error signal.
func DefaultAnalysis() AnalysisResult {
	return AnalysisResult{
		Season:        "Inverno Brilhante",
		FaceShape:     "Oval",
		Contrast:      ContrastHigh,
		Traits:        []string{"Expressão marcante", "Linhas equilibradas", "Alto contraste"},
		Description:   "Sua imagem transmite uma naturalidade elegante que pode ser potencializada com cores intensas.",
		LightingGuide: "Luz Frontal Difusa (Equilíbrio)",
		VisagismTips:  []string{"Use decotes em V", "Evite óculos muito redondos", "Cabelo com volume lateral"},
	}
}

const defaultProfileName = "Visitante"

// UserProfile is the single per-device profile. All analysis-derived fields
// are written atomically by ApplyAnalysis; Analyzed==true implies they are
// present. The palette is snapshotted from the season table at analysis time
// so later table changes never alter a stored profile.
type UserProfile struct {
	Name           string   `json:"name"`
	Image          []byte   `json:"image,omitempty"`
	Rotation       int      `json:"rotation"`
	Analyzed       bool     `json:"analyzed"`
	SkinTone       string   `json:"skin_tone,omitempty"`
	FaceShape      string   `json:"face_shape,omitempty"`
	Season         string   `json:"season,omitempty"`
	Contrast       Contrast `json:"contrast,omitempty"`
	Traits         []string `json:"traits,omitempty"`
	Description    string   `json:"description,omitempty"`
	LightingGuide  string   `json:"lighting_guide,omitempty"`
	VisagismTips   []string `json:"visagism_tips,omitempty"`
	Palette        []string `json:"palette,omitempty"`
	LooksGenerated int      `json:"looks_generated"`
}

// NewProfile returns the anonymous default profile.
func NewProfile() UserProfile {
	return UserProfile{Name: defaultProfileName}
}

// SetImage stores a freshly captured photo and invalidates any prior
// analysis. The previous image is overwritten, never accumulated.
func (p *UserProfile) SetImage(img []byte) {
	p.Image = img
	p.Rotation = 0
	p.Analyzed = false
}

// Rotate applies a view-only quarter turn on top of the stored image.
func (p *UserProfile) Rotate() {
	p.Rotation = (p.Rotation + 90) % 360
}

// ApplyAnalysis populates every analysis-derived field from one result and
// marks the profile analyzed. There is no partial-update path.
func (p *UserProfile) ApplyAnalysis(res AnalysisResult) {
	p.Analyzed = true
	p.SkinTone = "Detectado"
	p.FaceShape = res.FaceShape
	p.Season = res.Season
	p.Contrast = res.Contrast
	p.Traits = append([]string(nil), res.Traits...)
	p.Description = res.Description
	p.LightingGuide = res.LightingGuide
	p.VisagismTips = append([]string(nil), res.VisagismTips...)
	p.Palette = PaletteFor(res.Season)
}

// RecordLook bumps the generation counter. It must be called exactly once per
// successful generation, after the provider call returned an image.
func (p *UserProfile) RecordLook() {
	p.LooksGenerated++
}
