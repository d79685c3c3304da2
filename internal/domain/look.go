package domain

import "strings"

// AspectRatio enumerates the supported output framings for generated looks.
type AspectRatio string

const (
	AspectSquare   AspectRatio = "1:1"
	AspectPortrait AspectRatio = "3:4"
	AspectTall     AspectRatio = "9:16"
	AspectWide     AspectRatio = "16:9"
)

// ParseAspectRatio validates free-form input, defaulting to portrait.
func ParseAspectRatio(raw string) AspectRatio {
	switch AspectRatio(strings.TrimSpace(raw)) {
	case AspectSquare, AspectPortrait, AspectTall, AspectWide:
		return AspectRatio(strings.TrimSpace(raw))
	default:
		return AspectPortrait
	}
}

// Resolution enumerates the ordered output quality tiers.
type Resolution string

const (
	ResolutionLow    Resolution = "1K"
	ResolutionMedium Resolution = "2K"
	ResolutionHigh   Resolution = "4K"
)

// ParseResolution validates free-form input, defaulting to the low tier.
func ParseResolution(raw string) Resolution {
	switch Resolution(strings.ToUpper(strings.TrimSpace(raw))) {
	case ResolutionLow, ResolutionMedium, ResolutionHigh:
		return Resolution(strings.ToUpper(strings.TrimSpace(raw)))
	default:
		return ResolutionLow
	}
}

// LookObjective is a fixed look category driving both prompt construction and
// entitlement checks.
type LookObjective struct {
	ID                 string `json:"id"`
	Label              string `json:"label"`
	Desc               string `json:"desc"`
	EnvironmentContext string `json:"environment_context"`
	Premium            bool   `json:"premium"`
}

var objectiveCatalog = []LookObjective{
	{ID: "work", Label: "Corporativo", Desc: "Autoridade profissional", EnvironmentContext: "Escritório moderno"},
	{ID: "casual", Label: "Casual Dia", Desc: "Estilo no dia a dia", EnvironmentContext: "Rua urbana / Café"},
	{ID: "party", Label: "Festa / Noite", Desc: "Noite e sofisticação", EnvironmentContext: "Lounge sofisticado"},
	{ID: "sport", Label: "Esportivo", Desc: "Performance com estilo", EnvironmentContext: "Parque / Academia Premium"},
	{ID: "date", Label: "Encontro (Date Night)", Desc: "Romântico e atraente", EnvironmentContext: "Restaurante intimista à luz de velas", Premium: true},
	{ID: "formal", Label: "Evento Formal", Desc: "Gala, luxo e elegância", EnvironmentContext: "Salão de baile clássico com lustres", Premium: true},
}

// Objectives returns a copy of the objective catalog.
func Objectives() []LookObjective {
	return append([]LookObjective(nil), objectiveCatalog...)
}

// ObjectiveByID resolves an objective by identifier.
func ObjectiveByID(id string) (LookObjective, bool) {
	for _, o := range objectiveCatalog {
		if o.ID == id {
			return o, true
		}
	}
	return LookObjective{}, false
}

// GeneratedLook is the single current generation result. Each successful
// generation replaces it wholesale; a successful edit swaps only the image.
// It is never persisted across sessions.
type GeneratedLook struct {
	ID                     string `json:"id"`
	Objective              string `json:"objective"`
	Title                  string `json:"title"`
	Details                string `json:"details"`
	Tips                   string `json:"tips"`
	Environment            string `json:"environment,omitempty"`
	EnvironmentDesc        string `json:"environment_desc,omitempty"`
	CreatedWithEnvironment bool   `json:"created_with_environment"`
	Image                  []byte `json:"image,omitempty"`
}
