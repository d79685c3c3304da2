package domain

// SeasonPalette is static reference data describing a personal-color season.
type SeasonPalette struct {
	Name        string   `json:"name"`
	Colors      []string `json:"colors"`
	Description string   `json:"description"`
	Icon        string   `json:"icon"`
}

// seasonTable is the closed set of supported seasons. Order matters for
// catalog listings.
var seasonTable = []SeasonPalette{
	{
		Name:        "Inverno Brilhante",
		Colors:      []string{"#000000", "#FFFFFF", "#E60026", "#1F3A93", "#8E44AD"},
		Description: "Cores frias, intensas e puras. Alto contraste é sua marca.",
		Icon:        "❄️",
	},
	{
		Name:        "Verão Suave",
		Colors:      []string{"#7B8CA3", "#ECECEE", "#9EA8C9", "#D98E96", "#A094B7"},
		Description: "Cores frias, suaves e opacas. Elegância discreta e fluida.",
		Icon:        "☀️",
	},
	{
		Name:        "Outono Profundo",
		Colors:      []string{"#4B2E1E", "#D4AF37", "#9E3C28", "#2E523A", "#6D2121"},
		Description: "Cores quentes, escuras e terrosas. Sofisticação natural.",
		Icon:        "🍂",
	},
	{
		Name:        "Primavera Clara",
		Colors:      []string{"#FEF5E7", "#F4D03F", "#F39C12", "#7DCEA0", "#3498DB"},
		Description: "Cores quentes, claras e vibrantes. Energia e acessibilidade.",
		Icon:        "🌸",
	},
}

// Seasons returns a copy of the full season catalog.
func Seasons() []SeasonPalette {
	out := make([]SeasonPalette, len(seasonTable))
	for i, s := range seasonTable {
		s.Colors = append([]string(nil), s.Colors...)
		out[i] = s
	}
	return out
}

// LookupSeason finds a season by its exact name.
func LookupSeason(name string) (SeasonPalette, bool) {
	for _, s := range seasonTable {
		if s.Name == name {
			s.Colors = append([]string(nil), s.Colors...)
			return s, true
		}
	}
	return SeasonPalette{}, false
}

// PaletteFor returns a copy of the color list for the given season, or nil
// when the season is not in the table. Callers own the returned slice.
func PaletteFor(season string) []string {
	s, ok := LookupSeason(season)
	if !ok {
		return nil
	}
	return s.Colors
}
