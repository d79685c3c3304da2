package handlers

import (
	"net/http"

	"vizu/internal/domain"
)

func (a *App) ListObjectives(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]any{"objectives": domain.Objectives()})
}

// GetPalette returns the analyzed profile's season palette, falling back to
// the full season catalog for unanalyzed sessions so pre-analysis screens
// can still show reference data.
func (a *App) GetPalette(w http.ResponseWriter, r *http.Request) {
	state := a.Service.State()
	if !state.Profile.Analyzed {
		a.json(w, http.StatusOK, map[string]any{"seasons": domain.Seasons()})
		return
	}
	season, ok := domain.LookupSeason(state.Profile.Season)
	if !ok {
		// Season names are snapshotted from the same table; a miss means
		// stored data predates the current catalog.
		a.error(w, http.StatusNotFound, "not_found", "season not in catalog")
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"season":  season,
		"palette": state.Profile.Palette,
	})
}
