package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"vizu/internal/gateway"
	"vizu/internal/middleware"
)

type adviceRequest struct {
	Query string   `json:"query"`
	Mode  string   `json:"mode"`
	Lat   *float64 `json:"lat,omitempty"`
	Lng   *float64 `json:"lng,omitempty"`
}

// PostAdvice answers a grounded assistant query in the request locale. In
// maps mode a missing location is filled from GeoIP when a database is
// configured; without a location the maps tool still runs, just ungrounded
// to a place.
func (a *App) PostAdvice(w http.ResponseWriter, r *http.Request) {
	var req adviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "query is required")
		return
	}

	mode := gateway.ParseAdviceMode(req.Mode)
	var loc *gateway.LatLng
	if req.Lat != nil && req.Lng != nil {
		loc = &gateway.LatLng{Lat: *req.Lat, Lng: *req.Lng}
	} else if mode == gateway.AdviceModeMaps && a.Geo != nil {
		if pos, err := a.Geo.Locate(middleware.ClientIP(r)); err == nil {
			loc = &gateway.LatLng{Lat: pos.Latitude, Lng: pos.Longitude}
		}
	}

	advice, err := a.Service.Advice(r.Context(), gateway.AdviceRequest{
		Query:    req.Query,
		Mode:     mode,
		Locale:   middleware.LocaleFromContext(r.Context()),
		Location: loc,
	})
	if err != nil {
		a.aiError(w, err)
		return
	}
	a.json(w, http.StatusOK, advice)
}
