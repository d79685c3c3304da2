package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"vizu/internal/consult"
	"vizu/internal/domain"
	"vizu/internal/flow"
	"vizu/internal/infra/geoip"
)

// App holds the HTTP handler dependencies.
type App struct {
	Service *consult.Service
	Geo     geoip.Locator
	Log     zerolog.Logger
}

// NewApp wires the handler set. Geo may be nil when no GeoIP database is
// configured.
func NewApp(service *consult.Service, geo geoip.Locator, log zerolog.Logger) *App {
	return &App{Service: service, Geo: geo, Log: log.With().Str("component", "http").Logger()}
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	// Route tells the client where to send the user next, e.g. "pricing"
	// on an entitlement denial.
	Route string `json:"route,omitempty"`
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, errCode, message string) {
	a.json(w, code, errorResponse{Error: errCode, Message: message})
}

func (a *App) deny(w http.ResponseWriter, errCode, message string) {
	a.json(w, http.StatusForbidden, errorResponse{Error: errCode, Message: message, Route: "pricing"})
}

// domainError maps flow and entitlement sentinels onto HTTP statuses. It
// reports false when the error is none of them, so call sites choose their
// own fallback status (500 for local ops, 502 for AI round-trips).
func (a *App) domainError(w http.ResponseWriter, err error) bool {
	switch {
	case errors.Is(err, domain.ErrBusy):
		a.error(w, http.StatusConflict, "busy", "another operation is in flight")
	case errors.Is(err, domain.ErrQuotaExceeded):
		a.deny(w, "quota_exceeded", "free look quota exhausted")
	case errors.Is(err, domain.ErrPremiumRequired):
		a.deny(w, "premium_required", "objective requires a paid plan")
	case errors.Is(err, domain.ErrUnknownObjective):
		a.error(w, http.StatusBadRequest, "bad_request", "unknown objective")
	case errors.Is(err, domain.ErrUnknownPlan):
		a.error(w, http.StatusBadRequest, "bad_request", "unknown plan tier")
	case errors.Is(err, domain.ErrNotAnalyzed):
		a.error(w, http.StatusConflict, "not_analyzed", "profile has no analysis yet")
	case errors.Is(err, domain.ErrInvalidTransition):
		a.error(w, http.StatusConflict, "invalid_state", "action not allowed from the current screen")
	case errors.Is(err, domain.ErrNoLook):
		a.error(w, http.StatusNotFound, "not_found", "no current look")
	default:
		return false
	}
	return true
}

// aiError finishes error handling for operations that crossed the AI
// gateway: anything that is not a domain sentinel is a provider failure.
func (a *App) aiError(w http.ResponseWriter, err error) {
	if a.domainError(w, err) {
		return
	}
	a.error(w, http.StatusBadGateway, "provider_failure", "AI provider call failed")
}

type profilePayload struct {
	Name           string          `json:"name"`
	HasImage       bool            `json:"has_image"`
	Rotation       int             `json:"rotation"`
	Analyzed       bool            `json:"analyzed"`
	SkinTone       string          `json:"skin_tone,omitempty"`
	FaceShape      string          `json:"face_shape,omitempty"`
	Season         string          `json:"season,omitempty"`
	Contrast       domain.Contrast `json:"contrast,omitempty"`
	Traits         []string        `json:"traits,omitempty"`
	Description    string          `json:"description,omitempty"`
	LightingGuide  string          `json:"lighting_guide,omitempty"`
	VisagismTips   []string        `json:"visagism_tips,omitempty"`
	Palette        []string        `json:"palette,omitempty"`
	LooksGenerated int             `json:"looks_generated"`
}

type sessionPayload struct {
	View       flow.View             `json:"view"`
	Plan       domain.PlanTier       `json:"plan"`
	Profile    profilePayload        `json:"profile"`
	Look       *domain.GeneratedLook `json:"look,omitempty"`
	Analyzing  bool                  `json:"analyzing"`
	Generating bool                  `json:"generating"`
	Editing    bool                  `json:"editing"`
}

// renderState converts session state for the wire. The stored photo never
// leaves the server; clients keep their own copy of what they uploaded.
func renderState(state flow.State) sessionPayload {
	p := state.Profile
	return sessionPayload{
		View: state.View,
		Plan: state.Plan,
		Profile: profilePayload{
			Name:           p.Name,
			HasImage:       len(p.Image) > 0,
			Rotation:       p.Rotation,
			Analyzed:       p.Analyzed,
			SkinTone:       p.SkinTone,
			FaceShape:      p.FaceShape,
			Season:         p.Season,
			Contrast:       p.Contrast,
			Traits:         p.Traits,
			Description:    p.Description,
			LightingGuide:  p.LightingGuide,
			VisagismTips:   p.VisagismTips,
			Palette:        p.Palette,
			LooksGenerated: p.LooksGenerated,
		},
		Look:       state.Look,
		Analyzing:  state.Analyzing,
		Generating: state.Generating,
		Editing:    state.Editing,
	}
}
