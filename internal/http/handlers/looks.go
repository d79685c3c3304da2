package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"vizu/internal/consult"
	"vizu/internal/domain"
)

type createLookRequest struct {
	Objective       string `json:"objective"`
	AspectRatio     string `json:"aspect_ratio"`
	Resolution      string `json:"resolution"`
	WithEnvironment bool   `json:"with_environment"`
	UseReference    bool   `json:"use_reference"`
}

func (a *App) CreateLook(w http.ResponseWriter, r *http.Request) {
	var req createLookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	state, err := a.Service.GenerateLook(r.Context(), consult.LookOptions{
		ObjectiveID:     req.Objective,
		Aspect:          domain.ParseAspectRatio(req.AspectRatio),
		Resolution:      domain.ParseResolution(req.Resolution),
		WithEnvironment: req.WithEnvironment,
		UseReference:    req.UseReference,
	})
	if err != nil {
		a.aiError(w, err)
		return
	}
	a.json(w, http.StatusCreated, renderState(state))
}

type editLookRequest struct {
	Instruction string `json:"instruction"`
}

func (a *App) EditLook(w http.ResponseWriter, r *http.Request) {
	var req editLookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if strings.TrimSpace(req.Instruction) == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "instruction is required")
		return
	}

	state, err := a.Service.EditLook(r.Context(), req.Instruction)
	if err != nil {
		a.aiError(w, err)
		return
	}
	a.json(w, http.StatusOK, renderState(state))
}

func (a *App) DismissLook(w http.ResponseWriter, r *http.Request) {
	state, err := a.Service.DismissLook()
	if err != nil {
		if !a.domainError(w, err) {
			a.error(w, http.StatusInternalServerError, "internal", "dismiss failed")
		}
		return
	}
	a.json(w, http.StatusOK, renderState(state))
}
