package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"vizu/internal/domain"
)

func (a *App) ListPlans(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]any{"plans": domain.PlanCatalog()})
}

type selectPlanRequest struct {
	Tier string `json:"tier"`
}

func (a *App) SelectPlan(w http.ResponseWriter, r *http.Request) {
	var req selectPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	tier, ok := domain.ParsePlanTier(req.Tier)
	if !ok {
		a.domainError(w, fmt.Errorf("%w: %q", domain.ErrUnknownPlan, req.Tier))
		return
	}

	state, err := a.Service.SelectPlan(r.Context(), tier)
	if err != nil {
		if !a.domainError(w, err) {
			a.error(w, http.StatusInternalServerError, "internal", "plan selection failed")
		}
		return
	}
	a.json(w, http.StatusOK, renderState(state))
}
