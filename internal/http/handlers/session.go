package handlers

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"vizu/internal/flow"
)

// maxPhotoBytes bounds the decoded upload; anything larger than a phone
// camera frame is rejected before it reaches the provider.
const maxPhotoBytes = 15 << 20

func (a *App) GetSession(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, renderState(a.Service.State()))
}

type photoRequest struct {
	// Image is base64, with or without a data-URL prefix.
	Image string `json:"image"`
}

func (a *App) PostPhoto(w http.ResponseWriter, r *http.Request) {
	var req photoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	image, err := decodePhoto(req.Image)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "image must be base64 encoded")
		return
	}

	state, err := a.Service.Analyze(r.Context(), image)
	if err != nil {
		if a.domainError(w, err) {
			return
		}
		// The photo is kept for retry; tell the client analysis failed.
		a.error(w, http.StatusBadGateway, "analysis_failed", "image analysis failed, try again")
		return
	}
	a.json(w, http.StatusOK, renderState(state))
}

func (a *App) RotatePhoto(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, renderState(a.Service.Rotate(r.Context())))
}

type navigateRequest struct {
	To string `json:"to"`
}

func (a *App) Navigate(w http.ResponseWriter, r *http.Request) {
	var req navigateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	view, ok := flow.ParseView(req.To)
	if !ok {
		a.error(w, http.StatusBadRequest, "bad_request", "unknown view")
		return
	}
	state, err := a.Service.Navigate(view)
	if err != nil {
		if !a.domainError(w, err) {
			a.error(w, http.StatusInternalServerError, "internal", "navigation failed")
		}
		return
	}
	a.json(w, http.StatusOK, renderState(state))
}

func (a *App) ResetSession(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, renderState(a.Service.Reset(r.Context())))
}

func decodePhoto(raw string) ([]byte, error) {
	raw = strings.TrimSpace(raw)
	if idx := strings.Index(raw, ","); idx >= 0 && strings.HasPrefix(raw, "data:") {
		raw = raw[idx+1:]
	}
	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("empty image")
	}
	if len(data) > maxPhotoBytes {
		return nil, errors.New("image too large")
	}
	return data, nil
}
