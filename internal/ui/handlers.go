// Copyright (c) 2025 Catalognav
// Licensed under the MIT License. See LICENSE file in the project root for details.

package ui

import (
	"net/http"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"

	apperrors "catalognav/cli/internal/errors"
	"catalognav/cli/internal/explorer"
)

// showParam selects one strategy image of one stage, e.g. ?show=test:masking.
type showParam struct {
	stage string
	asset string
}

// parseShow keeps the selection only when the stage exists and offers the asset.
func (h *Handler) parseShow(raw string) showParam {
	stage, asset, ok := strings.Cut(raw, ":")
	if !ok {
		return showParam{}
	}
	st, ok := h.Assets.Stage(stage)
	if !ok || !slices.Contains(st.Assets, asset) {
		return showParam{}
	}
	return showParam{stage: stage, asset: asset}
}

// Dashboard renders the overview with an optional strategy image and no
// explorer result.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	renderHTML(w, http.StatusOK, h.page(dashboard{
		env:  q.Get("env"),
		role: q.Get("role"),
		show: h.parseShow(q.Get("show")),
	}))
}

// ExploreSubmit runs the explore action for the sidebar form. Action
// failures are part of the page, so the status is 200 either way.
func (h *Handler) ExploreSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	req := explorer.Request{
		Environment: r.PostForm.Get("env"),
		Role:        r.PostForm.Get("role"),
	}
	v := h.Explorer.Explore(r.Context(), req)
	renderHTML(w, http.StatusOK, h.page(dashboard{env: req.Environment, role: req.Role, view: v}))
}

// ExploreAPI returns the explore result as JSON.
func (h *Handler) ExploreAPI(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	v := h.Explorer.Explore(r.Context(), explorer.Request{
		Environment: q.Get("env"),
		Role:        q.Get("role"),
	})
	writeJSON(w, statusFor(v), v)
}

func statusFor(v *explorer.View) int {
	if !v.Failed() {
		return http.StatusOK
	}
	switch apperrors.Kind(v.ErrorKind) {
	case apperrors.KeyNotFound:
		return http.StatusBadRequest
	case apperrors.ConnectionFailed, apperrors.QueryFailed:
		return http.StatusBadGateway
	case apperrors.SecretStoreFailed:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// Asset serves an image by logical name.
func (h *Handler) Asset(w http.ResponseWriter, r *http.Request) {
	a, err := h.Assets.Lookup(chi.URLParam(r, "name"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, a.Path)
}
