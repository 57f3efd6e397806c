// CommerceLens - E-commerce Analytics Dashboard
// Copyright 2026 CommerceLens Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commercelens/commercelens

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/commercelens/commercelens/internal/queries"
)

// Report serves a registered report as JSON. The area and report names
// come from the URL path; date filters come from query parameters.
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	area := chi.URLParam(r, "area")
	report := chi.URLParam(r, "report")

	if _, err := queries.Get(area, report); err != nil {
		respondError(w, http.StatusNotFound, "UNKNOWN_REPORT",
			"No such report: "+area+"/"+report, nil)
		return
	}

	rng, apiErr := parseDateRange(r)
	if apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	ds, err := h.data.Report(r.Context(), area, report, rng)
	if err != nil {
		if errors.Is(err, queries.ErrNotFound) {
			respondError(w, http.StatusNotFound, "UNKNOWN_REPORT",
				"No such report: "+area+"/"+report, nil)
			return
		}
		respondFetchError(w, err)
		return
	}

	respondData(w, ds)
}

// Reports lists all registered reports grouped by dashboard area.
func (h *Handler) Reports(w http.ResponseWriter, r *http.Request) {
	type reportInfo struct {
		Area   string   `json:"area"`
		Name   string   `json:"name"`
		Params []string `json:"params,omitempty"`
	}

	all := queries.List()
	out := make([]reportInfo, 0, len(all))
	for _, q := range all {
		out = append(out, reportInfo{Area: q.Area, Name: q.Name, Params: q.Params})
	}

	respondJSON(w, http.StatusOK, okResponse(out, len(out)))
}
