// CommerceLens - E-commerce Analytics Dashboard
// Copyright 2026 CommerceLens Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commercelens/commercelens

package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/commercelens/commercelens/internal/export"
	"github.com/commercelens/commercelens/internal/logging"
	"github.com/commercelens/commercelens/internal/queries"
)

// Export serves a report as a downloadable file. The format query
// parameter selects csv, json or xlsx; csv is the default.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	area := chi.URLParam(r, "area")
	report := chi.URLParam(r, "report")

	if _, err := queries.Get(area, report); err != nil {
		respondError(w, http.StatusNotFound, "UNKNOWN_REPORT",
			"No such report: "+area+"/"+report, nil)
		return
	}

	formatParam := r.URL.Query().Get("format")
	if formatParam == "" {
		formatParam = string(export.FormatCSV)
	}
	format, err := export.ParseFormat(formatParam)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_FORMAT",
			"Format must be one of csv, json, xlsx", err)
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

	filename := fmt.Sprintf("%s_%s_%s.%s", area, report,
		time.Now().Format("20060102"), format)
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := export.Write(w, ds, format, h.config.Export.MaxRows); err != nil {
		// Headers are already sent; best effort is to log the failure.
		logging.Error().Err(err).
			Str("area", area).
			Str("report", report).
			Str("format", string(format)).
			Msg("Export write failed")
	}
}
