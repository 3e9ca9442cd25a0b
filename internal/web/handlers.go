package web

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/pagegrid/pagegrid/internal/grid"
	"github.com/pagegrid/pagegrid/internal/logging"
	"github.com/pagegrid/pagegrid/internal/store"
)

// snapshotPayload is the wire form of a dataset for create and save.
type snapshotPayload struct {
	Rows    []grid.Row `json:"rows"`
	Columns []string   `json:"columns"`
}

// createFileResponse carries the new file's ID.
type createFileResponse struct {
	FileID string `json:"fileId"`
}

// columnValuesRequest asks for the selectable values of a column,
// narrowed by the other active column filters.
type columnValuesRequest struct {
	Column  string              `json:"column"`
	Cascade map[string][]string `json:"cascade,omitempty"`
}

// columnValuesResponse carries the cascading value list.
type columnValuesResponse struct {
	Values []string `json:"values"`
}

// handleCreateFile registers a new dataset and returns its ID.
func (s *Server) handleCreateFile(w http.ResponseWriter, r *http.Request) {
	var payload snapshotPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondErrorMessage(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	ds := &store.Dataset{Columns: payload.Columns, Rows: payload.Rows}
	id, err := s.store.Create(r.Context(), ds)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	logging.FromContext(r.Context()).Info("file created",
		"file_id", id,
		"rows", len(payload.Rows),
		"columns", len(payload.Columns),
	)

	w.WriteHeader(http.StatusCreated)
	writeJSON(w, createFileResponse{FileID: id})
}

// handleGetPage serves one filtered, paginated page of a dataset.
//
// Query parameters: page, pageSize, search, filterColumn, filterValues
// (repeated once per value, so values may contain any character). At
// most one of search and filterColumn should be set; if both arrive,
// search wins, mirroring the engine's exclusivity rule.
func (s *Server) handleGetPage(w http.ResponseWriter, r *http.Request) {
	fileID := chi.URLParam(r, "fileID")

	q := store.Query{
		Page:     queryInt(r, "page", 1),
		PageSize: queryInt(r, "pageSize", grid.DefaultPageSize),
		Search:   r.URL.Query().Get("search"),
	}
	if q.Search == "" {
		q.FilterColumn = r.URL.Query().Get("filterColumn")
		q.FilterValues = r.URL.Query()["filterValues"]
	}

	page, err := s.store.GetPage(r.Context(), fileID, q)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, page)
}

// handleColumnValues serves the cascading value list for a column.
func (s *Server) handleColumnValues(w http.ResponseWriter, r *http.Request) {
	fileID := chi.URLParam(r, "fileID")

	var req columnValuesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErrorMessage(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Column == "" {
		respondErrorMessage(w, http.StatusBadRequest, "column is required")
		return
	}

	values, err := s.store.ColumnValues(r.Context(), fileID, req.Column, req.Cascade)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, columnValuesResponse{Values: values})
}

// handleSaveFile replaces the dataset with the submitted snapshot.
func (s *Server) handleSaveFile(w http.ResponseWriter, r *http.Request) {
	fileID := chi.URLParam(r, "fileID")

	var payload snapshotPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondErrorMessage(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	snap := grid.Snapshot{Rows: payload.Rows, Columns: payload.Columns}
	if err := s.store.Replace(r.Context(), fileID, snap); err != nil {
		s.respondError(w, r, err)
		return
	}

	logging.FromContext(r.Context()).Info("file saved",
		"file_id", fileID,
		"rows", len(payload.Rows),
	)

	writeJSON(w, map[string]bool{"success": true})
}

// handleExport streams the dataset in the requested format.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	fileID := chi.URLParam(r, "fileID")

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}

	data, contentType, err := s.store.Export(r.Context(), fileID, format)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+fileID+`.`+format+`"`)
	w.Write(data)
}

// queryInt parses an integer query parameter with a fallback.
func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
