package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/goliatone/go-page-content/internal/content"
)

type contentUpsertPayload struct {
	PageID    string  `json:"page_id"`
	ElementID string  `json:"element_id"`
	Locale    string  `json:"locale,omitempty"`
	Type      string  `json:"type,omitempty"`
	Value     *string `json:"value,omitempty"`
}

type contentPageResponse struct {
	PageID   string           `json:"page_id"`
	Locale   string           `json:"locale,omitempty"`
	Contents []*content.Entry `json:"contents"`
}

type contentUpsertResponse struct {
	Success bool           `json:"success"`
	Content *content.Entry `json:"content"`
}

type successResponse struct {
	Success bool `json:"success"`
}

type contentDeletePageResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Removed int      `json:"removed"`
	Locales []string `json:"locales,omitempty"`
}

func (api *AdminAPI) registerContentRoutes(mux *http.ServeMux, base string) {
	if mux == nil {
		return
	}
	root := joinPath(base, "content")
	mux.HandleFunc("GET "+root+"/pages", api.handleContentPages)
	mux.HandleFunc("GET "+root+"/page/{pageID...}", api.handleContentPage)
	mux.HandleFunc("POST "+root, api.handleContentUpsert)
	mux.HandleFunc("DELETE "+root+"/{id}", api.handleContentDelete)
	mux.HandleFunc("DELETE "+root+"/page/{pageID...}", api.handleContentDeletePage)
}

func (api *AdminAPI) handleContentPages(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.content == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	summaries, err := api.content.PageSummaries(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (api *AdminAPI) handleContentPage(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.content == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	pageID := r.PathValue("pageID")
	locale := r.URL.Query().Get("locale")
	entries, err := api.content.PageContent(r.Context(), pageID, locale)
	if err != nil {
		writeError(w, err)
		return
	}
	if entries == nil {
		entries = []*content.Entry{}
	}
	writeJSON(w, http.StatusOK, contentPageResponse{
		PageID:   pageID,
		Locale:   locale,
		Contents: entries,
	})
}

func (api *AdminAPI) handleContentUpsert(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.content == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	var payload contentUpsertPayload
	if err := decodeJSON(r, &payload); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}
	req := content.UpsertRequest{
		PageID:    payload.PageID,
		ElementID: payload.ElementID,
		Locale:    payload.Locale,
		Type:      payload.Type,
		Value:     payload.Value,
	}
	entry, err := api.content.Upsert(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contentUpsertResponse{Success: true, Content: entry})
}

func (api *AdminAPI) handleContentDelete(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.content == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}
	if err := api.content.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

func (api *AdminAPI) handleContentDeletePage(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.content == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	pageID := r.PathValue("pageID")
	result, err := api.content.DeletePage(r.Context(), pageID)
	if err != nil {
		writeError(w, err)
		return
	}
	// Zero-effect deletes succeed at the service level but the editor UI
	// expects a 404 for a page that had no rows.
	if result.Removed == 0 {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not_found", Message: "no content found for page"})
		return
	}
	writeJSON(w, http.StatusOK, contentDeletePageResponse{
		Success: true,
		Message: fmt.Sprintf("removed %d content entries", result.Removed),
		Removed: result.Removed,
		Locales: result.Locales,
	})
}
