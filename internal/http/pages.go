package http

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/goliatone/go-page-content/internal/pages"
)

type pageCreatePayload struct {
	Name        string       `json:"name"`
	DisplayName string       `json:"display_name"`
	Type        string       `json:"type,omitempty"`
	Locale      *string      `json:"locale,omitempty"`
	Value       *pages.Value `json:"value,omitempty"`
}

type pageUpdatePayload struct {
	Name            *string      `json:"name,omitempty"`
	DisplayName     *string      `json:"display_name,omitempty"`
	Type            *string      `json:"type,omitempty"`
	Locale          *string      `json:"locale,omitempty"`
	Value           *pages.Value `json:"value,omitempty"`
	ExpectedVersion *int         `json:"expected_version,omitempty"`
}

type pagesImportPayload struct {
	Pages []pages.ImportPage `json:"pages"`
}

func (api *AdminAPI) registerPageRoutes(mux *http.ServeMux, base string) {
	if mux == nil {
		return
	}
	root := joinPath(base, "pages")
	mux.HandleFunc("GET "+root, api.handlePageList)
	mux.HandleFunc("POST "+root, api.handlePageCreate)
	mux.HandleFunc("GET "+root+"/export", api.handlePageExport)
	mux.HandleFunc("POST "+root+"/import", api.handlePageImport)
	mux.HandleFunc("GET "+root+"/{identifier...}", api.handlePageGet)
	mux.HandleFunc("PUT "+root+"/{identifier...}", api.handlePageUpdate)
	mux.HandleFunc("PATCH "+root+"/{identifier...}", api.handlePageUpdate)
	mux.HandleFunc("DELETE "+root+"/{identifier...}", api.handlePageDelete)
}

func (api *AdminAPI) handlePageList(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.pages == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	query := r.URL.Query()
	req := pages.ListRequest{
		Type:    query.Get("type"),
		Locale:  query.Get("locale"),
		Search:  query.Get("search"),
		Sort:    query.Get("sort"),
		Desc:    strings.EqualFold(query.Get("order"), "desc"),
		Page:    parseIntQuery(query.Get("page"), 1),
		PerPage: parseIntQuery(query.Get("per_page"), 0),
	}
	result, err := api.pages.List(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (api *AdminAPI) handlePageCreate(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.pages == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	var payload pageCreatePayload
	if err := decodeJSON(r, &payload); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}
	req := pages.CreateRequest{
		Name:        payload.Name,
		DisplayName: payload.DisplayName,
		Type:        payload.Type,
		Locale:      payload.Locale,
		Value:       payload.Value,
	}
	created, err := api.pages.Create(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (api *AdminAPI) handlePageGet(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.pages == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	identifier := r.PathValue("identifier")
	locale := r.URL.Query().Get("locale")
	var (
		page *pages.Page
		err  error
	)
	if locale != "" {
		page, err = api.pages.GetByName(r.Context(), identifier, locale)
	} else {
		page, err = api.pages.Get(r.Context(), identifier)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (api *AdminAPI) handlePageUpdate(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.pages == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	var payload pageUpdatePayload
	if err := decodeJSON(r, &payload); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}
	req := pages.UpdateRequest{
		Identifier:      r.PathValue("identifier"),
		Name:            payload.Name,
		DisplayName:     payload.DisplayName,
		Type:            payload.Type,
		Locale:          payload.Locale,
		Value:           payload.Value,
		ExpectedVersion: payload.ExpectedVersion,
	}
	updated, err := api.pages.Update(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (api *AdminAPI) handlePageDelete(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.pages == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if err := api.pages.Delete(r.Context(), r.PathValue("identifier")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (api *AdminAPI) handlePageExport(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.pages == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	query := r.URL.Query()
	req := pages.ExportRequest{
		Type:   query.Get("type"),
		Locale: query.Get("locale"),
	}
	result, err := api.pages.Export(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (api *AdminAPI) handlePageImport(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.pages == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	var payload pagesImportPayload
	if err := decodeJSON(r, &payload); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}
	result, err := api.pages.Import(r.Context(), pages.ImportRequest{Pages: payload.Pages})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
