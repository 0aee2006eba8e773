package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/goliatone/go-page-content/content"
	"github.com/goliatone/go-page-content/internal/validation"
	"github.com/goliatone/go-page-content/pages"
	"github.com/google/uuid"
)

type errorResponse struct {
	Error          string                       `json:"error"`
	Message        string                       `json:"message,omitempty"`
	CurrentVersion *int                         `json:"current_version,omitempty"`
	Issues         []validation.ValidationIssue `json:"issues,omitempty"`
}

func joinPath(base, suffix string) string {
	trimmedBase := strings.TrimSpace(base)
	trimmedSuffix := strings.TrimSpace(suffix)
	if trimmedBase == "" {
		if trimmedSuffix == "" {
			return "/"
		}
		return "/" + strings.Trim(trimmedSuffix, "/")
	}
	baseClean := "/" + strings.Trim(trimmedBase, "/")
	if trimmedSuffix == "" {
		return baseClean
	}
	return baseClean + "/" + strings.Trim(trimmedSuffix, "/")
}

func decodeJSON(r *http.Request, target any) error {
	if r == nil || r.Body == nil {
		return io.EOF
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	if err := decoder.Decode(target); err != nil {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	status, payload := mapError(err)
	writeJSON(w, status, payload)
}

func mapError(err error) (int, errorResponse) {
	if err == nil {
		return http.StatusInternalServerError, errorResponse{Error: "unknown_error"}
	}

	var versionConflict *pages.VersionConflictError
	if errors.As(err, &versionConflict) {
		current := versionConflict.CurrentVersion
		return http.StatusConflict, errorResponse{
			Error:          "version_conflict",
			Message:        versionConflict.Error(),
			CurrentVersion: &current,
		}
	}

	var contentNotFound *content.NotFoundError
	if errors.As(err, &contentNotFound) {
		return http.StatusNotFound, errorResponse{
			Error:   "not_found",
			Message: contentNotFound.Error(),
		}
	}

	var pageNotFound *pages.NotFoundError
	if errors.As(err, &pageNotFound) {
		return http.StatusNotFound, errorResponse{
			Error:   "not_found",
			Message: pageNotFound.Error(),
		}
	}

	if errors.Is(err, pages.ErrNameExists) {
		return http.StatusConflict, errorResponse{
			Error:   "conflict",
			Message: err.Error(),
		}
	}

	if errors.Is(err, validation.ErrSchemaValidation) {
		return http.StatusUnprocessableEntity, errorResponse{
			Error:   "validation_failed",
			Message: err.Error(),
			Issues:  validation.Issues(err),
		}
	}

	if errors.Is(err, content.ErrPageIDInvalid) ||
		errors.Is(err, content.ErrElementRequired) ||
		errors.Is(err, content.ErrLocaleRequired) ||
		errors.Is(err, content.ErrLocaleInvalid) ||
		errors.Is(err, content.ErrLocaleUnknown) ||
		errors.Is(err, content.ErrTypeNotAllowed) ||
		errors.Is(err, content.ErrEntryIDRequired) ||
		errors.Is(err, pages.ErrNameRequired) ||
		errors.Is(err, pages.ErrNameInvalid) ||
		errors.Is(err, pages.ErrDisplayNameRequired) ||
		errors.Is(err, pages.ErrTypeInvalid) ||
		errors.Is(err, pages.ErrLocaleInvalid) ||
		errors.Is(err, pages.ErrIdentifierRequired) ||
		errors.Is(err, pages.ErrVersionInvalid) ||
		errors.Is(err, pages.ErrNoPages) {
		return http.StatusUnprocessableEntity, errorResponse{
			Error:   "validation_failed",
			Message: err.Error(),
		}
	}

	return http.StatusInternalServerError, errorResponse{
		Error:   "internal_error",
		Message: err.Error(),
	}
}

func parseUUID(value string) (uuid.UUID, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return uuid.Nil, errors.New("uuid required")
	}
	parsed, err := uuid.Parse(trimmed)
	if err != nil {
		return uuid.Nil, err
	}
	return parsed, nil
}

func parseIntQuery(value string, defaultValue int) int {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(trimmed)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func parseBoolQuery(value string, defaultValue bool) bool {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(trimmed)
	if err != nil {
		return defaultValue
	}
	return parsed
}
