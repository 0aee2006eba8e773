package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-page-content/internal/content"
	"github.com/goliatone/go-page-content/internal/pages"
	"github.com/goliatone/go-page-content/pkg/interfaces"
)

// AdminAPI registers editor endpoints for page content entries and
// versioned pages.
type AdminAPI struct {
	basePath string
	content  content.Service
	pages    pages.Service
	logger   interfaces.Logger
}

// AdminOption mutates the AdminAPI configuration.
type AdminOption func(*AdminAPI)

// NewAdminAPI constructs an AdminAPI instance.
func NewAdminAPI(opts ...AdminOption) *AdminAPI {
	api := &AdminAPI{
		basePath: "/admin/content",
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	return api
}

// WithBasePath overrides the base API path (defaults to "/admin/content").
func WithBasePath(path string) AdminOption {
	return func(api *AdminAPI) {
		if api == nil {
			return
		}
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			api.basePath = trimmed
		}
	}
}

// WithContentService wires the page content entry service.
func WithContentService(service content.Service) AdminOption {
	return func(api *AdminAPI) {
		if api != nil {
			api.content = service
		}
	}
}

// WithPageService wires the versioned page service.
func WithPageService(service pages.Service) AdminOption {
	return func(api *AdminAPI) {
		if api != nil {
			api.pages = service
		}
	}
}

// WithLogger sets the request logger.
func WithLogger(logger interfaces.Logger) AdminOption {
	return func(api *AdminAPI) {
		if api != nil && logger != nil {
			api.logger = logger
		}
	}
}

// Register attaches the admin endpoints to the provided mux.
func (api *AdminAPI) Register(mux *http.ServeMux) error {
	if mux == nil {
		return fmt.Errorf("http: mux is required")
	}
	if api == nil {
		return fmt.Errorf("http: admin api is nil")
	}

	base := joinPath(api.basePath, "")

	api.registerContentRoutes(mux, base)
	api.registerPageRoutes(mux, base)

	return nil
}
