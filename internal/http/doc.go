// Package http provides optional HTTP adapters for the content admin API.
//
// Routes mount under the configured route prefix (default /admin/content):
//   - Content entries: /content, /content/{id}, /content/page/{pageID},
//     /content/pages
//   - Pages: /pages, /pages/{identifier}, /pages/export, /pages/import
//
// Host applications can register handlers on their own mux/router as needed.
package http
