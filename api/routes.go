package api

import (
	"io/fs"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// setupPageRoutes registers the public pages. Trailing slashes are stripped before routing,
// so /posts/{slug}/ and /posts/{slug} reach the same handler.
func setupPageRoutes(r chi.Router, handlers *routeHandlers) {
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Get("/", handlers.pageHandler.home())
		r.Get("/posts/{slug}", handlers.pageHandler.postDetail())
		r.Get("/tags/{tagTitle}", handlers.pageHandler.tagFilter())
		r.Get("/contacts", handlers.pageHandler.contacts())
	})

	r.NotFound(handlers.pageHandler.notFound())
}

func setupServiceRoutes(r chi.Router, handlers *routeHandlers) {
	r.Get("/healthz", handlers.healthHandler.healthz())
	r.Handle("/metrics", promhttp.Handler())
}

// setupMediaRoutes serves uploaded images when the media URL is a local path.
func setupMediaRoutes(r chi.Router, mediaURL, mediaDir string) {
	if !strings.HasPrefix(mediaURL, "/") || mediaDir == "" {
		return
	}
	prefix := strings.TrimSuffix(mediaURL, "/") + "/"
	r.Handle(prefix+"*", http.StripPrefix(prefix, http.FileServer(fileOnlyFS{http.Dir(mediaDir)})))
}

// fileOnlyFS hides directories so the media route never renders a listing.
type fileOnlyFS struct {
	fs http.FileSystem
}

func (f fileOnlyFS) Open(name string) (http.File, error) {
	file, err := f.fs.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, err
	}
	if info.IsDir() {
		_ = file.Close()
		return nil, fs.ErrNotExist
	}
	return file, nil
}
