package http

import (
	stdhttp "net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

// MountSwagger serves the swagger UI and doc.json under /docs when enabled
// The document is whatever is registered with swag under its default name
func MountSwagger(r Router, enabled bool) {
	if !enabled {
		return
	}
	r.Get("/docs", func(w stdhttp.ResponseWriter, req *stdhttp.Request) {
		stdhttp.Redirect(w, req, "/docs/index.html", stdhttp.StatusPermanentRedirect)
	})
	r.Handle("/docs/*", httpSwagger.Handler(httpSwagger.URL("/docs/doc.json")))
}
