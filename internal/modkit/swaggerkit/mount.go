// Package swaggerkit mounts the Swagger UI and serves the OpenAPI document
package swaggerkit

import (
	"encoding/json"
	"net/http"

	"airwatch/internal/modkit/httpkit"
	phttp "airwatch/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Mount serves the UI under /docs/ and the OpenAPI document at /docs/doc.json when enabled
func Mount(r phttp.Router, enabled bool) {
	if !enabled {
		return
	}
	r.Get("/docs", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/docs/", http.StatusPermanentRedirect)
	})
	r.Get("/docs/doc.json", serveDocJSON())
	r.Handle("/docs/*", httpSwagger.Handler(httpSwagger.URL("/docs/doc.json")))
}

// serveDocJSON parses the generated document, applies the shared tweaks and serves it
func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var spec map[string]any
		if err := json.Unmarshal([]byte(docReader()), &spec); err != nil {
			http.Error(w, "spec parse error", http.StatusInternalServerError)
			return
		}
		Decorate(spec, httpkit.APIV1)

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(spec)
	}
}
