package http

import (
	"net/http"

	"github.com/MKhiriev/fast-home/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withGZip)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	router.Get("/", h.landing)

	router.Route("/api", func(r chi.Router) {
		// routes without authorization
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.register)
			r.Post("/login", h.login)
			r.Post("/forgot", h.forgot)
			r.Get("/verify/{token}", h.verify)
			r.Post("/reset/{token}", h.reset)
		})
		r.Get("/properties", h.listProperties)
		r.Get("/property/{id}", h.getProperty)
		r.Get("/profile/{id}", h.getUserDetails)
		r.Get("/catalogs", h.getCatalogs)
		r.Get("/version", h.getServerVersion)

		// routes with authorization
		r.Group(func(r chi.Router) {
			r.Use(h.auth)
			r.Post("/property", h.createProperty)
			r.Put("/property/{id}", h.updateProperty)
			r.Delete("/property/{id}", h.deleteProperty)
			r.Post("/property/{id}/images", h.addPhotos)
			r.Get("/profile/properties", h.listOwnProperties)
		})
	})

	if h.photosDir != "" {
		files := http.StripPrefix(store.LocalPhotosPath, http.FileServer(http.Dir(h.photosDir)))
		router.Handle(store.LocalPhotosPath+"/*", files)
	}

	// Unsupported methods on known paths answer 404, like unknown paths.
	router.MethodNotAllowed(http.NotFound)

	return router
}
