package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/go-chi/render"
)

type RouterDeps struct {
	Handler *Handler

	// SubmitLimit requests per SubmitWindow are allowed per client IP on the
	// submit routes. Zero disables the limit.
	SubmitLimit  int
	SubmitWindow time.Duration
}

func NewRouter(d RouterDeps) http.Handler {
	if d.Handler == nil {
		panic("server.NewRouter: nil handler")
	}

	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(HTTPLogger)
	r.Use(middleware.Recoverer)
	r.Use(SecurityHeaders)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/auth", http.StatusFound)
	})
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		render.PlainText(w, r, "ok")
	})

	r.Route("/auth", func(r chi.Router) {
		r.Get("/", d.Handler.Page)
		r.Post("/tab", d.Handler.SelectTab)
		r.Post("/strength", d.Handler.Strength)

		r.Group(func(r chi.Router) {
			if d.SubmitLimit > 0 {
				r.Use(httprate.LimitByIP(d.SubmitLimit, d.SubmitWindow))
			}
			r.Post("/{form}", d.Handler.Submit)
		})
		r.Post("/{form}/blur", d.Handler.Blur)
		r.Post("/{form}/visibility", d.Handler.ToggleVisibility)
		r.Post("/{form}/reset", d.Handler.Reset)
	})

	r.Get("/{page}", d.Handler.Shell)

	return r
}
