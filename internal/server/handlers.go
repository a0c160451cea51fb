package server

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/evernight/auth"
	"github.com/evernight/auth/internal/logger"
	"github.com/evernight/auth/internal/requestid"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

const authPath = "/auth"

type Handler struct {
	store *auth.Store
}

func NewHandler(store *auth.Store) *Handler {
	return &Handler{store: store}
}

// ErrorBody is the JSON error shape of the XHR endpoints.
type ErrorBody struct {
	Error ErrorPayload `json:"error"`
}

type ErrorPayload struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// BlurResult is returned by the blur endpoint.
type BlurResult struct {
	Field   string   `json:"field"`
	Errors  []string `json:"errors"`
	Invalid bool     `json:"invalid"`
}

func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	err := h.store.With(w, r, func(c *auth.Card) error {
		return writePage(w, http.StatusOK, c)
	})
	if err != nil {
		h.fail(w, r, err)
	}
}

// Shell serves the sidebar destinations. Paths outside the sidebar are 404.
func (h *Handler) Shell(w http.ResponseWriter, r *http.Request) {
	it, ok := auth.NavRoute(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}
	var buf bytes.Buffer
	if err := auth.RenderShell(&buf, it.Title, it.URL); err != nil {
		h.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (h *Handler) SelectTab(w http.ResponseWriter, r *http.Request) {
	tab, err := auth.ParseTab(r.PostFormValue("tab"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	err = h.store.With(w, r, func(c *auth.Card) error {
		return c.SelectTab(tab)
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	http.Redirect(w, r, authPath, http.StatusSeeOther)
}

// Submit runs a form post through its module. Field rule failures and
// rejected raw input re-render the card with 422 so the inline errors and the
// error toast show.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	tab, err := formParam(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.fail(w, r, err)
		return
	}

	invalid := false
	err = h.store.With(w, r, func(c *auth.Card) error {
		err := submitForm(c, tab, r)
		var se *auth.SubmitError
		switch {
		case errors.As(err, &se):
			logger.WithCtx(r.Context()).Debug().
				Str("form", string(tab)).
				Int("fields", len(se.Fields)).
				Msg("submit rejected")
		case errors.Is(err, auth.ErrInvalidInput):
			logger.WithCtx(r.Context()).Debug().
				Str("form", string(tab)).
				Msg("submit input rejected")
		default:
			return err
		}
		invalid = true
		return writePage(w, http.StatusUnprocessableEntity, c)
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if !invalid {
		http.Redirect(w, r, authPath, http.StatusSeeOther)
	}
}

func (h *Handler) Blur(w http.ResponseWriter, r *http.Request) {
	tab, err := formParam(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	name := r.PostFormValue("field")

	var res BlurResult
	err = h.store.With(w, r, func(c *auth.Card) error {
		if err := applyValues(c, tab, r); err != nil {
			return err
		}
		if err := c.Blur(tab, name); err != nil {
			return err
		}
		f, err := c.Field(tab, name)
		if err != nil {
			return err
		}
		res = BlurResult{Field: f.Name, Errors: f.Errors, Invalid: f.Invalid()}
		if res.Errors == nil {
			res.Errors = []string{}
		}
		return nil
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	render.JSON(w, r, res)
}

func (h *Handler) ToggleVisibility(w http.ResponseWriter, r *http.Request) {
	tab, err := formParam(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	err = h.store.With(w, r, func(c *auth.Card) error {
		if err := applyValues(c, tab, r); err != nil {
			return err
		}
		return c.ToggleVisibility(tab, r.PostFormValue("field"))
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	http.Redirect(w, r, authPath, http.StatusSeeOther)
}

func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	tab, err := formParam(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	err = h.store.With(w, r, func(c *auth.Card) error {
		return c.Reset(tab)
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	http.Redirect(w, r, authPath, http.StatusSeeOther)
}

// Strength scores a password for the live meter. It does not touch the
// visitor's card.
func (h *Handler) Strength(w http.ResponseWriter, r *http.Request) {
	s := auth.Score(r.PostFormValue("password"))
	render.JSON(w, r, auth.NewStrengthView(s))
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, code := http.StatusInternalServerError, "INTERNAL"
	switch {
	case errors.Is(err, auth.ErrUnknownTab):
		status, code = http.StatusNotFound, "UNKNOWN_FORM"
	case errors.Is(err, auth.ErrUnknownField):
		status, code = http.StatusBadRequest, "UNKNOWN_FIELD"
	case errors.Is(err, auth.ErrInactiveTab):
		status, code = http.StatusConflict, "INACTIVE_FORM"
	case errors.Is(err, auth.ErrInvalidForm):
		status, code = http.StatusUnprocessableEntity, "INVALID_FORM"
	}

	l := logger.WithCtx(r.Context())
	if status >= http.StatusInternalServerError {
		l.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	} else {
		l.Debug().Err(err).Str("path", r.URL.Path).Msg("request rejected")
	}

	render.Status(r, status)
	render.JSON(w, r, ErrorBody{Error: ErrorPayload{
		Code:      code,
		Message:   err.Error(),
		RequestID: requestid.GetRequestID(r.Context()),
	}})
}

// submitForm hands the posted values of tab to its module's Create, bound to
// the visitor's card.
func submitForm(c *auth.Card, tab auth.Tab, r *http.Request) error {
	var err error
	switch tab {
	case auth.TabLogin:
		_, err = auth.LoginModule.Create(&auth.LoginData{
			Email:    r.PostFormValue(auth.FieldEmail),
			Password: r.PostFormValue(auth.FieldPassword),
		}, c)
	case auth.TabRegister:
		_, err = auth.RegisterModule.Create(&auth.RegisterData{
			Email:           r.PostFormValue(auth.FieldEmail),
			Password:        r.PostFormValue(auth.FieldPassword),
			ConfirmPassword: r.PostFormValue(auth.FieldConfirmPassword),
		}, c)
	default:
		err = auth.ErrUnknownTab
	}
	return err
}

func formParam(r *http.Request) (auth.Tab, error) {
	return auth.ParseTab(chi.URLParam(r, "form"))
}

// applyValues copies the posted values of tab's fields into the card. Fields
// absent from the post keep their value.
func applyValues(c *auth.Card, tab auth.Tab, r *http.Request) error {
	if err := r.ParseForm(); err != nil {
		return err
	}
	for _, f := range c.Fields(tab) {
		vals, ok := r.PostForm[f.Name]
		if !ok || len(vals) == 0 {
			continue
		}
		if err := c.Change(tab, f.Name, vals[0]); err != nil {
			return err
		}
	}
	return nil
}

func writePage(w http.ResponseWriter, status int, c *auth.Card) error {
	var buf bytes.Buffer
	if err := auth.RenderPage(&buf, c, authPath); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
