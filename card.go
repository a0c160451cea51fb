package auth

import (
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Field is the state of one form input.
type Field struct {
	Name    string
	Value   string
	Touched bool
	Errors  []string
}

// Invalid reports whether the field should be shown as invalid: only once the
// user has left it or tried to submit.
func (f Field) Invalid() bool {
	return f.Touched && len(f.Errors) > 0
}

type formState struct {
	fields  map[string]*Field
	visible map[string]bool
}

func newFormState(tab Tab) *formState {
	fs := &formState{
		fields:  make(map[string]*Field),
		visible: make(map[string]bool),
	}
	for _, name := range formFields[tab] {
		fs.fields[name] = &Field{Name: name}
	}
	return fs
}

func (fs *formState) values() map[string]string {
	out := make(map[string]string, len(fs.fields))
	for name, f := range fs.fields {
		out[name] = f.Value
	}
	return out
}

func (fs *formState) reset() {
	for _, f := range fs.fields {
		*f = Field{Name: f.Name}
	}
	fs.hideAll()
}

func (fs *formState) hideAll() {
	for k := range fs.visible {
		delete(fs.visible, k)
	}
}

// applyAll marks every field touched and replaces its errors.
func (fs *formState) applyAll(errs FieldErrors) {
	for name, f := range fs.fields {
		f.Touched = true
		f.Errors = errs.Get(name)
	}
}

// Card holds the UI state of the login/register card for one visitor. A Card
// is not safe for concurrent use.
type Card struct {
	tab      Tab
	forms    map[Tab]*formState
	password string // register password, mirrored for the strength meter
	notes    []Notification
	log      zerolog.Logger
}

// NewCard returns a card showing the login tab with empty forms.
func NewCard() *Card {
	return &Card{
		tab: TabLogin,
		forms: map[Tab]*formState{
			TabLogin:    newFormState(TabLogin),
			TabRegister: newFormState(TabRegister),
		},
		log: log.Logger,
	}
}

// WithLogger sets the logger used for submit traces.
func (c *Card) WithLogger(l zerolog.Logger) *Card {
	c.log = l
	return c
}

func (c *Card) Tab() Tab { return c.tab }

// SelectTab switches the card to tab. The form being switched to keeps its
// state; the other one is cleared together with every visibility toggle, and
// the strength mirror is resynced from the register password.
func (c *Card) SelectTab(tab Tab) error {
	if _, err := ParseTab(string(tab)); err != nil {
		return err
	}
	if tab == c.tab {
		return nil
	}
	c.tab = tab
	for t, fs := range c.forms {
		if t != tab {
			fs.reset()
		}
		fs.hideAll()
	}
	c.password = c.forms[TabRegister].fields[FieldPassword].Value
	return nil
}

func (c *Card) form(tab Tab) (*formState, error) {
	fs, ok := c.forms[tab]
	if !ok {
		return nil, ErrUnknownTab
	}
	return fs, nil
}

func (c *Card) field(tab Tab, name string) (*formState, *Field, error) {
	fs, err := c.form(tab)
	if err != nil {
		return nil, nil, err
	}
	f, ok := fs.fields[name]
	if !ok {
		return nil, nil, ErrUnknownField
	}
	return fs, f, nil
}

// activeField is field for edits: only the selected tab takes input.
func (c *Card) activeField(tab Tab, name string) (*formState, *Field, error) {
	fs, f, err := c.field(tab, name)
	if err != nil {
		return nil, nil, err
	}
	if tab != c.tab {
		return nil, nil, ErrInactiveTab
	}
	return fs, f, nil
}

// Field returns a copy of the named field's state.
func (c *Card) Field(tab Tab, name string) (Field, error) {
	_, f, err := c.field(tab, name)
	if err != nil {
		return Field{}, err
	}
	out := *f
	out.Errors = append([]string(nil), f.Errors...)
	return out, nil
}

// Fields returns the fields of tab in display order.
func (c *Card) Fields(tab Tab) []Field {
	out := make([]Field, 0, len(formFields[tab]))
	for _, name := range formFields[tab] {
		f, err := c.Field(tab, name)
		if err != nil {
			continue
		}
		out = append(out, f)
	}
	return out
}

// Change records a keystroke. Fields already showing errors are revalidated
// so the message disappears as soon as the input is fixed.
func (c *Card) Change(tab Tab, name, value string) error {
	fs, f, err := c.activeField(tab, name)
	if err != nil {
		return err
	}
	f.Value = value
	if tab == TabRegister && name == FieldPassword {
		c.password = value
	}

	for _, other := range fs.fields {
		if len(other.Errors) == 0 {
			continue
		}
		if other.Name != name && !(name == FieldPassword && other.Name == FieldConfirmPassword) {
			continue
		}
		other.Errors = fieldErrors(tab, other.Name, fs.values())
	}
	return nil
}

// Blur marks the field touched and validates it.
func (c *Card) Blur(tab Tab, name string) error {
	fs, f, err := c.activeField(tab, name)
	if err != nil {
		return err
	}
	f.Touched = true
	f.Errors = fieldErrors(tab, name, fs.values())
	return nil
}

// ToggleVisibility flips whether a password field is shown in clear text.
func (c *Card) ToggleVisibility(tab Tab, name string) error {
	fs, _, err := c.activeField(tab, name)
	if err != nil {
		return err
	}
	if !isPasswordField(name) {
		return ErrUnknownField
	}
	fs.visible[name] = !fs.visible[name]
	return nil
}

// Visible reports the visibility toggle of a password field.
func (c *Card) Visible(tab Tab, name string) bool {
	fs, err := c.form(tab)
	if err != nil {
		return false
	}
	return fs.visible[name]
}

// Reset clears the values, validation state and visibility toggles of tab.
func (c *Card) Reset(tab Tab) error {
	fs, err := c.form(tab)
	if err != nil {
		return err
	}
	fs.reset()
	if tab == TabRegister {
		c.password = ""
	}
	return nil
}

// Password returns the mirrored register password.
func (c *Card) Password() string { return c.password }

// Strength scores the mirrored register password.
func (c *Card) Strength() Strength { return Score(c.password) }

// SubmitLogin validates the login form. On failure every field is marked
// touched and a *SubmitError is returned. On success the login visibility
// toggles are reset and a success notification is queued. Values are kept.
func (c *Card) SubmitLogin() (LoginData, error) {
	if c.tab != TabLogin {
		return LoginData{}, ErrInactiveTab
	}
	fs := c.forms[TabLogin]
	v := fs.values()
	d := LoginData{Email: v[FieldEmail], Password: v[FieldPassword]}

	errs := ValidateLogin(d)
	fs.applyAll(errs)
	if len(errs) > 0 {
		return LoginData{}, &SubmitError{Tab: TabLogin, Fields: errs}
	}

	fs.hideAll()
	c.notify(NotifySuccess, "Login successful!")
	c.trace(TabLogin, d.Email, d.Password)
	return d, nil
}

// SubmitRegister is SubmitLogin for the register form.
func (c *Card) SubmitRegister() (RegisterData, error) {
	if c.tab != TabRegister {
		return RegisterData{}, ErrInactiveTab
	}
	fs := c.forms[TabRegister]
	v := fs.values()
	d := RegisterData{
		Email:           v[FieldEmail],
		Password:        v[FieldPassword],
		ConfirmPassword: v[FieldConfirmPassword],
	}

	errs := ValidateRegister(d)
	fs.applyAll(errs)
	if len(errs) > 0 {
		return RegisterData{}, &SubmitError{Tab: TabRegister, Fields: errs}
	}

	fs.hideAll()
	c.notify(NotifySuccess, "Registration successful!")
	c.trace(TabRegister, d.Email, d.Password)
	return d, nil
}

// Submit dispatches to SubmitLogin or SubmitRegister.
func (c *Card) Submit(tab Tab) error {
	var err error
	switch tab {
	case TabLogin:
		_, err = c.SubmitLogin()
	case TabRegister:
		_, err = c.SubmitRegister()
	default:
		err = ErrUnknownTab
	}
	return err
}

// trace logs a submitted form. The password itself is never written.
func (c *Card) trace(tab Tab, email, password string) {
	c.log.Info().
		Str("form", string(tab)).
		Str("email", email).
		Int("password_len", utf8.RuneCountInString(password)).
		Int("strength", Score(password).Score).
		Msg("form submitted")
}

func (c *Card) notify(kind NotificationKind, msg string) {
	c.notes = append(c.notes, Notification{Kind: kind, Message: msg})
}

// Notifications returns the pending notifications without consuming them.
func (c *Card) Notifications() []Notification {
	return append([]Notification(nil), c.notes...)
}

// DrainNotifications returns and clears the pending notifications.
func (c *Card) DrainNotifications() []Notification {
	out := c.notes
	c.notes = nil
	return out
}

// SubmitError is returned when a submitted form fails validation.
type SubmitError struct {
	Tab    Tab
	Fields FieldErrors
}

func (e *SubmitError) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Tab))
	b.WriteString(": invalid form")
	for _, name := range formFields[e.Tab] {
		for _, msg := range e.Fields.Get(name) {
			b.WriteString("; ")
			b.WriteString(name)
			b.WriteString(": ")
			b.WriteString(msg)
		}
	}
	return b.String()
}

func (e *SubmitError) Unwrap() error { return ErrInvalidForm }
