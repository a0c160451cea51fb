//go:build !wasm

package auth

import "github.com/tinywasm/fmt"

const rejectedInputMessage = "Some values could not be accepted."

func (m *loginModule) RenderHTML() string {
	return renderCardHTML(NewCard())
}

// Create submits a *LoginData. An optional *Card as second argument receives
// the submission; otherwise a fresh card is used. The result is the success
// Notification.
func (m *loginModule) Create(data ...any) (any, error) {
	if len(data) == 0 {
		return nil, ErrInvalidForm
	}
	d, ok := data[0].(*LoginData)
	if !ok || d == nil {
		return nil, ErrInvalidForm
	}
	c, err := submitTarget(TabLogin, data[1:])
	if err != nil {
		return nil, err
	}
	return submitCard(c, TabLogin, m.ValidateData, d)
}

// submitTarget returns the card passed to Create, or a fresh one showing tab.
func submitTarget(tab Tab, rest []any) (*Card, error) {
	if len(rest) > 0 {
		if c, ok := rest[0].(*Card); ok && c != nil {
			return c, nil
		}
		return nil, ErrInvalidForm
	}
	c := NewCard()
	if err := c.SelectTab(tab); err != nil {
		return nil, err
	}
	return c, nil
}

// submitCard screens d through the module form, copies its values into the
// card and submits tab. A rejected value leaves the card untouched apart from
// an error notification.
func submitCard(c *Card, tab Tab, validate func(byte, fmt.Fielder) error, d fmt.Fielder) (any, error) {
	if c.Tab() != tab {
		return nil, ErrInactiveTab
	}
	if err := validate(crudCreate, d); err != nil {
		c.log.Debug().Err(err).Str("form", string(tab)).Msg("submitted input rejected")
		c.notify(NotifyError, rejectedInputMessage)
		return nil, ErrInvalidInput
	}

	schema := d.Schema()
	for i, v := range fmt.ReadValues(schema, d.Pointers()) {
		s, _ := v.(string)
		if err := c.Change(tab, schema[i].Name, s); err != nil {
			return nil, err
		}
	}
	if err := c.Submit(tab); err != nil {
		return nil, err
	}
	notes := c.Notifications()
	return notes[len(notes)-1], nil
}

func renderCardHTML(c *Card) string {
	out, err := renderFragment("card", newCardView(c))
	if err != nil {
		return ""
	}
	return out
}
