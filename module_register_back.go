//go:build !wasm

package auth

func (m *registerModule) RenderHTML() string {
	c := NewCard()
	if err := c.SelectTab(TabRegister); err != nil {
		return ""
	}
	return renderCardHTML(c)
}

// Create is loginModule.Create for a *RegisterData.
func (m *registerModule) Create(data ...any) (any, error) {
	if len(data) == 0 {
		return nil, ErrInvalidForm
	}
	d, ok := data[0].(*RegisterData)
	if !ok || d == nil {
		return nil, ErrInvalidForm
	}
	c, err := submitTarget(TabRegister, data[1:])
	if err != nil {
		return nil, err
	}
	return submitCard(c, TabRegister, m.ValidateData, d)
}
