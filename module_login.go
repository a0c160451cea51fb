package auth

import (
	"github.com/tinywasm/fmt"
	"github.com/tinywasm/form"
)

type loginModule struct {
	form *form.Form
}

func (m *loginModule) HandlerName() string { return string(TabLogin) }
func (m *loginModule) ModuleTitle() string { return TabLogin.Title() }

// ValidateData screens the raw login values. It runs before the card applies
// its field rules.
func (m *loginModule) ValidateData(action byte, data fmt.Fielder) error {
	return m.form.ValidateData(action, data)
}
