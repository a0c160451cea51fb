package auth

import (
	"github.com/tinywasm/fmt"
	"github.com/tinywasm/form"
)

type registerModule struct {
	form *form.Form
}

func (m *registerModule) HandlerName() string { return string(TabRegister) }
func (m *registerModule) ModuleTitle() string { return TabRegister.Title() }

func (m *registerModule) ValidateData(action byte, data fmt.Fielder) error {
	return m.form.ValidateData(action, data)
}
