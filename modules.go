package auth

import (
	"github.com/tinywasm/fmt"
	_ "github.com/tinywasm/fmt/dictionary"
	"github.com/tinywasm/form"
)

// crudCreate is the action byte passed to ValidateData on submit.
const crudCreate byte = 'c'

var (
	LoginModule    *loginModule
	RegisterModule *registerModule
	NavModule      *navModule
)

func init() {
	form.RegisterInput(newPostedInput("", ""))

	LoginModule = &loginModule{form: mustForm(string(TabLogin), &LoginData{})}
	RegisterModule = &registerModule{form: mustForm(string(TabRegister), &RegisterData{})}
	NavModule = &navModule{}
}

func mustForm(parentID string, data fmt.Fielder) *form.Form {
	f, err := form.New(parentID, data)
	if err != nil {
		panic("auth: mustForm: " + err.Error())
	}
	return f
}
