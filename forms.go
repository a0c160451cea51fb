package auth

import "github.com/tinywasm/fmt"

const (
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"

	PasswordMinLength = 8
	PasswordMaxLength = 256
)

// LoginData is validated by LoginModule on both frontend and backend.
type LoginData struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"min=8,max=256"`
}

// RegisterData is validated by RegisterModule. ConfirmPassword must match
// Password.
type RegisterData struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"min=8,max=256"`
	ConfirmPassword string `json:"confirmPassword" validate:"min=8,max=256,eqfield=Password"`
}

func (d *LoginData) Schema() []fmt.Field {
	return []fmt.Field{
		postedField(FieldEmail),
		postedField(FieldPassword),
	}
}

func (d *LoginData) Pointers() []any  { return []any{&d.Email, &d.Password} }
func (d *LoginData) FormName() string { return string(TabLogin) }

func (d *RegisterData) Schema() []fmt.Field {
	return []fmt.Field{
		postedField(FieldEmail),
		postedField(FieldPassword),
		postedField(FieldConfirmPassword),
	}
}

func (d *RegisterData) Pointers() []any {
	return []any{&d.Email, &d.Password, &d.ConfirmPassword}
}

func (d *RegisterData) FormName() string { return string(TabRegister) }

func postedField(name string) fmt.Field {
	return fmt.Field{Name: name, Type: fmt.FieldText, Input: postedInputType, JSON: name}
}

// formFields lists the fields of each form in display order.
var formFields = map[Tab][]string{
	TabLogin:    {FieldEmail, FieldPassword},
	TabRegister: {FieldEmail, FieldPassword, FieldConfirmPassword},
}

func isPasswordField(name string) bool {
	return name == FieldPassword || name == FieldConfirmPassword
}

func hasField(tab Tab, name string) bool {
	for _, f := range formFields[tab] {
		if f == name {
			return true
		}
	}
	return false
}
