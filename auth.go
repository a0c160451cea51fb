package auth

import (
	"github.com/tinywasm/fmt"
)

var (
	ErrUnknownTab     = fmt.Err("tab", "not", "found")     // EN: Tab Not Found      / ES: Pestaña No Encontrado
	ErrUnknownField   = fmt.Err("field", "not", "found")   // EN: Field Not Found    / ES: Campo No Encontrado
	ErrInvalidForm    = fmt.Err("form", "invalid")         // EN: Form Invalid       / ES: Formulario Inválido
	ErrInvalidInput   = fmt.Err("input", "invalid")        // EN: Input Invalid      / ES: Entrada Inválido
	ErrInactiveTab    = fmt.Err("tab", "not", "selected")  // EN: Tab Not Selected   / ES: Pestaña No Seleccionado
	ErrSessionExpired = fmt.Err("session", "expired")      // EN: Session Expired    / ES: Sesión Expirado
	ErrNotFound       = fmt.Err("session", "not", "found") // EN: Session Not Found  / ES: Sesión No Encontrado
)

// Tab identifies one of the two forms of the auth card. The tab value doubles
// as the form name in routes and HTML ids.
type Tab string

const (
	TabLogin    Tab = "login"
	TabRegister Tab = "register"
)

// ParseTab maps a route or form value to a Tab.
func ParseTab(s string) (Tab, error) {
	switch Tab(s) {
	case TabLogin, TabRegister:
		return Tab(s), nil
	}
	return "", ErrUnknownTab
}

func (t Tab) Title() string {
	if t == TabRegister {
		return "Register"
	}
	return "Login"
}

type Config struct {
	CookieName     string // default: "auth_card"
	CardTTL        int    // seconds, default: 1800
	InsecureCookie bool   // default: false (cookie is Secure)
}

func (c Config) withDefaults() Config {
	if c.CookieName == "" {
		c.CookieName = "auth_card"
	}
	if c.CardTTL == 0 {
		c.CardTTL = 1800
	}
	return c
}
