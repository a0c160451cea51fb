//go:build !wasm

package auth

import (
	"bytes"
	"embed"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTmpl = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type fieldMeta struct {
	Label        string
	Placeholder  string
	AutoComplete string
}

var fieldMetas = map[Tab]map[string]fieldMeta{
	TabLogin: {
		FieldEmail:    {"Email", "Please enter your email address", "email"},
		FieldPassword: {"Password", "Please enter your password", "current-password"},
	},
	TabRegister: {
		FieldEmail:           {"Email", "Please enter your email address", "email"},
		FieldPassword:        {"Password", "Please enter your password", "new-password"},
		FieldConfirmPassword: {"Confirm Password", "Please confirm your password", "new-password"},
	},
}

type pageView struct {
	Title         string
	Logo          string
	NavLabel      string
	Nav           []NavItem
	Card          *cardView
	Notifications []Notification
}

type cardView struct {
	Tab   Tab
	Tabs  []tabView
	Forms []formView
}

type tabView struct {
	Tab      Tab
	Title    string
	Selected bool
}

type formView struct {
	Tab      Tab
	Title    string
	Selected bool
	Fields   []fieldView
	Strength *StrengthView
}

type fieldView struct {
	Field
	Tab          Tab
	ID           string
	Type         string
	Label        string
	Placeholder  string
	AutoComplete string
	Toggle       bool
	Visible      bool
	Invalid      bool
}

func newCardView(c *Card) *cardView {
	v := &cardView{Tab: c.Tab()}
	for _, tab := range []Tab{TabLogin, TabRegister} {
		sel := tab == c.Tab()
		v.Tabs = append(v.Tabs, tabView{Tab: tab, Title: tab.Title(), Selected: sel})

		fv := formView{Tab: tab, Title: tab.Title(), Selected: sel}
		for _, f := range c.Fields(tab) {
			meta := fieldMetas[tab][f.Name]
			typ := "email"
			if isPasswordField(f.Name) {
				typ = "password"
				if c.Visible(tab, f.Name) {
					typ = "text"
				}
			}
			fv.Fields = append(fv.Fields, fieldView{
				Field:        f,
				Tab:          tab,
				ID:           string(tab) + "-" + f.Name,
				Type:         typ,
				Label:        meta.Label,
				Placeholder:  meta.Placeholder,
				AutoComplete: meta.AutoComplete,
				Toggle:       isPasswordField(f.Name),
				Visible:      c.Visible(tab, f.Name),
				Invalid:      f.Invalid(),
			})
		}
		if tab == TabRegister {
			sv := NewStrengthView(c.Strength())
			fv.Strength = &sv
		}
		v.Forms = append(v.Forms, fv)
	}
	return v
}

// RenderPage writes the auth page for c, with the sidebar and any pending
// notifications, which are consumed.
func RenderPage(w io.Writer, c *Card, path string) error {
	return pageTmpl.ExecuteTemplate(w, "page", pageView{
		Title:         c.Tab().Title(),
		Logo:          LogoText,
		NavLabel:      NavGroupLabel,
		Nav:           Nav(path),
		Card:          newCardView(c),
		Notifications: c.DrainNotifications(),
	})
}

// RenderShell writes a page holding only the sidebar, for the navigation
// destinations.
func RenderShell(w io.Writer, title, path string) error {
	return pageTmpl.ExecuteTemplate(w, "page", pageView{
		Title:    title,
		Logo:     LogoText,
		NavLabel: NavGroupLabel,
		Nav:      Nav(path),
	})
}

// renderFragment executes one named template into a string.
func renderFragment(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := pageTmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// StrengthView is a scored password with its display attributes, as rendered
// under the register password and returned by the strength endpoint.
type StrengthView struct {
	Strength
	Label   string `json:"label"`
	Color   string `json:"color"`
	Percent int    `json:"percent"`
}

func NewStrengthView(s Strength) StrengthView {
	return StrengthView{Strength: s, Label: s.Label(), Color: s.Color(), Percent: s.Percent()}
}
