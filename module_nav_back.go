//go:build !wasm

package auth

func (m *navModule) RenderHTML() string {
	out, err := renderFragment("sidebar", pageView{
		Logo:     LogoText,
		NavLabel: NavGroupLabel,
		Nav:      Nav(""),
	})
	if err != nil {
		return ""
	}
	return out
}
