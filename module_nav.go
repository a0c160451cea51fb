package auth

type navModule struct{}

func (m *navModule) HandlerName() string { return "nav" }
func (m *navModule) ModuleTitle() string { return NavGroupLabel }
