package models

// Minimal subset of the Mattermost Apps framework types needed to serve
// the manifest, bindings and submit endpoints.

type AppManifest struct {
	AppID                string   `json:"app_id"`
	DisplayName          string   `json:"display_name"`
	Description          string   `json:"description"`
	HomepageURL          string   `json:"homepage_url"`
	AppType              string   `json:"app_type"`
	Icon                 string   `json:"icon"`
	HTTP                 AppHTTP  `json:"http"`
	RequestedPermissions []string `json:"requested_permissions"`
	RequestedLocations   []string `json:"requested_locations"`
}

type AppHTTP struct {
	RootURL string `json:"root_url"`
}

type AppBinding struct {
	Location    string       `json:"location,omitempty"`
	Icon        string       `json:"icon,omitempty"`
	Label       string       `json:"label,omitempty"`
	Description string       `json:"description,omitempty"`
	Hint        string       `json:"hint,omitempty"`
	Form        *AppForm     `json:"form,omitempty"`
	Bindings    []AppBinding `json:"bindings,omitempty"`
}

type AppForm struct {
	Title  string     `json:"title"`
	Icon   string     `json:"icon"`
	Fields []AppField `json:"fields"`
	Submit *AppCall   `json:"submit,omitempty"`
}

type AppField struct {
	Type     string `json:"type"`
	Name     string `json:"name"`
	Label    string `json:"label"`
	Position int    `json:"position"`
}

type AppCall struct {
	Path   string         `json:"path"`
	Expand map[string]any `json:"expand,omitempty"`
}

// AppCallRequest carries the context Mattermost expands for a call. Only
// the fields the submit flow reads are declared.
type AppCallRequest struct {
	Context AppContext        `json:"context"`
	Values  map[string]string `json:"values"`
}

type AppContext struct {
	MattermostSiteURL string         `json:"mattermost_site_url"`
	BotAccessToken    string         `json:"bot_access_token"`
	BotUserID         string         `json:"bot_user_id"`
	ActingUser        AppContextUser `json:"acting_user"`
}

type AppContextUser struct {
	ID string `json:"id"`
}

// AppCallResponse is the envelope every call endpoint answers with.
type AppCallResponse struct {
	Type  string `json:"type"`
	Text  string `json:"text,omitempty"`
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}
