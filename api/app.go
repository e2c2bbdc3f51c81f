package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/olliebm/boards-sync/internal/models"
)

// The Mattermost app surface: manifest, bindings and the demo submit
// flow. Mattermost fetches the manifest once at install time and calls
// /bindings whenever it renders the app's entry points.

func Manifest(rootURL string) models.AppManifest {
	return models.AppManifest{
		AppID:       "boards-sync",
		DisplayName: "Boards Sync",
		Description: "An app to sync boards's status between Mattermost and github.",
		HomepageURL: "https://github.com/olliebm/boards-sync",
		AppType:     "http",
		Icon:        "icon.png",
		HTTP: models.AppHTTP{
			RootURL: rootURL,
		},
		RequestedPermissions: []string{"act_as_bot"},
		RequestedLocations:   []string{"/channel_header", "/command"},
	}
}

func demoForm() *models.AppForm {
	return &models.AppForm{
		Title: "I'm a form!",
		Icon:  "icon.png",
		Fields: []models.AppField{
			{Type: "text", Name: "message", Label: "message", Position: 1},
		},
		Submit: &models.AppCall{
			Path: "/submit",
			Expand: map[string]any{
				"acting_user":              "all",
				"acting_user_access_token": "all",
			},
		},
	}
}

func bindings() []models.AppBinding {
	return []models.AppBinding{
		{
			Location: "/channel_header",
			Bindings: []models.AppBinding{
				{
					Location: "send-button",
					Icon:     "icon.png",
					Label:    "send hello message",
					Form:     demoForm(),
				},
			},
		},
		{
			Location: "/command",
			Bindings: []models.AppBinding{
				{
					Icon:        "icon.png",
					Label:       "boards-sync",
					Description: "An app to sync boards's status between Mattermost and github.",
					Hint:        "[send]",
					Bindings: []models.AppBinding{
						{Location: "send", Label: "send", Form: demoForm()},
					},
				},
			},
		},
	}
}

// AppHandler serves the static app surface. RootURL is where this app
// serves from, baked into the manifest.
type AppHandler struct {
	RootURL string
}

func (a *AppHandler) ManifestHandler(c *gin.Context) {
	c.JSON(http.StatusOK, Manifest(a.RootURL))
}

func (a *AppHandler) BindingsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, models.AppCallResponse{
		Type: "ok",
		Data: bindings(),
	})
}

// SubmitHandler posts a greeting into a DM channel between the bot and
// the acting user. Client failures are reported inside the app-call
// envelope: Mattermost expects 200 with type "error", not an HTTP error.
func (h *Handler) SubmitHandler(c *gin.Context) {
	var call models.AppCallRequest
	if err := c.ShouldBindJSON(&call); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid call request"})
		return
	}

	siteURL := call.Context.MattermostSiteURL
	if h.SiteURL != "" {
		siteURL = h.SiteURL
	}
	bot := h.NewBotClient(siteURL, call.Context.BotAccessToken)

	message := "Hello, world!"
	if submitted := call.Values["message"]; submitted != "" {
		message += " ...and " + submitted + "!"
	}

	users := []string{call.Context.BotUserID, call.Context.ActingUser.ID}
	channel, err := bot.CreateDirectChannel(c.Request.Context(), users)
	if err != nil {
		zap.L().Error("failed to create DM channel", zap.Error(err))
		c.JSON(http.StatusOK, models.AppCallResponse{
			Type:  "error",
			Error: "Failed to create/fetch DM channel: " + err.Error(),
		})
		return
	}

	if _, err := bot.CreatePost(c.Request.Context(), channel.ID, message); err != nil {
		zap.L().Error("failed to create post", zap.Error(err))
		c.JSON(http.StatusOK, models.AppCallResponse{
			Type:  "error",
			Error: "Failed to create post in DM channel: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.AppCallResponse{
		Type: "ok",
		Text: "Created a post in your DM channel.",
	})
}
