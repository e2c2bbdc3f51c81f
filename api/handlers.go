package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/olliebm/boards-sync/integrations"
	"github.com/olliebm/boards-sync/internal/models"
	"github.com/olliebm/boards-sync/internal/sync"
)

// CardSyncer is what the webhook endpoint needs from the sync core.
type CardSyncer interface {
	Sync(ctx context.Context, event models.ReviewEvent) (sync.Outcome, error)
}

// BotPoster is the slice of the Mattermost client the submit flow uses.
type BotPoster interface {
	CreateDirectChannel(ctx context.Context, userIDs []string) (integrations.Channel, error)
	CreatePost(ctx context.Context, channelID, message string) (integrations.Post, error)
}

type Handler struct {
	Syncer CardSyncer

	// SiteURL, when set, overrides the site URL Mattermost sends in call
	// requests. Needed in the docker-compose dev environment where the
	// server's own idea of its URL is not reachable from the app.
	SiteURL string

	// NewBotClient builds a client acting as the app's bot for one call.
	// The token arrives per request in the call context.
	NewBotClient func(siteURL, token string) BotPoster
}

// EventListenerHandler receives GitHub pull_request_review deliveries and
// runs the sync. Webhook platforms probe endpoints with non-POST methods;
// those get a plain 200 so the hook stays registered.
func (h *Handler) EventListenerHandler(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		c.Status(http.StatusOK)
		return
	}

	var payload models.ReviewWebhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		zap.L().Debug("rejected webhook payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON payload"})
		return
	}

	event := payload.Event()
	zap.L().Info("review event received",
		zap.String("repository", event.RepositoryName),
		zap.String("pullRequest", event.PullRequestURL),
		zap.String("state", event.ReviewState))

	outcome, err := h.Syncer.Sync(c.Request.Context(), event)
	if err != nil {
		zap.L().Error("sync failed",
			zap.String("repository", event.RepositoryName),
			zap.String("pullRequest", event.PullRequestURL),
			zap.Error(err))
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": outcome.Message()})
}

// statusForError maps core error kinds onto HTTP statuses: failures of
// the remote board service surface as 502, everything else (resolution
// failures, schema drift) as 400.
func statusForError(err error) int {
	var remoteErr *integrations.RemoteError
	var decodeErr *integrations.DecodeError
	if errors.As(err, &remoteErr) || errors.As(err, &decodeErr) {
		return http.StatusBadGateway
	}
	return http.StatusBadRequest
}

func (h *Handler) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
