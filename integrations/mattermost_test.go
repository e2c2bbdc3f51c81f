package integrations_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olliebm/boards-sync/integrations"
)

func TestLoginReturnsSessionToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v4/users/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "dev-user", body["login_id"])

		w.Header().Set("Token", "session-token-123")
		json.NewEncoder(w).Encode(map[string]string{"id": "user-1"})
	}))
	defer server.Close()

	client := integrations.NewMattermostClient(server.URL, "")
	token, err := client.Login(context.Background(), "dev-user", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "session-token-123", token)
}

func TestCreateDirectChannelAndPost(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer bot-token", r.Header.Get("Authorization"))

		switch r.URL.Path {
		case "/api/v4/channels/direct":
			var users []string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&users))
			assert.Equal(t, []string{"bot-1", "user-1"}, users)
			json.NewEncoder(w).Encode(integrations.Channel{ID: "dm-channel"})
		case "/api/v4/posts":
			var post map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&post))
			assert.Equal(t, "dm-channel", post["channel_id"])
			json.NewEncoder(w).Encode(integrations.Post{ID: "post-1", ChannelID: "dm-channel", Message: post["message"]})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := integrations.NewMattermostClient(server.URL, "bot-token")

	channel, err := client.CreateDirectChannel(context.Background(), []string{"bot-1", "user-1"})
	require.NoError(t, err)
	assert.Equal(t, "dm-channel", channel.ID)

	post, err := client.CreatePost(context.Background(), channel.ID, "Hello, world!")
	require.NoError(t, err)
	assert.Equal(t, "Hello, world!", post.Message)
}

func TestMattermostRemoteError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message": "invalid token"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	client := integrations.NewMattermostClient(server.URL, "bad-token")
	_, err := client.CreatePost(context.Background(), "channel", "hi")
	require.Error(t, err)

	var remoteErr *integrations.RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, http.StatusUnauthorized, remoteErr.StatusCode)
}
