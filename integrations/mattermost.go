package integrations

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const mattermostAPIPath = "/api/v4"

// MattermostClient covers the handful of /api/v4 endpoints the app
// surface needs: session login, direct channels and posts.
type MattermostClient struct {
	Client  *http.Client
	BaseURL string
	Token   string
}

func NewMattermostClient(siteURL, token string) *MattermostClient {
	return &MattermostClient{
		Client:  &http.Client{},
		BaseURL: siteURL + mattermostAPIPath,
		Token:   token,
	}
}

// Channel is the slice of a Mattermost channel record we read back.
type Channel struct {
	ID string `json:"id"`
}

// Post is the slice of a Mattermost post record we read back.
type Post struct {
	ID        string `json:"id"`
	ChannelID string `json:"channel_id"`
	Message   string `json:"message"`
}

// Login exchanges username/password for a session token. Used by the
// local development helper only; the sync path authenticates with a
// personal access token instead.
func (mc *MattermostClient) Login(ctx context.Context, username, password string) (string, error) {
	const op = "login"

	body := map[string]string{
		"login_id": username,
		"password": password,
	}
	resp, err := mc.post(ctx, op, "/users/login", body)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	// The session token comes back as a header, not in the body.
	token := resp.Header.Get("Token")
	if token == "" {
		return "", &RemoteError{Op: op, Err: fmt.Errorf("no session token in response")}
	}
	return token, nil
}

// CreateDirectChannel creates (or fetches) the DM channel between the
// given pair of user ids.
func (mc *MattermostClient) CreateDirectChannel(ctx context.Context, userIDs []string) (Channel, error) {
	const op = "create direct channel"

	resp, err := mc.post(ctx, op, "/channels/direct", userIDs)
	if err != nil {
		return Channel{}, err
	}
	defer resp.Body.Close()

	var channel Channel
	if err := json.NewDecoder(resp.Body).Decode(&channel); err != nil {
		return Channel{}, &DecodeError{Op: op, Err: err}
	}
	return channel, nil
}

// CreatePost posts a message into the given channel.
func (mc *MattermostClient) CreatePost(ctx context.Context, channelID, message string) (Post, error) {
	const op = "create post"

	body := map[string]string{
		"channel_id": channelID,
		"message":    message,
	}
	resp, err := mc.post(ctx, op, "/posts", body)
	if err != nil {
		return Post{}, err
	}
	defer resp.Body.Close()

	var post Post
	if err := json.NewDecoder(resp.Body).Decode(&post); err != nil {
		return Post{}, &DecodeError{Op: op, Err: err}
	}
	return post, nil
}

func (mc *MattermostClient) post(ctx context.Context, op, path string, body any) (*http.Response, error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, &RemoteError{Op: op, Err: fmt.Errorf("failed to encode request body: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, mc.BaseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return nil, &RemoteError{Op: op, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	if mc.Token != "" {
		req.Header.Set("Authorization", "Bearer "+mc.Token)
	}

	resp, err := mc.Client.Do(req)
	if err != nil {
		return nil, &RemoteError{Op: op, Err: fmt.Errorf("failed to send request: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, &RemoteError{Op: op, StatusCode: resp.StatusCode, Body: string(bodyBytes)}
	}
	return resp, nil
}
