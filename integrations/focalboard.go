package integrations

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/olliebm/boards-sync/internal/models"
)

const focalboardAPIPath = "/plugins/focalboard/api/v2"

// FocalboardClient talks to the Focalboard REST API of a Mattermost
// instance. It does request construction and response decoding only; no
// retries, no caching; every call reflects the board service's state at
// the moment it is made.
type FocalboardClient struct {
	Client  *http.Client
	BaseURL string
	Token   string
}

// NewFocalboardClient builds a client rooted at the instance's site URL.
// The token is the personal access token of a user with access to the
// boards being synced.
func NewFocalboardClient(siteURL, token string) *FocalboardClient {
	return &FocalboardClient{
		Client:  &http.Client{},
		BaseURL: siteURL + focalboardAPIPath,
		Token:   token,
	}
}

// ListBoards returns every board of the given team.
func (fc *FocalboardClient) ListBoards(ctx context.Context, teamID string) ([]models.Board, error) {
	var boards []models.Board
	if err := fc.get(ctx, "list boards", fmt.Sprintf("/teams/%s/boards", teamID), &boards); err != nil {
		return nil, err
	}
	return boards, nil
}

// GetBoard returns one board including its full cardProperties schema.
func (fc *FocalboardClient) GetBoard(ctx context.Context, boardID string) (models.Board, error) {
	var board models.Board
	if err := fc.get(ctx, "get board", fmt.Sprintf("/boards/%s", boardID), &board); err != nil {
		return models.Board{}, err
	}
	return board, nil
}

// ListCards returns every card of the given board.
func (fc *FocalboardClient) ListCards(ctx context.Context, boardID string) ([]models.Card, error) {
	var cards []models.Card
	if err := fc.get(ctx, "list cards", fmt.Sprintf("/boards/%s/cards", boardID), &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

// PatchCardProperties issues a partial update of a card's properties.
// The board service replaces the card's property map with the one given,
// so callers must pass the full merged map, not just the changed entry.
func (fc *FocalboardClient) PatchCardProperties(ctx context.Context, boardID, cardID string, properties map[string]any) (models.Card, error) {
	const op = "patch card"

	payload := map[string]any{
		"updatedFields": map[string]any{
			"properties": properties,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return models.Card{}, &RemoteError{Op: op, Err: fmt.Errorf("failed to encode patch body: %w", err)}
	}

	path := fmt.Sprintf("/boards/%s/blocks/%s", boardID, cardID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, fc.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return models.Card{}, &RemoteError{Op: op, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	var card models.Card
	if err := fc.send(req, op, &card); err != nil {
		return models.Card{}, err
	}
	return card, nil
}

func (fc *FocalboardClient) get(ctx context.Context, op, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fc.BaseURL+path, nil)
	if err != nil {
		return &RemoteError{Op: op, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	return fc.send(req, op, out)
}

func (fc *FocalboardClient) send(req *http.Request, op string, out any) error {
	// Focalboard rejects requests without the XMLHttpRequest marker.
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	req.Header.Set("Authorization", "Bearer "+fc.Token)

	resp, err := fc.Client.Do(req)
	if err != nil {
		return &RemoteError{Op: op, Err: fmt.Errorf("failed to send request: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return &RemoteError{Op: op, StatusCode: resp.StatusCode, Body: string(bodyBytes)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &DecodeError{Op: op, Err: err}
	}
	return nil
}
