package sync

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/olliebm/boards-sync/internal/models"
)

// statusPropertyName is the schema property the whole sync pivots on.
const statusPropertyName = "Status"

// BoardClient is the slice of the board service the syncer depends on.
// Implemented by integrations.FocalboardClient.
type BoardClient interface {
	ListBoards(ctx context.Context, teamID string) ([]models.Board, error)
	GetBoard(ctx context.Context, boardID string) (models.Board, error)
	ListCards(ctx context.Context, boardID string) ([]models.Card, error)
	PatchCardProperties(ctx context.Context, boardID, cardID string, properties map[string]any) (models.Card, error)
}

// Outcome describes what one webhook delivery did.
type Outcome struct {
	// NoCard is set when no card on the board tracks the event's PR URL.
	// That is a normal terminal state (the PR may predate its card), not
	// an error; no patch was issued.
	NoCard bool

	Action  CardAction
	BoardID string
	CardID  string

	// CardMatches counts how many cards matched the PR URL. Anything
	// above one means the board is ambiguous; the first match was used.
	CardMatches int
}

// Message is the acknowledgment for the webhook caller.
func (o Outcome) Message() string {
	if o.NoCard {
		return "No matching card, nothing to do"
	}
	return o.Action.Message()
}

// Syncer reflects pull-request review state onto board cards. All card
// state lives in the remote board service; the syncer holds no state of
// its own and every delivery is processed from a fresh snapshot.
type Syncer struct {
	client BoardClient
	routes *RouteTable
}

func NewSyncer(client BoardClient, routes *RouteTable) *Syncer {
	return &Syncer{client: client, routes: routes}
}

// Sync processes one review event end to end: resolve the target board,
// fetch its status schema and locate the card concurrently, decide the
// target status, and patch the card. Any failure aborts the event before
// the patch; the card is either left untouched or fully patched.
func (s *Syncer) Sync(ctx context.Context, event models.ReviewEvent) (Outcome, error) {
	teamID, boardName := s.routes.Resolve(event.RepositoryName)

	board, err := s.findBoardByName(ctx, teamID, boardName)
	if err != nil {
		return Outcome{}, err
	}

	// The status schema and the card lookup only depend on the resolved
	// board, so both requests go out at once.
	type schemaResult struct {
		board models.Board
		err   error
	}
	type cardsResult struct {
		cards []models.Card
		err   error
	}
	schemaCh := make(chan schemaResult, 1)
	cardsCh := make(chan cardsResult, 1)

	go func() {
		b, err := s.client.GetBoard(ctx, board.ID)
		schemaCh <- schemaResult{board: b, err: err}
	}()
	go func() {
		cards, err := s.client.ListCards(ctx, board.ID)
		cardsCh <- cardsResult{cards: cards, err: err}
	}()

	schema := <-schemaCh
	lookup := <-cardsCh

	if lookup.err != nil {
		return Outcome{}, lookup.err
	}
	card, matches := findCardByPullRequestURL(lookup.cards, event.PullRequestURL)
	if matches == 0 {
		// Nothing to act on; the schema result no longer matters.
		zap.L().Info("no card tracks this pull request",
			zap.String("board", board.Title),
			zap.String("pullRequest", event.PullRequestURL))
		return Outcome{NoCard: true, BoardID: board.ID}, nil
	}
	if matches > 1 {
		zap.L().Warn("multiple cards match pull request, using first",
			zap.String("board", board.Title),
			zap.String("pullRequest", event.PullRequestURL),
			zap.Int("matches", matches))
	}

	if schema.err != nil {
		return Outcome{}, schema.err
	}
	statuses, err := StatusOptions(schema.board)
	if err != nil {
		return Outcome{}, err
	}

	action := ActionForReviewState(event.ReviewState)
	if err := s.applyAction(ctx, schema.board, card, statuses, action); err != nil {
		return Outcome{}, err
	}

	zap.L().Info("card status updated",
		zap.String("board", board.Title),
		zap.String("cardID", card.ID),
		zap.String("status", action.Label()))

	return Outcome{
		Action:      action,
		BoardID:     board.ID,
		CardID:      card.ID,
		CardMatches: matches,
	}, nil
}

// findBoardByName lists the team's boards and picks the one whose title
// matches exactly. First match wins when titles collide; board titles are
// assumed unique within a team.
func (s *Syncer) findBoardByName(ctx context.Context, teamID, name string) (models.Board, error) {
	boards, err := s.client.ListBoards(ctx, teamID)
	if err != nil {
		return models.Board{}, err
	}
	for _, board := range boards {
		if board.Title == name {
			return board, nil
		}
	}
	return models.Board{}, fmt.Errorf("%w: %q in team %s", ErrBoardNotFound, name, teamID)
}

// StatusOptions projects a board's schema down to the options of its
// Status property.
func StatusOptions(board models.Board) ([]models.StatusOption, error) {
	for _, prop := range board.CardProperties {
		if prop.Name == statusPropertyName {
			return prop.Options, nil
		}
	}
	return nil, fmt.Errorf("%w: board %q", ErrStatusSchemaMissing, board.Title)
}

// StatusPropertyID returns the schema id of the board's Status property,
// the key under which a card stores its status value.
func StatusPropertyID(board models.Board) (string, error) {
	for _, prop := range board.CardProperties {
		if prop.Name == statusPropertyName {
			return prop.ID, nil
		}
	}
	return "", fmt.Errorf("%w: board %q", ErrStatusSchemaMissing, board.Title)
}

// findCardByPullRequestURL scans every card's property values (keys are
// opaque schema ids, so matching is by value) for an exact match on the
// PR URL. Returns the first matching card and the total match count.
func findCardByPullRequestURL(cards []models.Card, url string) (models.Card, int) {
	var first models.Card
	matches := 0
	for _, card := range cards {
		for _, value := range card.Properties {
			if s, ok := value.(string); ok && s == url {
				if matches == 0 {
					first = card
				}
				matches++
				break
			}
		}
	}
	return first, matches
}

// applyAction resolves the action's label against the board's status
// options and patches the card with a merged property map: every existing
// property is carried over, only the Status entry is overwritten.
func (s *Syncer) applyAction(ctx context.Context, board models.Board, card models.Card, statuses []models.StatusOption, action CardAction) error {
	var target *models.StatusOption
	for i := range statuses {
		if statuses[i].Value == action.Label() {
			target = &statuses[i]
			break
		}
	}
	if target == nil {
		return fmt.Errorf("%w: no option labeled %q on board %q", ErrStatusOptionNotFound, action.Label(), board.Title)
	}

	propertyID, err := StatusPropertyID(board)
	if err != nil {
		return err
	}

	merged := make(map[string]any, len(card.Properties)+1)
	for key, value := range card.Properties {
		merged[key] = value
	}
	merged[propertyID] = target.ID

	_, err = s.client.PatchCardProperties(ctx, board.ID, card.ID, merged)
	return err
}
