package models

// Board is a read-only snapshot of a Focalboard board, fetched fresh for
// every webhook delivery. The remote service owns the authoritative copy.
type Board struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Title          string         `json:"title"`
	CardProperties []CardProperty `json:"cardProperties"`
}

// CardProperty is one entry of a board's schema. Only the property named
// "Status" matters to the sync path.
type CardProperty struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Type    string         `json:"type"`
	Options []StatusOption `json:"options"`
}

// StatusOption is one legal value of the Status property. ID is the
// opaque identifier the board service expects in a card's property map,
// Value is the human-readable label used for matching.
type StatusOption struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

// Card is a kanban card. Properties maps property id to value; one of the
// values holds the pull-request URL a card tracks, under a key we never
// learn up front.
type Card struct {
	ID         string         `json:"id"`
	Properties map[string]any `json:"properties"`
}
