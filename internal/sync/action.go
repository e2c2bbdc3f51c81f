package sync

// CardAction is a target outcome for a card. Its string value is the
// status label the board schema must carry for the action to apply.
type CardAction string

const (
	MoveToInProgress CardAction = "In Progress"
	MoveToDone       CardAction = "Testing"
)

// Label is the Status option value the action moves the card to.
func (a CardAction) Label() string { return string(a) }

// Message is the acknowledgment returned to the webhook caller.
func (a CardAction) Message() string {
	if a == MoveToDone {
		return "Card moved to done"
	}
	return "Card moved to in progress"
}

// ActionForReviewState maps a review state to a card action. This is an
// intentional two-way gate, not a review state machine: "approved" moves
// the card forward, every other state (changes_requested, commented,
// dismissed, empty, anything GitHub adds later) moves it back to
// In Progress.
func ActionForReviewState(state string) CardAction {
	if state == "approved" {
		return MoveToDone
	}
	return MoveToInProgress
}
