package sync_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/olliebm/boards-sync/internal/sync"
)

func TestActionForReviewState(t *testing.T) {
	assert.Equal(t, sync.MoveToDone, sync.ActionForReviewState("approved"))

	// Everything that is not an approval moves the card back.
	for _, state := range []string{"changes_requested", "commented", "dismissed", "", "APPROVED", "approve"} {
		assert.Equal(t, sync.MoveToInProgress, sync.ActionForReviewState(state), "state %q", state)
	}
}

func TestActionLabels(t *testing.T) {
	assert.Equal(t, "In Progress", sync.MoveToInProgress.Label())
	assert.Equal(t, "Testing", sync.MoveToDone.Label())
}

func TestActionMessages(t *testing.T) {
	assert.Equal(t, "Card moved to in progress", sync.MoveToInProgress.Message())
	assert.Equal(t, "Card moved to done", sync.MoveToDone.Message())
}
