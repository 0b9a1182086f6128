package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition_OneWayFromPending(t *testing.T) {
	assert.True(t, CanTransition(SuggestionPending, SuggestionAccepted))
	assert.True(t, CanTransition(SuggestionPending, SuggestionRejected))

	// Accepted and rejected are terminal.
	assert.False(t, CanTransition(SuggestionAccepted, SuggestionPending))
	assert.False(t, CanTransition(SuggestionRejected, SuggestionPending))
	assert.False(t, CanTransition(SuggestionAccepted, SuggestionRejected))
	assert.False(t, CanTransition(SuggestionRejected, SuggestionAccepted))

	assert.False(t, CanTransition(SuggestionPending, SuggestionPending))
	assert.False(t, CanTransition(SuggestionPending, "archived"))
}
