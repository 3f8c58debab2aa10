package collab

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestState(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "validating_participants", StateValidatingParticipants.String())
	assert.Equal(t, "faulted", StateFaulted.String())
	assert.Equal(t, "unknown", State(42).String())

	for _, s := range []State{StateRejected, StateCompleted, StateFaulted} {
		assert.True(t, s.Terminal(), s.String())
	}
	for _, s := range []State{StateIdle, StateValidatingParticipants, StateAnalysis, StateCritique, StateSynthesis} {
		assert.False(t, s.Terminal(), s.String())
	}
}
