package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracker_LastEventWins(t *testing.T) {
	tr := NewTracker(nil)

	tr.Apply(KeyEvent{Key: "w", Press: true})
	assert.Equal(t, Held(Forward), tr.State())

	tr.Apply(KeyEvent{Key: "W", Press: false})
	assert.Equal(t, State{}, tr.State())

	tr.Apply(KeyEvent{Key: "a", Press: true})
	tr.Apply(KeyEvent{Key: "a", Press: false})
	tr.Apply(KeyEvent{Key: "a", Press: true})
	assert.Equal(t, Held(Left), tr.State())
}

func TestTracker_AliasesShareControl(t *testing.T) {
	tr := NewTracker(nil)
	tr.Apply(KeyEvent{Key: "w", Press: true})
	tr.Apply(KeyEvent{Key: "ArrowUp", Press: true})
	tr.Apply(KeyEvent{Key: "w", Press: false})

	assert.True(t, tr.State().Forward, "arrow key still held")
}

func TestTracker_IgnoresUnboundKeys(t *testing.T) {
	tr := NewTracker(KeyMap{"I": Forward})
	tr.Apply(KeyEvent{Key: "w", Press: true})
	tr.Apply(KeyEvent{Key: "q", Press: true})
	assert.Equal(t, State{}, tr.State())

	tr.Apply(KeyEvent{Key: "i", Press: true})
	assert.Equal(t, Held(Forward), tr.State())

	tr.Reset()
	assert.Equal(t, State{}, tr.State())
}

func TestParseControl(t *testing.T) {
	c, err := ParseControl(" Forward ")
	require.NoError(t, err)
	assert.Equal(t, Forward, c)

	_, err = ParseControl("boost")
	assert.Error(t, err)
}

func TestState_Active(t *testing.T) {
	s := Held(Right, Forward)
	assert.Equal(t, []Control{Forward, Right}, s.Active())
	assert.Empty(t, State{}.Active())
}
