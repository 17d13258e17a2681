package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAction(t *testing.T) {
	for _, a := range AllActions {
		parsed, err := ParseAction(a.String())
		require.NoError(t, err)
		assert.Equal(t, a, parsed)
	}

	_, err := ParseAction("archive")
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestActionSet(t *testing.T) {
	s := NewActionSet(ActionDelete, ActionView, Action(0), Action(42))

	assert.True(t, s.Has(ActionView))
	assert.True(t, s.Has(ActionDelete))
	assert.False(t, s.Has(ActionEdit))
	assert.False(t, s.Has(Action(42)))
	assert.Equal(t, []Action{ActionView, ActionDelete}, s.List())
	assert.Equal(t, []string{"view", "delete"}, s.Strings())
}

func TestAction_StringUnknown(t *testing.T) {
	assert.False(t, Action(99).IsValid())
	assert.Equal(t, "action(99)", Action(99).String())
}
