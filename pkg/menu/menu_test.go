package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain() {
	for {
		if _, ok := Receiver().TryRecv(); !ok {
			return
		}
	}
}

func TestGeneratedIDsAreUnique(t *testing.T) {
	a := NewItem("a", true)
	b := NewItem("b", true)
	assert.NotEqual(t, a.ID(), b.ID())
	assert.NotEqual(t, Separator().ID(), Separator().ID())
}

func TestActivateSendsEvent(t *testing.T) {
	drain()
	open := NewItemWithID("open", "Open", true)
	m := New(open, Separator())

	require.True(t, m.Activate("open"))
	e, ok := Receiver().TryRecv()
	require.True(t, ok)
	assert.Equal(t, Event{ID: "open"}, e)
}

func TestActivateIgnoresDisabledAndUnknown(t *testing.T) {
	drain()
	sep := Separator()
	m := New(NewItemWithID("off", "Off", false), sep)

	assert.False(t, m.Activate("off"))
	assert.False(t, m.Activate(sep.ID()))
	assert.False(t, m.Activate("missing"))
	assert.Equal(t, 0, Receiver().Len())
}

func TestActivateTogglesCheckItem(t *testing.T) {
	drain()
	check := NewCheckItem("autostart", "Start at login", false, true)
	m := New(check)

	m.Activate("autostart")
	assert.True(t, check.Checked())
	m.Activate("autostart")
	assert.False(t, check.Checked())
	assert.Equal(t, 2, Receiver().Len())
	drain()
}

func TestItemsIsSnapshot(t *testing.T) {
	m := New(NewItem("a", true))
	items := m.Items()
	m.Append(NewItem("b", true))
	assert.Len(t, items, 1)
	assert.Len(t, m.Items(), 2)
}
