package trayicon

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manifold/trayicon/pkg/menu"
)

func TestBuilderDefaults(t *testing.T) {
	_, last := useFakePlatform(t)

	b := NewBuilder()
	id := b.ID()
	require.NotEmpty(t, id)

	tray, err := b.Build()
	require.NoError(t, err)
	defer tray.Close()

	assert.Equal(t, id, tray.ID())
	assert.True(t, last().attrs.MenuOnLeftClick)
	assert.Empty(t, last().attrs.Tooltip)
	assert.Nil(t, last().attrs.Icon)
}

func TestBuilderAttributes(t *testing.T) {
	_, last := useFakePlatform(t)
	icon, err := FromRGBA(make([]byte, 4), 1, 1)
	require.NoError(t, err)
	m := menu.New(menu.NewItem("Quit", true))

	tray, err := NewBuilder().
		WithID("main").
		WithTooltip("hello").
		WithIcon(icon).
		WithMenu(m).
		WithMenuOnLeftClick(false).
		Build()
	require.NoError(t, err)
	defer tray.Close()

	f := last()
	assert.Equal(t, ID("main"), tray.ID())
	assert.Equal(t, ID("main"), f.id)
	assert.Equal(t, "hello", f.attrs.Tooltip)
	assert.Same(t, icon, f.attrs.Icon)
	assert.Same(t, m, f.attrs.Menu)
	assert.False(t, f.attrs.MenuOnLeftClick)
}

func TestBuildersAllocateDistinctIDs(t *testing.T) {
	seen := map[ID]bool{}
	for i := 0; i < 100; i++ {
		id := NewBuilder().ID()
		require.False(t, seen[id], "id %s allocated twice", id)
		seen[id] = true
	}
}

func TestNewPropagatesOSError(t *testing.T) {
	useFakePlatform(t)

	tray, err := New(Attributes{Tooltip: "fail"})
	assert.Nil(t, tray)
	var osErr *OSError
	require.True(t, errors.As(err, &osErr))
	assert.ErrorIs(t, err, errFakeOS)
	assert.Equal(t, "OS error: fake os failure", err.Error())
}

func TestSetters(t *testing.T) {
	_, last := useFakePlatform(t)
	tray, err := New(DefaultAttributes())
	require.NoError(t, err)
	defer tray.Close()
	f := last()

	icon, _ := FromRGBA(nil, 0, 0)
	require.NoError(t, tray.SetIcon(icon))
	assert.Same(t, icon, f.attrs.Icon)

	require.NoError(t, tray.SetTooltip("tip"))
	assert.Equal(t, "tip", f.attrs.Tooltip)

	err = tray.SetTooltip("fail")
	assert.ErrorIs(t, err, errFakeOS)
	assert.Equal(t, "tip", f.attrs.Tooltip)

	require.NoError(t, tray.SetVisible(false))
	assert.False(t, f.visible)

	tray.SetShowMenuOnLeftClick(false)
	assert.False(t, f.attrs.MenuOnLeftClick)

	m := menu.New()
	tray.SetMenu(m)
	assert.Same(t, m, f.attrs.Menu)

	r, ok := tray.Rect()
	require.True(t, ok)
	assert.Equal(t, uint32(16), r.Size.Width)
}

func TestLastCloseRemovesOnce(t *testing.T) {
	res, _ := useFakePlatform(t)
	tray, err := New(DefaultAttributes())
	require.NoError(t, err)
	id := tray.ID()

	a := tray.Clone()
	b := a.Clone()
	assert.Equal(t, id, b.ID())
	assert.Equal(t, 1, res.liveCount())

	require.NoError(t, tray.Close())
	require.NoError(t, tray.Close())
	require.NoError(t, a.Close())
	assert.Equal(t, 0, res.removals(id))

	// the surviving clone still drives the icon
	require.NoError(t, b.SetTooltip("still here"))

	require.NoError(t, b.Close())
	assert.Equal(t, 1, res.removals(id))
	assert.Equal(t, 0, res.liveCount())

	require.NoError(t, b.Close())
	assert.Equal(t, 1, res.removals(id))
}

func TestClosedHandle(t *testing.T) {
	useFakePlatform(t)
	tray, err := New(DefaultAttributes())
	require.NoError(t, err)
	keep := tray.Clone()
	defer keep.Close()
	require.NoError(t, tray.Close())

	assert.ErrorIs(t, tray.SetTooltip("x"), ErrClosed)
	assert.ErrorIs(t, tray.SetIcon(nil), ErrClosed)
	assert.ErrorIs(t, tray.SetVisible(true), ErrClosed)
	assert.NotPanics(t, func() {
		tray.SetMenu(nil)
		tray.SetShowMenuOnLeftClick(true)
	})
	_, ok := tray.Rect()
	assert.False(t, ok)

	clone := tray.Clone()
	assert.ErrorIs(t, clone.SetTooltip("x"), ErrClosed)
	require.NoError(t, keep.SetTooltip("x"))
}

func TestConcurrentClonesRemoveOnce(t *testing.T) {
	res, _ := useFakePlatform(t)
	tray, err := New(DefaultAttributes())
	require.NoError(t, err)
	id := tray.ID()

	clones := make([]*TrayIcon, 50)
	for i := range clones {
		clones[i] = tray.Clone()
	}
	var wg sync.WaitGroup
	for _, c := range clones {
		wg.Add(1)
		go func(c *TrayIcon) {
			defer wg.Done()
			c.SetTooltip("busy")
			c.Rect()
			c.Close()
		}(c)
	}
	wg.Wait()
	assert.Equal(t, 0, res.removals(id))

	require.NoError(t, tray.Close())
	assert.Equal(t, 1, res.removals(id))
}
