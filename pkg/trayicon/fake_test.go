package trayicon

import (
	"errors"
	"sync"
	"testing"
)

// fakeTray stands in for the native tray and counts live OS resources.
type fakeTray struct {
	id      ID
	res     *resources
	mu      sync.Mutex
	attrs   Attributes
	visible bool
}

type resources struct {
	mu      sync.Mutex
	live    int
	removed map[ID]int
}

func (r *resources) removals(id ID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.removed[id]
}

func (r *resources) liveCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.live
}

var errFakeOS = errors.New("fake os failure")

// useFakePlatform swaps the native tray for fakes for the duration of t.
func useFakePlatform(t *testing.T) (*resources, func() *fakeTray) {
	res := &resources{removed: make(map[ID]int)}
	var (
		mu   sync.Mutex
		last *fakeTray
	)
	prev := newPlatformTray
	newPlatformTray = func(id ID, attrs Attributes) (platformTray, error) {
		if attrs.Tooltip == "fail" {
			return nil, osError(errFakeOS)
		}
		res.mu.Lock()
		res.live++
		res.mu.Unlock()
		f := &fakeTray{id: id, res: res, attrs: attrs, visible: true}
		mu.Lock()
		last = f
		mu.Unlock()
		return f, nil
	}
	t.Cleanup(func() { newPlatformTray = prev })
	return res, func() *fakeTray {
		mu.Lock()
		defer mu.Unlock()
		return last
	}
}

func (f *fakeTray) setIcon(icon *Icon) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attrs.Icon = icon
	return nil
}

func (f *fakeTray) setMenu(m ContextMenu) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attrs.Menu = m
}

func (f *fakeTray) setTooltip(tooltip string) error {
	if tooltip == "fail" {
		return osError(errFakeOS)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attrs.Tooltip = tooltip
	return nil
}

func (f *fakeTray) setVisible(visible bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.visible = visible
	return nil
}

func (f *fakeTray) setShowMenuOnLeftClick(enable bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attrs.MenuOnLeftClick = enable
}

func (f *fakeTray) rect() (Rect, bool) {
	return Rect{Size: Size{Width: 16, Height: 16}, Position: Position{X: 10, Y: 20}}, true
}

func (f *fakeTray) remove() error {
	f.res.mu.Lock()
	defer f.res.mu.Unlock()
	f.res.live--
	f.res.removed[f.id]++
	return nil
}

// click simulates the OS reporting a left click on the icon.
func (f *fakeTray) click() {
	r, _ := f.rect()
	send(ClickEvent{
		EventInfo:   EventInfo{IconID: f.id, Position: Position{X: 12, Y: 22}, Rect: r},
		Button:      Left,
		ButtonState: Up,
	})
}
