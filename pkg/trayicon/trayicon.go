// Package trayicon creates icons in the operating system's notification area
// and delivers their click and hover events.
//
// An event loop must be running on the thread that creates the tray icon. Use
// Run to start it and create icons from its ready callback:
//
//	trayicon.Run(func() {
//		tray, err := trayicon.NewBuilder().
//			WithTooltip("demo").
//			WithIcon(icon).
//			Build()
//		...
//	})
//
// Events are read from Receiver, or pushed to a handler installed once with
// SetEventHandler.
package trayicon

import (
	"sync"

	"go.uber.org/atomic"
)

// Attributes configure a tray icon when it is created.
type Attributes struct {
	// Tooltip is shown when hovering the icon. Empty means none.
	Tooltip string

	// Menu is shown on right click, and on left click when MenuOnLeftClick
	// is set.
	Menu ContextMenu

	// Icon is the image shown in the tray.
	Icon *Icon

	// MenuOnLeftClick shows the menu on left click too. Defaults to true.
	MenuOnLeftClick bool
}

// DefaultAttributes returns attributes with MenuOnLeftClick enabled.
func DefaultAttributes() Attributes {
	return Attributes{MenuOnLeftClick: true}
}

// shared is the platform tray every clone of a TrayIcon points at.
type shared struct {
	mu   sync.RWMutex
	tray platformTray
	refs atomic.Int32
}

func (s *shared) release() error {
	if s.refs.Dec() != 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	tray := s.tray
	s.tray = nil
	if tray == nil {
		return nil
	}
	debug("removing tray icon")
	return tray.remove()
}

// TrayIcon is a handle to an icon in the system tray. Handles are reference
// counted: Clone adds a reference, Close drops one, and the icon is removed
// from the tray when the last reference is closed.
type TrayIcon struct {
	id     ID
	shared *shared

	mu     sync.Mutex
	closed bool
}

// New builds a tray icon with a generated id and adds it to the tray.
func New(attrs Attributes) (*TrayIcon, error) {
	return WithID(nextID(), attrs)
}

// WithID builds a tray icon with the given id and adds it to the tray.
func WithID(id ID, attrs Attributes) (*TrayIcon, error) {
	tray, err := newPlatformTray(id, attrs)
	if err != nil {
		return nil, err
	}
	s := &shared{tray: tray}
	s.refs.Store(1)
	debug("created tray icon ", id)
	return &TrayIcon{id: id, shared: s}, nil
}

// ID returns the id of the tray icon.
func (t *TrayIcon) ID() ID {
	return t.id
}

// Clone returns a new handle to the same tray icon. Cloning a closed handle
// returns a closed handle.
func (t *TrayIcon) Clone() *TrayIcon {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return &TrayIcon{id: t.id, shared: t.shared, closed: true}
	}
	t.shared.refs.Inc()
	return &TrayIcon{id: t.id, shared: t.shared}
}

// Close releases this handle. The icon is removed from the tray once every
// handle has been closed. Closing a handle twice is a no-op.
func (t *TrayIcon) Close() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	t.closed = true
	t.mu.Unlock()
	return t.shared.release()
}

// SetIcon replaces the icon. A nil icon removes it.
func (t *TrayIcon) SetIcon(icon *Icon) error {
	return t.write(func(tray platformTray) error {
		return tray.setIcon(icon)
	})
}

// SetMenu replaces the context menu. A nil menu removes it.
func (t *TrayIcon) SetMenu(m ContextMenu) {
	t.write(func(tray platformTray) error {
		tray.setMenu(m)
		return nil
	})
}

// SetTooltip replaces the tooltip. An empty string removes it.
func (t *TrayIcon) SetTooltip(tooltip string) error {
	return t.write(func(tray platformTray) error {
		return tray.setTooltip(tooltip)
	})
}

// SetVisible shows or hides the icon.
func (t *TrayIcon) SetVisible(visible bool) error {
	return t.write(func(tray platformTray) error {
		return tray.setVisible(visible)
	})
}

// SetShowMenuOnLeftClick toggles showing the menu on left click.
func (t *TrayIcon) SetShowMenuOnLeftClick(enable bool) {
	t.write(func(tray platformTray) error {
		tray.setShowMenuOnLeftClick(enable)
		return nil
	})
}

// Rect returns the position and size of the icon, if the platform can tell.
func (t *TrayIcon) Rect() (Rect, bool) {
	if t.isClosed() {
		return Rect{}, false
	}
	t.shared.mu.RLock()
	defer t.shared.mu.RUnlock()
	if t.shared.tray == nil {
		return Rect{}, false
	}
	return t.shared.tray.rect()
}

func (t *TrayIcon) isClosed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closed
}

func (t *TrayIcon) write(fn func(platformTray) error) error {
	if t.isClosed() {
		return ErrClosed
	}
	t.shared.mu.Lock()
	defer t.shared.mu.Unlock()
	if t.shared.tray == nil {
		return ErrClosed
	}
	return fn(t.shared.tray)
}
