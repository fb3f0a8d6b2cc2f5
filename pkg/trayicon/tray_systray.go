//go:build !windows

package trayicon

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"sync"

	"github.com/getlantern/systray"
	"go.uber.org/atomic"

	"github.com/manifold/trayicon/pkg/menu"
)

var (
	// loopReady is set while systray.Run is between its ready and exit
	// callbacks.
	loopReady atomic.Bool

	// active is set while a tray icon owns the single systray slot.
	active atomic.Bool

	errOneTrayIcon = errors.New("only one tray icon is supported on this platform")
)

// Run starts the systray event loop on the calling goroutine, which should
// be the main goroutine, and calls onReady once it is ready. It returns after
// Quit.
func Run(onReady func()) error {
	systray.Run(func() {
		loopReady.Store(true)
		if onReady != nil {
			onReady()
		}
	}, func() {
		loopReady.Store(false)
	})
	return nil
}

// Quit stops the loop started by Run.
func Quit() {
	systray.Quit()
}

// systrayTray drives the process-wide systray icon. Pointer events are not
// reported by systray, so only menu activations flow from it.
type systrayTray struct {
	id ID

	mu      sync.Mutex
	icon    []byte
	tooltip string
	visible bool
	items   []*systray.MenuItem
	stop    chan struct{}
}

func newNativeTray(id ID, attrs Attributes) (platformTray, error) {
	if !loopReady.Load() {
		return nil, ErrNotMainThread
	}
	if !active.CompareAndSwap(false, true) {
		return nil, osError(errOneTrayIcon)
	}
	t := &systrayTray{id: id, visible: true}
	if err := t.setIcon(attrs.Icon); err != nil {
		active.Store(false)
		return nil, err
	}
	systray.SetTooltip(attrs.Tooltip)
	t.tooltip = attrs.Tooltip
	t.setMenu(attrs.Menu)
	return t, nil
}

func (t *systrayTray) setIcon(icon *Icon) error {
	data, err := encodeIcon(icon)
	if err != nil {
		return osError(err)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.icon = data
	if t.visible {
		systray.SetIcon(data)
	}
	return nil
}

func (t *systrayTray) setMenu(m ContextMenu) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.clearItems()
	if m == nil {
		return
	}

	t.stop = make(chan struct{})
	for _, item := range m.Items() {
		if item.IsSeparator() {
			systray.AddSeparator()
			continue
		}
		mi := systray.AddMenuItem(item.Title(), item.Tooltip())
		syncItem(mi, item)
		t.items = append(t.items, mi)
		go forwardClicks(m, item, mi, t.stop)
	}
}

// clearItems hides the current menu items; systray cannot delete them.
func (t *systrayTray) clearItems() {
	if t.stop != nil {
		close(t.stop)
		t.stop = nil
	}
	for _, mi := range t.items {
		mi.Hide()
	}
	t.items = nil
}

func forwardClicks(m ContextMenu, item *menu.Item, mi *systray.MenuItem, stop chan struct{}) {
	for {
		select {
		case <-stop:
			return
		case <-mi.ClickedCh:
			debug("menu item clicked: ", item.ID())
			m.Activate(item.ID())
			syncItem(mi, item)
		}
	}
}

func syncItem(mi *systray.MenuItem, item *menu.Item) {
	mi.SetTitle(item.Title())
	if item.Checked() {
		mi.Check()
	} else {
		mi.Uncheck()
	}
	if item.Enabled() {
		mi.Enable()
	} else {
		mi.Disable()
	}
}

func (t *systrayTray) setTooltip(tooltip string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.tooltip = tooltip
	systray.SetTooltip(tooltip)
	return nil
}

// setVisible swaps in a transparent image; systray cannot hide its icon.
func (t *systrayTray) setVisible(visible bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.visible == visible {
		return nil
	}
	t.visible = visible
	if visible {
		systray.SetIcon(t.icon)
		return nil
	}
	blank, err := encodeIcon(nil)
	if err != nil {
		return osError(err)
	}
	systray.SetIcon(blank)
	return nil
}

// setShowMenuOnLeftClick is a no-op: systray always opens the menu on click.
func (t *systrayTray) setShowMenuOnLeftClick(bool) {}

func (t *systrayTray) rect() (Rect, bool) {
	return Rect{}, false
}

func (t *systrayTray) remove() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.clearItems()
	if blank, err := encodeIcon(nil); err == nil {
		systray.SetIcon(blank)
	}
	systray.SetTooltip("")
	active.Store(false)
	return nil
}

// encodeIcon renders icon as PNG for systray. A nil icon becomes a single
// transparent pixel.
func encodeIcon(icon *Icon) ([]byte, error) {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	if icon != nil && icon.Width() > 0 && icon.Height() > 0 {
		img = &image.NRGBA{
			Pix:    icon.RGBA(),
			Stride: 4 * int(icon.Width()),
			Rect:   image.Rect(0, 0, int(icon.Width()), int(icon.Height())),
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
