package trayicon

import (
	"sync"

	"github.com/manifold/trayicon/pkg/logging"
	"github.com/manifold/trayicon/pkg/menu"
)

// ContextMenu is a menu shown when the tray icon is clicked. *menu.Menu
// implements it.
type ContextMenu interface {
	Items() []*menu.Item
	Activate(id menu.ID) bool
}

// platformTray owns the native resources of one tray icon. Calls are
// serialized by the owning TrayIcon except rect, which may run alongside
// other rect calls.
type platformTray interface {
	setIcon(icon *Icon) error
	setMenu(m ContextMenu)
	setTooltip(tooltip string) error
	setVisible(visible bool) error
	setShowMenuOnLeftClick(enable bool)
	rect() (Rect, bool)
	remove() error
}

// newPlatformTray creates and registers the native tray icon.
var newPlatformTray = newNativeTray

var (
	loggerMu sync.RWMutex
	logger   logging.DebugLogger
)

// SetLogger sets where platform diagnostics are logged. Nothing is logged by
// default.
func SetLogger(l logging.DebugLogger) {
	loggerMu.Lock()
	logger = l
	loggerMu.Unlock()
}

func debug(args ...interface{}) {
	loggerMu.RLock()
	l := logger
	loggerMu.RUnlock()
	logging.Debug(l, args...)
}
