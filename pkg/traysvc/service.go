// Package traysvc runs a configured tray icon as a daemon service.
package traysvc

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/mitchellh/hashstructure"
	"github.com/skratchdot/open-golang/open"
	"github.com/spf13/afero"

	"github.com/manifold/trayicon/pkg/config"
	"github.com/manifold/trayicon/pkg/console"
	"github.com/manifold/trayicon/pkg/daemon"
	"github.com/manifold/trayicon/pkg/logging"
	"github.com/manifold/trayicon/pkg/menu"
	"github.com/manifold/trayicon/pkg/trayicon"
)

// Tray is the part of *trayicon.TrayIcon the service drives.
type Tray interface {
	ID() trayicon.ID
	SetIcon(icon *trayicon.Icon) error
	SetMenu(m trayicon.ContextMenu)
	SetTooltip(tooltip string) error
	SetVisible(visible bool) error
	SetShowMenuOnLeftClick(enable bool)
	Close() error
}

// Console colors.
const (
	trayColor = 0
	menuColor = 1
)

type Service struct {
	Config  *config.Config
	Fs      afero.Fs
	Console *console.Console
	Logger  logging.Logger
	Daemon  *daemon.Daemon

	// NewTray creates the tray icon, generating an id when id is empty. It
	// defaults to building a *trayicon.TrayIcon and must run on the event
	// loop thread.
	NewTray func(id trayicon.ID, attrs trayicon.Attributes) (Tray, error)
	// Open launches a file or URL. Defaults to open.Start.
	Open func(target string) error
	// Quit stops the event loop. Defaults to trayicon.Quit.
	Quit func()

	mu       sync.Mutex
	tray     Tray
	menu     *menu.Menu
	items    map[menu.ID]config.MenuItem
	menuHash uint64
}

func buildTray(id trayicon.ID, attrs trayicon.Attributes) (Tray, error) {
	var (
		tray *trayicon.TrayIcon
		err  error
	)
	if id == "" {
		tray, err = trayicon.New(attrs)
	} else {
		tray, err = trayicon.WithID(id, attrs)
	}
	if err != nil {
		return nil, err
	}
	return tray, nil
}

// Start creates the tray icon from Config. In handler mode it installs the
// process-wide event handlers first, so it must be called before any tray
// or menu event is sent.
func (s *Service) Start() error {
	if s.Fs == nil {
		s.Fs = afero.NewOsFs()
	}
	if s.NewTray == nil {
		s.NewTray = buildTray
	}
	if s.Open == nil {
		s.Open = open.Start
	}
	if s.Quit == nil {
		s.Quit = trayicon.Quit
	}

	if s.Config.Mode == config.ModeHandler {
		trayicon.SetEventHandler(s.handleTrayEvent)
		menu.SetEventHandler(s.handleMenuEvent)
	}

	icon, err := LoadIcon(s.Fs, s.Config.Icon)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.buildMenu(s.Config.Menu)

	attrs := trayicon.DefaultAttributes()
	attrs.Tooltip = s.Config.Tooltip
	attrs.Icon = icon
	attrs.Menu = s.menu
	attrs.MenuOnLeftClick = s.Config.MenuOnLeftClick
	tray, err := s.NewTray(trayicon.ID(s.Config.ID), attrs)
	if err != nil {
		return err
	}
	if !s.Config.Visible {
		if err := tray.SetVisible(false); err != nil {
			tray.Close()
			return err
		}
	}
	s.tray = tray
	logging.Info(s.Logger, "tray icon ", tray.ID(), " created in ", s.Config.Mode, " mode")
	return nil
}

// buildMenu must be called with s.mu held.
func (s *Service) buildMenu(items []config.MenuItem) {
	s.menu = menu.New()
	s.items = make(map[menu.ID]config.MenuItem)
	for _, item := range items {
		if item.Separator {
			s.menu.Append(menu.Separator())
			continue
		}
		var mi *menu.Item
		if item.Checkable {
			mi = menu.NewCheckItem(menu.ID(item.ID), item.Title, item.Checked, !item.Disabled)
		} else if item.ID != "" {
			mi = menu.NewItemWithID(menu.ID(item.ID), item.Title, !item.Disabled)
		} else {
			mi = menu.NewItem(item.Title, !item.Disabled)
		}
		mi.SetTooltip(item.Tooltip)
		s.menu.Append(mi)
		s.items[mi.ID()] = item
	}
	s.menuHash, _ = hashstructure.Hash(items, nil)
}

// Serve drains the event queues in poll mode. In handler mode events
// arrive on the platform thread and Serve only waits for shutdown.
func (s *Service) Serve(ctx context.Context) {
	if s.Config.Mode == config.ModeHandler {
		<-ctx.Done()
		return
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for {
			e, err := trayicon.Receiver().RecvContext(ctx)
			if err != nil {
				return
			}
			s.handleTrayEvent(e)
		}
	}()
	go func() {
		defer wg.Done()
		for {
			e, err := menu.Receiver().RecvContext(ctx)
			if err != nil {
				return
			}
			s.handleMenuEvent(e)
		}
	}()
	wg.Wait()
}

func (s *Service) TerminateDaemon() error {
	s.mu.Lock()
	tray := s.tray
	s.tray = nil
	s.mu.Unlock()

	var err error
	if tray != nil {
		err = tray.Close()
	}
	if s.Quit != nil {
		s.Quit()
	}
	return err
}

func (s *Service) handleTrayEvent(e trayicon.Event) {
	b, err := json.Marshal(e)
	if err != nil {
		s.Console.Error("tray", err)
		return
	}
	s.Console.Print("tray", trayColor, string(b))
}

func (s *Service) handleMenuEvent(e menu.Event) {
	s.mu.Lock()
	item, ok := s.items[e.ID]
	var checked bool
	if mi := s.menu.Item(e.ID); mi != nil {
		checked = mi.Checked()
	}
	s.mu.Unlock()
	if !ok {
		logging.Debug(s.Logger, "event for unknown menu item: ", e.ID)
		return
	}

	if item.Checkable {
		s.Console.Printf("menu", menuColor, "%s (checked: %v)", item.Title, checked)
	} else {
		s.Console.Print("menu", menuColor, item.Title)
	}
	if item.Open != "" {
		if err := s.Open(item.Open); err != nil {
			s.Console.Error("menu", err)
		}
	}
	if item.Action == config.ActionQuit {
		if s.Daemon != nil {
			s.Daemon.Terminate()
			return
		}
		s.TerminateDaemon()
	}
}

// Apply updates the running tray to match cfg. The event mode is fixed at
// Start because the handler slot can only be set once.
func (s *Service) Apply(cfg *config.Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tray == nil {
		return
	}
	old := s.Config
	s.Config = cfg

	if cfg.Mode != old.Mode {
		logging.Info(s.Logger, "mode change to ", cfg.Mode, " needs a restart")
	}
	if cfg.Tooltip != old.Tooltip {
		s.report(s.tray.SetTooltip(cfg.Tooltip))
	}
	if cfg.Icon != old.Icon {
		icon, err := LoadIcon(s.Fs, cfg.Icon)
		if err != nil {
			s.Console.Error("config", err)
		} else {
			s.report(s.tray.SetIcon(icon))
		}
	}
	if cfg.Visible != old.Visible {
		s.report(s.tray.SetVisible(cfg.Visible))
	}
	if cfg.MenuOnLeftClick != old.MenuOnLeftClick {
		s.tray.SetShowMenuOnLeftClick(cfg.MenuOnLeftClick)
	}
	if h, _ := hashstructure.Hash(cfg.Menu, nil); h != s.menuHash {
		s.buildMenu(cfg.Menu)
		s.tray.SetMenu(s.menu)
	}
}

func (s *Service) report(err error) {
	if err != nil {
		s.Console.Error("tray", err)
	}
}
