//go:build windows

package trayicon

import (
	"fmt"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/manifold/trayicon/pkg/counter"
)

const windowClassName = "trayicon_window_class"

var (
	classOnce sync.Once
	classErr  error

	wndProcCallback = windows.NewCallback(wndProc)
	taskbarCreated  uint32

	// trays maps window handles to their tray so wndProc can find it.
	trays sync.Map

	internalIDs counter.Counter
)

func registerWindowClass() error {
	classOnce.Do(func() {
		name, err := windows.UTF16PtrFromString(windowClassName)
		if err != nil {
			classErr = err
			return
		}
		wc := wndClassEx{
			WndProc:   wndProcCallback,
			Instance:  moduleHandle(),
			ClassName: name,
		}
		if err := wc.register(); err != nil {
			classErr = err
			return
		}
		msgName, _ := windows.UTF16PtrFromString("TaskbarCreated")
		r, _, _ := pRegisterWindowMessage.Call(uintptr(unsafe.Pointer(msgName)))
		taskbarCreated = uint32(r)
	})
	return classErr
}

// winTray is a tray icon backed by a hidden window owned by the thread that
// created it. wndProc reads its state while the owning TrayIcon writes it, so
// every field below mu is guarded by it.
type winTray struct {
	id       ID
	hwnd     windows.Handle
	uid      uint32
	threadID uint32

	mu              sync.Mutex
	hicon           windows.Handle
	tooltip         string
	menu            ContextMenu
	menuOnLeftClick bool
	visible         bool
	entered         bool
}

func newNativeTray(id ID, attrs Attributes) (platformTray, error) {
	thread := windows.GetCurrentThreadId()
	if owner := loopThread.Load(); owner != 0 && owner != thread {
		return nil, ErrNotMainThread
	}
	if err := registerWindowClass(); err != nil {
		return nil, osError(fmt.Errorf("register window class: %w", err))
	}

	className, _ := windows.UTF16PtrFromString(windowClassName)
	windowName, _ := windows.UTF16PtrFromString("trayicon_" + string(id))
	hwnd, _, err := pCreateWindowEx.Call(
		wsExNoActivate|wsExTransparent|wsExLayered|wsExToolWindow,
		uintptr(unsafe.Pointer(className)),
		uintptr(unsafe.Pointer(windowName)),
		wsOverlapped,
		cwUseDefault, 0, cwUseDefault, 0,
		0, 0,
		uintptr(moduleHandle()),
		0,
	)
	if hwnd == 0 {
		return nil, osError(fmt.Errorf("create window: %w", err))
	}

	t := &winTray{
		id:              id,
		hwnd:            windows.Handle(hwnd),
		uid:             uint32(internalIDs.Next()),
		threadID:        thread,
		tooltip:         attrs.Tooltip,
		menu:            attrs.Menu,
		menuOnLeftClick: attrs.MenuOnLeftClick,
		visible:         true,
	}
	if attrs.Icon != nil {
		h, err := createHIcon(attrs.Icon)
		if err != nil {
			pDestroyWindow.Call(hwnd)
			return nil, osError(fmt.Errorf("create icon: %w", err))
		}
		t.hicon = h
	}

	trays.Store(t.hwnd, t)
	if err := t.add(); err != nil {
		trays.Delete(t.hwnd)
		destroyHIcon(t.hicon)
		pDestroyWindow.Call(hwnd)
		return nil, osError(fmt.Errorf("register tray icon: %w", err))
	}
	return t, nil
}

func (t *winTray) data() notifyIconData {
	nid := notifyIconData{
		Wnd:             t.hwnd,
		ID:              t.uid,
		Flags:           nifMessage | nifTip,
		CallbackMessage: wmUserTrayIcon,
	}
	if t.hicon != 0 {
		nid.Flags |= nifIcon
		nid.Icon = t.hicon
	}
	nid.setTip(t.tooltip)
	return nid
}

// add registers the icon with the shell. Callers hold mu, or own t
// exclusively.
func (t *winTray) add() error {
	nid := t.data()
	return nid.call(nimAdd)
}

func (t *winTray) modify() error {
	if !t.visible {
		return nil
	}
	nid := t.data()
	return nid.call(nimModify)
}

func (t *winTray) setIcon(icon *Icon) error {
	var h windows.Handle
	if icon != nil {
		var err error
		if h, err = createHIcon(icon); err != nil {
			return osError(err)
		}
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	old := t.hicon
	t.hicon = h
	if t.visible && h == 0 {
		// NIM_MODIFY without NIF_ICON keeps the old image, so re-add.
		nid := notifyIconData{Wnd: t.hwnd, ID: t.uid}
		nid.call(nimDelete)
		if err := t.add(); err != nil {
			t.hicon = old
			if old != 0 {
				t.add()
			}
			return osError(err)
		}
	} else if err := t.modify(); err != nil {
		t.hicon = old
		destroyHIcon(h)
		return osError(err)
	}
	destroyHIcon(old)
	return nil
}

func (t *winTray) setMenu(m ContextMenu) {
	t.mu.Lock()
	t.menu = m
	t.mu.Unlock()
}

func (t *winTray) setTooltip(tooltip string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.tooltip = tooltip
	return osError(t.modify())
}

func (t *winTray) setVisible(visible bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.visible == visible {
		return nil
	}
	if visible {
		if err := t.add(); err != nil {
			return osError(err)
		}
	} else {
		nid := notifyIconData{Wnd: t.hwnd, ID: t.uid}
		if err := nid.call(nimDelete); err != nil {
			return osError(err)
		}
	}
	t.visible = visible
	return nil
}

func (t *winTray) setShowMenuOnLeftClick(enable bool) {
	t.mu.Lock()
	t.menuOnLeftClick = enable
	t.mu.Unlock()
}

func (t *winTray) rect() (Rect, bool) {
	nii := notifyIconIdentifier{Wnd: t.hwnd, ID: t.uid}
	nii.Size = uint32(unsafe.Sizeof(nii))
	var r windows.Rect
	hr, _, _ := pShellNotifyIconGetRect.Call(
		uintptr(unsafe.Pointer(&nii)),
		uintptr(unsafe.Pointer(&r)),
	)
	if hr != 0 {
		return Rect{}, false
	}
	return Rect{
		Size: Size{
			Width:  uint32(r.Right - r.Left),
			Height: uint32(r.Bottom - r.Top),
		},
		Position: Position{X: float64(r.Left), Y: float64(r.Top)},
	}, true
}

func (t *winTray) remove() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	var err error
	if t.visible {
		nid := notifyIconData{Wnd: t.hwnd, ID: t.uid}
		err = nid.call(nimDelete)
		t.visible = false
	}
	destroyHIcon(t.hicon)
	t.hicon = 0
	trays.Delete(t.hwnd)

	// Windows may only be destroyed by their owning thread.
	if windows.GetCurrentThreadId() == t.threadID {
		pDestroyWindow.Call(uintptr(t.hwnd))
	} else {
		pPostMessage.Call(uintptr(t.hwnd), wmClose, 0, 0)
	}
	return osError(err)
}

func wndProc(hwnd uintptr, message uint32, wParam, lParam uintptr) uintptr {
	v, ok := trays.Load(windows.Handle(hwnd))
	if !ok {
		r, _, _ := pDefWindowProc.Call(hwnd, uintptr(message), wParam, lParam)
		return r
	}
	t := v.(*winTray)

	switch {
	case message == wmUserTrayIcon:
		t.handleNotification(uint32(lParam))
		return 0
	case message == wmTimer && wParam == leaveTimerID:
		t.checkLeave()
		return 0
	case message == taskbarCreated && taskbarCreated != 0:
		t.mu.Lock()
		if t.visible {
			if err := t.add(); err != nil {
				debug("re-adding tray icon after explorer restart: ", err)
			}
		}
		t.mu.Unlock()
		return 0
	}
	r, _, _ := pDefWindowProc.Call(hwnd, uintptr(message), wParam, lParam)
	return r
}

func (t *winTray) handleNotification(event uint32) {
	pos, err := cursorPosition()
	if err != nil {
		debug("GetCursorPos: ", err)
	}
	rect, _ := t.rect()
	info := EventInfo{IconID: t.id, Position: pos, Rect: rect}

	switch event {
	case wmMouseMove:
		t.mu.Lock()
		entered := t.entered
		t.entered = true
		t.mu.Unlock()
		if entered {
			send(MoveEvent{info})
			return
		}
		pSetTimer.Call(uintptr(t.hwnd), leaveTimerID, leaveTimerPeriod, 0)
		send(EnterEvent{info})
	case wmLButtonDown:
		send(ClickEvent{EventInfo: info, Button: Left, ButtonState: Down})
	case wmRButtonDown:
		send(ClickEvent{EventInfo: info, Button: Right, ButtonState: Down})
	case wmMButtonDown:
		send(ClickEvent{EventInfo: info, Button: Middle, ButtonState: Down})
	case wmLButtonUp:
		send(ClickEvent{EventInfo: info, Button: Left, ButtonState: Up})
		t.mu.Lock()
		show := t.menuOnLeftClick
		t.mu.Unlock()
		if show {
			t.showMenu(pos)
		}
	case wmRButtonUp:
		send(ClickEvent{EventInfo: info, Button: Right, ButtonState: Up})
		t.showMenu(pos)
	case wmMButtonUp:
		send(ClickEvent{EventInfo: info, Button: Middle, ButtonState: Up})
	case wmLButtonDblClk:
		send(DoubleClickEvent{EventInfo: info, Button: Left})
	case wmRButtonDblClk:
		send(DoubleClickEvent{EventInfo: info, Button: Right})
	case wmMButtonDblClk:
		send(DoubleClickEvent{EventInfo: info, Button: Middle})
	}
}

// checkLeave runs on the leave timer while the cursor is over the icon.
func (t *winTray) checkLeave() {
	pos, err := cursorPosition()
	if err != nil {
		return
	}
	rect, ok := t.rect()
	if !ok {
		return
	}
	inside := pos.X >= rect.Position.X && pos.Y >= rect.Position.Y &&
		pos.X < rect.Position.X+float64(rect.Size.Width) &&
		pos.Y < rect.Position.Y+float64(rect.Size.Height)
	if inside {
		return
	}

	t.mu.Lock()
	t.entered = false
	t.mu.Unlock()
	pKillTimer.Call(uintptr(t.hwnd), leaveTimerID)
	send(LeaveEvent{EventInfo{IconID: t.id, Position: pos, Rect: rect}})
}

func (t *winTray) showMenu(pos Position) {
	t.mu.Lock()
	m := t.menu
	t.mu.Unlock()
	if m == nil {
		return
	}
	items := m.Items()
	if len(items) == 0 {
		return
	}

	hmenu, _, err := pCreatePopupMenu.Call()
	if hmenu == 0 {
		debug("CreatePopupMenu: ", err)
		return
	}
	defer pDestroyMenu.Call(hmenu)

	// Command ids are 1-based indexes into items; 0 means nothing picked.
	for i, item := range items {
		if item.IsSeparator() {
			pAppendMenu.Call(hmenu, mfSeparator, 0, 0)
			continue
		}
		flags := uintptr(mfString)
		if !item.Enabled() {
			flags |= mfGrayed
		}
		if item.Checked() {
			flags |= mfChecked
		}
		title, _ := windows.UTF16PtrFromString(item.Title())
		pAppendMenu.Call(hmenu, flags, uintptr(i+1), uintptr(unsafe.Pointer(title)))
	}

	pSetForegroundWindow.Call(uintptr(t.hwnd))
	cmd, _, _ := pTrackPopupMenu.Call(
		hmenu,
		tpmReturnCmd|tpmBottomAlign,
		uintptr(int32(pos.X)),
		uintptr(int32(pos.Y)),
		0,
		uintptr(t.hwnd),
		0,
	)
	pPostMessage.Call(uintptr(t.hwnd), wmNull, 0, 0)

	if cmd == 0 || int(cmd) > len(items) {
		return
	}
	m.Activate(items[cmd-1].ID())
}
