//go:build windows

package trayicon

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	shell32  = windows.NewLazySystemDLL("shell32.dll")
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")

	pAppendMenu             = user32.NewProc("AppendMenuW")
	pCreateIcon             = user32.NewProc("CreateIcon")
	pCreatePopupMenu        = user32.NewProc("CreatePopupMenu")
	pCreateWindowEx         = user32.NewProc("CreateWindowExW")
	pDefWindowProc          = user32.NewProc("DefWindowProcW")
	pDestroyIcon            = user32.NewProc("DestroyIcon")
	pDestroyMenu            = user32.NewProc("DestroyMenu")
	pDestroyWindow          = user32.NewProc("DestroyWindow")
	pDispatchMessage        = user32.NewProc("DispatchMessageW")
	pGetCursorPos           = user32.NewProc("GetCursorPos")
	pGetMessage             = user32.NewProc("GetMessageW")
	pKillTimer              = user32.NewProc("KillTimer")
	pPostMessage            = user32.NewProc("PostMessageW")
	pPostThreadMessage      = user32.NewProc("PostThreadMessageW")
	pRegisterClassEx        = user32.NewProc("RegisterClassExW")
	pRegisterWindowMessage  = user32.NewProc("RegisterWindowMessageW")
	pSetForegroundWindow    = user32.NewProc("SetForegroundWindow")
	pSetTimer               = user32.NewProc("SetTimer")
	pTrackPopupMenu         = user32.NewProc("TrackPopupMenu")
	pTranslateMessage       = user32.NewProc("TranslateMessage")
	pPeekMessage            = user32.NewProc("PeekMessageW")
	pGetModuleHandle        = kernel32.NewProc("GetModuleHandleW")
	pShellNotifyIcon        = shell32.NewProc("Shell_NotifyIconW")
	pShellNotifyIconGetRect = shell32.NewProc("Shell_NotifyIconGetRect")
)

const (
	wmNull          = 0x0000
	wmClose         = 0x0010
	wmQuit          = 0x0012
	wmTimer         = 0x0113
	wmMouseMove     = 0x0200
	wmLButtonDown   = 0x0201
	wmLButtonUp     = 0x0202
	wmLButtonDblClk = 0x0203
	wmRButtonDown   = 0x0204
	wmRButtonUp     = 0x0205
	wmRButtonDblClk = 0x0206
	wmMButtonDown   = 0x0207
	wmMButtonUp     = 0x0208
	wmMButtonDblClk = 0x0209
	wmUser          = 0x0400

	// wmUserTrayIcon is the callback message the shell sends icon
	// notifications with.
	wmUserTrayIcon = 6002

	pmNoRemove = 0x0000

	nimAdd    = 0x00000000
	nimModify = 0x00000001
	nimDelete = 0x00000002

	nifMessage = 0x00000001
	nifIcon    = 0x00000002
	nifTip     = 0x00000004

	mfString    = 0x00000000
	mfGrayed    = 0x00000001
	mfChecked   = 0x00000008
	mfSeparator = 0x00000800

	tpmReturnCmd   = 0x0100
	tpmBottomAlign = 0x0020

	wsOverlapped     = 0x00000000
	wsExNoActivate   = 0x08000000
	wsExTransparent  = 0x00000020
	wsExLayered      = 0x00080000
	wsExToolWindow   = 0x00000080
	cwUseDefault     = 0x80000000
	leaveTimerID     = 6003
	leaveTimerPeriod = 15 // ms
)

type point struct {
	X, Y int32
}

type msg struct {
	Hwnd     windows.Handle
	Message  uint32
	WParam   uintptr
	LParam   uintptr
	Time     uint32
	Pt       point
	LPrivate uint32
}

// https://learn.microsoft.com/en-us/windows/win32/api/shellapi/ns-shellapi-notifyicondataw
type notifyIconData struct {
	Size                       uint32
	Wnd                        windows.Handle
	ID, Flags, CallbackMessage uint32
	Icon                       windows.Handle
	Tip                        [128]uint16
	State, StateMask           uint32
	Info                       [256]uint16
	Timeout                    uint32
	InfoTitle                  [64]uint16
	InfoFlags                  uint32
	GuidItem                   windows.GUID
	BalloonIcon                windows.Handle
}

// https://learn.microsoft.com/en-us/windows/win32/api/shellapi/ns-shellapi-notifyiconidentifier
type notifyIconIdentifier struct {
	Size     uint32
	Wnd      windows.Handle
	ID       uint32
	GuidItem windows.GUID
}

// https://learn.microsoft.com/en-us/windows/win32/api/winuser/ns-winuser-wndclassexw
type wndClassEx struct {
	Size, Style                        uint32
	WndProc                            uintptr
	ClsExtra, WndExtra                 int32
	Instance, Icon, Cursor, Background windows.Handle
	MenuName, ClassName                *uint16
	IconSm                             windows.Handle
}

func (w *wndClassEx) register() error {
	w.Size = uint32(unsafe.Sizeof(*w))
	res, _, err := pRegisterClassEx.Call(uintptr(unsafe.Pointer(w)))
	if res == 0 {
		return err
	}
	return nil
}

// shellNotifyIcon calls Shell_NotifyIconW. Tests replace it.
var shellNotifyIcon = func(op uintptr, nid *notifyIconData) error {
	res, _, err := pShellNotifyIcon.Call(op, uintptr(unsafe.Pointer(nid)))
	if res == 0 {
		return err
	}
	return nil
}

func (nid *notifyIconData) call(op uintptr) error {
	nid.Size = uint32(unsafe.Sizeof(*nid))
	return shellNotifyIcon(op, nid)
}

func (nid *notifyIconData) setTip(tip string) {
	nid.Tip = [128]uint16{}
	if tip == "" {
		return
	}
	utf16, err := windows.UTF16FromString(tip)
	if err != nil {
		return
	}
	n := copy(nid.Tip[:len(nid.Tip)-1], utf16)
	nid.Tip[n] = 0
}

func cursorPosition() (Position, error) {
	var pt point
	res, _, err := pGetCursorPos.Call(uintptr(unsafe.Pointer(&pt)))
	if res == 0 {
		return Position{}, err
	}
	return Position{X: float64(pt.X), Y: float64(pt.Y)}, nil
}

func moduleHandle() windows.Handle {
	h, _, _ := pGetModuleHandle.Call(0)
	return windows.Handle(h)
}

// createHIcon converts RGBA pixels into an HICON. The AND mask is the
// inverted alpha channel, one byte per pixel.
func createHIcon(icon *Icon) (windows.Handle, error) {
	rgba := icon.RGBA()
	if len(rgba) == 0 {
		return 0, windows.ERROR_INVALID_PARAMETER
	}
	and := make([]byte, 0, len(rgba)/4)
	for i := 0; i < len(rgba); i += 4 {
		and = append(and, rgba[i+3]-0xff)
		rgba[i], rgba[i+2] = rgba[i+2], rgba[i]
	}
	h, _, err := pCreateIcon.Call(
		0,
		uintptr(icon.Width()),
		uintptr(icon.Height()),
		1,
		32,
		uintptr(unsafe.Pointer(&and[0])),
		uintptr(unsafe.Pointer(&rgba[0])),
	)
	if h == 0 {
		return 0, err
	}
	return windows.Handle(h), nil
}

func destroyHIcon(h windows.Handle) {
	if h != 0 {
		pDestroyIcon.Call(uintptr(h))
	}
}
