//go:build windows

package trayicon

import (
	"errors"
	"runtime"
	"unsafe"

	"go.uber.org/atomic"
	"golang.org/x/sys/windows"
)

// loopThread is the id of the thread running Run, or 0.
var loopThread atomic.Uint32

// Run locks the calling goroutine to its thread, calls onReady and pumps
// window messages until Quit is called. Tray icons must be created on this
// thread, typically from onReady.
func Run(onReady func()) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if !loopThread.CompareAndSwap(0, windows.GetCurrentThreadId()) {
		return errors.New("event loop already running")
	}
	defer loopThread.Store(0)

	// make sure the thread has a message queue so Quit works from onReady
	var m msg
	pPeekMessage.Call(uintptr(unsafe.Pointer(&m)), 0, wmUser, wmUser, pmNoRemove)

	if onReady != nil {
		onReady()
	}

	for {
		r, _, err := pGetMessage.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0)
		switch int32(r) {
		case -1:
			return osError(err)
		case 0:
			return nil
		}
		pTranslateMessage.Call(uintptr(unsafe.Pointer(&m)))
		pDispatchMessage.Call(uintptr(unsafe.Pointer(&m)))
	}
}

// Quit stops the loop started by Run. It may be called from any goroutine.
func Quit() {
	if thread := loopThread.Load(); thread != 0 {
		pPostThreadMessage.Call(uintptr(thread), wmQuit, 0, 0)
	}
}
