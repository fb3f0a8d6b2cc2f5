package trayicon

import (
	"sync"

	"github.com/manifold/trayicon/pkg/dispatch"
)

// EventReceiver is the queue tray icon events land in when no handler is set.
type EventReceiver = dispatch.Queue[Event]

var events = sync.OnceValue(dispatch.New[Event])

// Receiver returns the process-wide tray event queue. The same queue is
// returned on every call. It receives nothing once a non-nil handler has been
// installed with SetEventHandler.
func Receiver() *EventReceiver {
	return events().Receiver()
}

// SetEventHandler installs fn as the process-wide tray event handler. fn runs
// synchronously on the thread the OS delivers notifications on and must not
// block for long.
//
// The handler slot is write-once. Only the first call takes effect, and any
// event sent before the first call locks the slot to "no handler". Later calls
// are silently ignored. Passing nil keeps events flowing to Receiver.
func SetEventHandler(fn func(Event)) {
	events().SetHandler(fn)
}

func send(e Event) {
	events().Send(e)
}
