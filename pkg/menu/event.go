package menu

import (
	"sync"

	"github.com/manifold/trayicon/pkg/dispatch"
)

// Event reports that the menu item ID was activated.
type Event struct {
	ID ID `json:"id"`
}

// EventReceiver is the queue menu events land in when no handler is set.
type EventReceiver = dispatch.Queue[Event]

var events = sync.OnceValue(dispatch.New[Event])

// Receiver returns the process-wide menu event queue. It receives nothing
// once a non-nil handler has been installed with SetEventHandler.
func Receiver() *EventReceiver {
	return events().Receiver()
}

// SetEventHandler installs fn as the process-wide menu event handler. Only
// the first call takes effect; later calls are ignored.
func SetEventHandler(fn func(Event)) {
	events().SetHandler(fn)
}

func send(e Event) {
	events().Send(e)
}
