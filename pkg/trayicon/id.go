package trayicon

import (
	"strconv"

	"github.com/manifold/trayicon/pkg/counter"
)

var ids counter.Counter

// ID names a tray icon. It is assigned once when the icon is built and is
// carried by every event the icon emits.
type ID string

func nextID() ID {
	return ID(strconv.FormatUint(ids.Next(), 10))
}

func (id ID) String() string {
	return string(id)
}
