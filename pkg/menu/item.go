package menu

import (
	"strconv"
	"sync"

	"github.com/manifold/trayicon/pkg/counter"
)

var ids counter.Counter

// ID identifies a menu item in activation events.
type ID string

// Item is a single entry of a context menu. Item state may be changed at any
// time; platform trays pick changes up the next time the menu is shown or
// attached.
type Item struct {
	id        ID
	separator bool
	checkable bool

	mu      sync.RWMutex
	title   string
	tooltip string
	enabled bool
	checked bool
}

// NewItem returns a plain item with a generated id.
func NewItem(title string, enabled bool) *Item {
	return NewItemWithID(nextID(), title, enabled)
}

// NewItemWithID returns a plain item with the given id.
func NewItemWithID(id ID, title string, enabled bool) *Item {
	return &Item{id: id, title: title, enabled: enabled}
}

// NewCheckItem returns an item whose checked state toggles on activation.
func NewCheckItem(id ID, title string, checked, enabled bool) *Item {
	if id == "" {
		id = nextID()
	}
	return &Item{id: id, title: title, enabled: enabled, checked: checked, checkable: true}
}

// Separator returns a separator line.
func Separator() *Item {
	return &Item{id: nextID(), separator: true}
}

func nextID() ID {
	return ID(strconv.FormatUint(ids.Next(), 10))
}

func (i *Item) ID() ID { return i.id }

func (i *Item) IsSeparator() bool { return i.separator }

func (i *Item) IsCheckable() bool { return i.checkable }

func (i *Item) Title() string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.title
}

func (i *Item) SetTitle(title string) {
	i.mu.Lock()
	i.title = title
	i.mu.Unlock()
}

func (i *Item) Tooltip() string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.tooltip
}

func (i *Item) SetTooltip(tooltip string) {
	i.mu.Lock()
	i.tooltip = tooltip
	i.mu.Unlock()
}

func (i *Item) Enabled() bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.enabled
}

func (i *Item) SetEnabled(enabled bool) {
	i.mu.Lock()
	i.enabled = enabled
	i.mu.Unlock()
}

func (i *Item) Checked() bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.checked
}

func (i *Item) SetChecked(checked bool) {
	i.mu.Lock()
	i.checked = checked
	i.mu.Unlock()
}
