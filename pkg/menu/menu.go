// Package menu provides the context menu attached to tray icons and the
// process-wide stream of menu activation events.
package menu

import "sync"

// Menu is an ordered list of items.
type Menu struct {
	mu    sync.RWMutex
	items []*Item
}

// New returns a menu holding items.
func New(items ...*Item) *Menu {
	m := &Menu{}
	m.Append(items...)
	return m
}

// Append adds items to the end of the menu.
func (m *Menu) Append(items ...*Item) {
	m.mu.Lock()
	m.items = append(m.items, items...)
	m.mu.Unlock()
}

// Items returns a snapshot of the menu's items.
func (m *Menu) Items() []*Item {
	m.mu.RLock()
	defer m.mu.RUnlock()
	items := make([]*Item, len(m.items))
	copy(items, m.items)
	return items
}

// Item returns the item with the given id, or nil.
func (m *Menu) Item(id ID) *Item {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, item := range m.items {
		if item.id == id {
			return item
		}
	}
	return nil
}

// Activate is called by platform trays when the user picks an item. Check
// items flip their state before the event is sent. Unknown, disabled and
// separator items are ignored.
func (m *Menu) Activate(id ID) bool {
	item := m.Item(id)
	if item == nil || item.separator || !item.Enabled() {
		return false
	}
	if item.checkable {
		item.SetChecked(!item.Checked())
	}
	send(Event{ID: id})
	return true
}
