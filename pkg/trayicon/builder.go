package trayicon

// Builder configures a tray icon before it is added to the tray.
type Builder struct {
	id    ID
	attrs Attributes
}

// NewBuilder returns a builder with a freshly allocated id and default
// attributes.
func NewBuilder() *Builder {
	return &Builder{
		id:    nextID(),
		attrs: DefaultAttributes(),
	}
}

// WithID sets the id the tray icon will be built with.
func (b *Builder) WithID(id ID) *Builder {
	b.id = id
	return b
}

// WithMenu sets the context menu.
func (b *Builder) WithMenu(m ContextMenu) *Builder {
	b.attrs.Menu = m
	return b
}

// WithIcon sets the icon image.
func (b *Builder) WithIcon(icon *Icon) *Builder {
	b.attrs.Icon = icon
	return b
}

// WithTooltip sets the tooltip.
func (b *Builder) WithTooltip(tooltip string) *Builder {
	b.attrs.Tooltip = tooltip
	return b
}

// WithMenuOnLeftClick sets whether left click shows the menu. Defaults to
// true.
func (b *Builder) WithMenuOnLeftClick(enable bool) *Builder {
	b.attrs.MenuOnLeftClick = enable
	return b
}

// ID returns the id the tray icon will be built with.
func (b *Builder) ID() ID {
	return b.id
}

// Build creates the tray icon and adds it to the tray.
func (b *Builder) Build() (*TrayIcon, error) {
	return WithID(b.id, b.attrs)
}
