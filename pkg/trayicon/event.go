package trayicon

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// Position is a physical screen position.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is a physical size in pixels.
type Size struct {
	Width  uint32 `json:"width"`
	Height uint32 `json:"height"`
}

// Rect is the position and size of a tray icon on screen.
type Rect struct {
	Size     Size     `json:"size"`
	Position Position `json:"position"`
}

// MouseButton is the button that triggered an event.
type MouseButton int

const (
	Left MouseButton = iota
	Right
	Middle
)

var mouseButtonNames = [...]string{"Left", "Right", "Middle"}

func (b MouseButton) String() string {
	if int(b) < len(mouseButtonNames) {
		return mouseButtonNames[b]
	}
	return fmt.Sprintf("MouseButton(%d)", int(b))
}

func (b MouseButton) MarshalText() ([]byte, error) {
	if int(b) >= len(mouseButtonNames) {
		return nil, fmt.Errorf("unknown mouse button %d", int(b))
	}
	return []byte(b.String()), nil
}

func (b *MouseButton) UnmarshalText(text []byte) error {
	for i, name := range mouseButtonNames {
		if name == string(text) {
			*b = MouseButton(i)
			return nil
		}
	}
	return fmt.Errorf("unknown mouse button %q", text)
}

// MouseButtonState is the state of the button when the event fired.
type MouseButtonState int

const (
	Up MouseButtonState = iota
	Down
)

func (s MouseButtonState) String() string {
	switch s {
	case Up:
		return "Up"
	case Down:
		return "Down"
	}
	return fmt.Sprintf("MouseButtonState(%d)", int(s))
}

func (s MouseButtonState) MarshalText() ([]byte, error) {
	if s != Up && s != Down {
		return nil, fmt.Errorf("unknown mouse button state %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *MouseButtonState) UnmarshalText(text []byte) error {
	switch string(text) {
	case "Up":
		*s = Up
	case "Down":
		*s = Down
	default:
		return fmt.Errorf("unknown mouse button state %q", text)
	}
	return nil
}

// EventType is the "type" discriminator of serialized events.
type EventType string

const (
	TypeClick       EventType = "Click"
	TypeDoubleClick EventType = "DoubleClick"
	TypeEnter       EventType = "Enter"
	TypeMove        EventType = "Move"
	TypeLeave       EventType = "Leave"
)

// Event is one of ClickEvent, DoubleClickEvent, EnterEvent, MoveEvent or
// LeaveEvent.
type Event interface {
	// ID returns the id of the tray icon that emitted the event.
	ID() ID
	Type() EventType
	Info() EventInfo
	isEvent()
}

// EventInfo holds the fields every event carries.
type EventInfo struct {
	IconID   ID       `json:"id"`
	Position Position `json:"position"`
	Rect     Rect     `json:"rect"`
}

func (e EventInfo) ID() ID          { return e.IconID }
func (e EventInfo) Info() EventInfo { return e }
func (EventInfo) isEvent()          {}

// ClickEvent is a button press or release over the icon.
type ClickEvent struct {
	EventInfo
	Button      MouseButton      `json:"button"`
	ButtonState MouseButtonState `json:"buttonState"`
}

// DoubleClickEvent is a double click on the icon. Windows only.
type DoubleClickEvent struct {
	EventInfo
	Button MouseButton `json:"button"`
}

// EnterEvent is sent when the cursor enters the icon.
type EnterEvent struct {
	EventInfo
}

// MoveEvent is sent when the cursor moves over the icon.
type MoveEvent struct {
	EventInfo
}

// LeaveEvent is sent when the cursor leaves the icon.
type LeaveEvent struct {
	EventInfo
}

func (ClickEvent) Type() EventType       { return TypeClick }
func (DoubleClickEvent) Type() EventType { return TypeDoubleClick }
func (EnterEvent) Type() EventType       { return TypeEnter }
func (MoveEvent) Type() EventType        { return TypeMove }
func (LeaveEvent) Type() EventType       { return TypeLeave }

func (e ClickEvent) MarshalJSON() ([]byte, error) {
	type plain ClickEvent
	return marshalTagged(TypeClick, plain(e))
}

func (e DoubleClickEvent) MarshalJSON() ([]byte, error) {
	type plain DoubleClickEvent
	return marshalTagged(TypeDoubleClick, plain(e))
}

func (e EnterEvent) MarshalJSON() ([]byte, error) {
	return marshalTagged(TypeEnter, e.EventInfo)
}

func (e MoveEvent) MarshalJSON() ([]byte, error) {
	return marshalTagged(TypeMove, e.EventInfo)
}

func (e LeaveEvent) MarshalJSON() ([]byte, error) {
	return marshalTagged(TypeLeave, e.EventInfo)
}

// marshalTagged encodes v as an object and prepends the "type" member.
func marshalTagged(typ EventType, v interface{}) ([]byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(body)+len(typ)+12)
	out = append(out, `{"type":"`...)
	out = append(out, typ...)
	out = append(out, '"')
	if len(body) > 2 {
		out = append(out, ',')
	}
	return append(out, body[1:]...), nil
}

// UnmarshalEvent decodes an event serialized by MarshalJSON, selecting the
// variant from its "type" field.
func UnmarshalEvent(data []byte) (Event, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid event json")
	}
	typ := gjson.GetBytes(data, "type")
	if !typ.Exists() {
		return nil, fmt.Errorf("event json has no type")
	}
	switch EventType(typ.String()) {
	case TypeClick:
		var e ClickEvent
		if err := unmarshalPlain(data, &e); err != nil {
			return nil, err
		}
		return e, nil
	case TypeDoubleClick:
		var e DoubleClickEvent
		if err := unmarshalPlain(data, &e); err != nil {
			return nil, err
		}
		return e, nil
	case TypeEnter:
		var e EnterEvent
		if err := unmarshalPlain(data, &e); err != nil {
			return nil, err
		}
		return e, nil
	case TypeMove:
		var e MoveEvent
		if err := unmarshalPlain(data, &e); err != nil {
			return nil, err
		}
		return e, nil
	case TypeLeave:
		var e LeaveEvent
		if err := unmarshalPlain(data, &e); err != nil {
			return nil, err
		}
		return e, nil
	default:
		return nil, fmt.Errorf("unknown event type %q", typ.String())
	}
}

func unmarshalPlain(data []byte, v interface{}) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode event: %w", err)
	}
	return nil
}
