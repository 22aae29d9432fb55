// Package drag implements the drag-status protocol: a small state
// machine that carries a project id from a source view to a target view
// over terminal mouse events (press, motion, release), the TUI analog
// of DOM drag events.
//
// The machine per gesture is:
//
//	Idle → Dragging → (Hovering ⇄ Dragging) → Dropped|Cancelled → Idle
package drag

// FormatText is the only payload format targets accept. Any other
// declared format (e.g. "Files") is ignored by the accept check.
const FormatText = "text/plain"

// Effect declares what a completed drop means to the UI.
type Effect string

const (
	EffectNone Effect = ""
	// EffectMove signals a relocation, not a copy.
	EffectMove Effect = "move"
)

// Transfer is the event-scoped carrier of the dragged payload. It holds
// a single field: a declared format and its string data.
type Transfer struct {
	format string
	data   string
	effect Effect
}

// NewTransfer creates an empty transfer channel for one gesture.
func NewTransfer() *Transfer {
	return &Transfer{}
}

// SetData attaches the payload under the given format, replacing any
// previous payload.
func (t *Transfer) SetData(format, data string) {
	t.format = format
	t.data = data
}

// Data returns the payload if the declared format matches exactly,
// otherwise the empty string.
func (t *Transfer) Data(format string) string {
	if t.format != format {
		return ""
	}
	return t.data
}

// Format returns the declared payload format.
func (t *Transfer) Format() string {
	return t.format
}

// SetEffect marks the allowed transfer effect.
func (t *Transfer) SetEffect(e Effect) {
	t.effect = e
}

// Effect returns the allowed transfer effect.
func (t *Transfer) Effect() Effect {
	return t.effect
}

// Event is delivered to sources and targets at each protocol step.
// A target accepts the hovered payload by calling PreventDefault.
type Event struct {
	X, Y     int
	Transfer *Transfer

	defaultPrevented bool
}

// PreventDefault suppresses the environment's default "disallow drop"
// behavior, accepting the payload.
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether the event was accepted.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// Source is a draggable view. DragEnd is a required hook but carries no
// state change in this system; cleanup is left to the rendering layer.
type Source interface {
	DragStart(e *Event)
	DragEnd(e *Event)
}

// Target is a drop zone. Each target instance is permanently bound to
// one status value at construction; the binding lives on the concrete
// type, not this interface.
type Target interface {
	DragOver(e *Event)
	DragLeave(e *Event)
	Drop(e *Event)
}

// State identifies where a gesture is in the protocol.
type State int

const (
	StateIdle State = iota
	StateDragging
	StateHovering
)

// Gesture drives one drag from start to drop or cancel.
// The zero value is not usable; call NewGesture.
type Gesture struct {
	state    State
	transfer *Transfer
	source   Source
	target   Target
	accepted bool
}

// NewGesture returns an idle gesture.
func NewGesture() *Gesture {
	return &Gesture{}
}

// State returns the current protocol state.
func (g *Gesture) State() State {
	return g.state
}

// Dragging reports whether a gesture is in flight.
func (g *Gesture) Dragging() bool {
	return g.state != StateIdle
}

// Transfer returns the in-flight transfer channel, nil when idle.
func (g *Gesture) Transfer() *Transfer {
	return g.transfer
}

// Start begins a gesture from src. The source attaches its payload to
// the transfer during DragStart. A nil transfer means the environment
// provides no transfer channel: the start is a silent no-op.
func (g *Gesture) Start(src Source, transfer *Transfer, x, y int) {
	if g.state != StateIdle || src == nil {
		return
	}
	if transfer == nil {
		return
	}
	g.source = src
	g.transfer = transfer
	src.DragStart(&Event{X: x, Y: y, Transfer: transfer})
	g.state = StateDragging
}

// MoveTo reports the target currently under the pointer; nil means the
// pointer is over no drop zone. Crossing a target boundary emits
// DragLeave on the old target and DragOver on the new one; staying on
// the same target re-emits DragOver, mirroring repeated hover events.
func (g *Gesture) MoveTo(t Target, x, y int) {
	if g.state == StateIdle {
		return
	}

	if t == g.target {
		if t != nil {
			g.accepted = g.over(t, x, y)
		}
		return
	}

	if g.target != nil {
		g.target.DragLeave(&Event{X: x, Y: y, Transfer: g.transfer})
	}

	g.target = t
	g.accepted = false
	if t == nil {
		g.state = StateDragging
		return
	}
	g.accepted = g.over(t, x, y)
	g.state = StateHovering
}

// Drop completes the gesture. The drop handler fires only on a target
// that accepted the payload during hover; an unaccepted or targetless
// release cancels instead. Either way the source's end hook runs and
// the gesture returns to idle.
func (g *Gesture) Drop(x, y int) {
	if g.state == StateIdle {
		return
	}

	if g.state == StateHovering && g.target != nil {
		if g.accepted {
			g.target.Drop(&Event{X: x, Y: y, Transfer: g.transfer})
		} else {
			g.target.DragLeave(&Event{X: x, Y: y, Transfer: g.transfer})
		}
	}

	g.source.DragEnd(&Event{X: x, Y: y, Transfer: g.transfer})
	g.reset()
}

// Cancel aborts the gesture without a drop, clearing any hovered
// target's receptive marker.
func (g *Gesture) Cancel() {
	if g.state == StateIdle {
		return
	}
	if g.target != nil {
		g.target.DragLeave(&Event{Transfer: g.transfer})
	}
	g.source.DragEnd(&Event{Transfer: g.transfer})
	g.reset()
}

func (g *Gesture) over(t Target, x, y int) bool {
	e := &Event{X: x, Y: y, Transfer: g.transfer}
	t.DragOver(e)
	return e.DefaultPrevented()
}

func (g *Gesture) reset() {
	g.state = StateIdle
	g.transfer = nil
	g.source = nil
	g.target = nil
	g.accepted = false
}
