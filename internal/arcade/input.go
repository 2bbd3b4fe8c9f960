package arcade

// InputKind distinguishes pointer and keyboard events.
type InputKind int

const (
	PointerDown InputKind = iota
	PointerMove
	PointerUp
	KeyDown
	KeyUp
)

func (k InputKind) String() string {
	switch k {
	case PointerDown:
		return "pointerdown"
	case PointerMove:
		return "pointermove"
	case PointerUp:
		return "pointerup"
	case KeyDown:
		return "keydown"
	case KeyUp:
		return "keyup"
	default:
		return "unknown"
	}
}

// Button identifies a pointer button.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
)

// InputEvent is one pointer or key transition in surface pixels. Key holds a
// key name such as "W", "Space" or "ArrowLeft".
type InputEvent struct {
	Kind   InputKind
	Button Button
	X, Y   float64
	Key    string
	Shift  bool
}

// Listener receives input events.
type Listener func(InputEvent)

type listenerEntry struct {
	fn       Listener
	detached bool
}

// InputBus fans host input out to whatever the mounted module subscribed.
type InputBus struct {
	listeners []*listenerEntry
}

// Subscribe attaches l and returns an idempotent detach function.
func (b *InputBus) Subscribe(l Listener) (detach func()) {
	e := &listenerEntry{fn: l}
	b.listeners = append(b.listeners, e)
	return func() {
		if e.detached {
			return
		}
		e.detached = true
		for i, o := range b.listeners {
			if o == e {
				b.listeners = append(b.listeners[:i], b.listeners[i+1:]...)
				break
			}
		}
	}
}

// Publish delivers e to every attached listener.
func (b *InputBus) Publish(e InputEvent) {
	ls := append([]*listenerEntry(nil), b.listeners...)
	for _, l := range ls {
		if !l.detached {
			l.fn(e)
		}
	}
}

// Len is the number of attached listeners.
func (b *InputBus) Len() int { return len(b.listeners) }
