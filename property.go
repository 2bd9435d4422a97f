package flechtwerk

import (
	"sync"
)

// Updater is a subscriber closure attached to a property channel. It is
// called with the state tree and the new value during the per-frame drain
// and returns the path of the widget it mutated, which is then added to
// the dirty set.
type Updater func(*StateTree, any) string

// AnyProperty is the type-erased view of a reactive cell. It is what the
// scheduler and the parser work with when the concrete value type is not
// statically known (property references in declarative files, drains).
type AnyProperty interface {
	// Name returns the registered name of the cell. For widget state
	// cells this is "<path>/<property>", for app properties the name
	// passed at registration.
	Name() string

	// Channel returns the consumer end of the change channel, creating
	// it on first use. Cells without a channel never queue events.
	Channel() <-chan any

	// SetAny sets the value from a type-erased event. Values of the
	// wrong type are ignored.
	SetAny(any)

	// ValueAny returns the current value, type-erased.
	ValueAny() any
}

// Property is a typed reactive cell. It holds a current value and owns the
// producer end of a change channel; the scheduler drains the channel at the
// start of every frame and feeds subscribed updaters.
//
// Set is a no-op when the new value equals the current one, so a cell never
// queues redundant events. The cell is safe for concurrent Set from worker
// goroutines; all reads happen on the UI goroutine.
type Property[T comparable] struct {
	name  string
	value T
	mu    sync.Mutex
	ch    chan any
}

// NewProperty creates a named cell with an initial value.
func NewProperty[T comparable](name string, initial T) *Property[T] {
	return &Property[T]{name: name, value: initial}
}

// Name returns the cell name.
func (p *Property[T]) Name() string { return p.name }

// Get returns the current value.
func (p *Property[T]) Get() T {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.value
}

// Set updates the value and queues a change event if the value actually
// changed. When the channel buffer is full the oldest queued event is
// dropped so that the most recent value always reaches the drain.
func (p *Property[T]) Set(value T) {
	p.mu.Lock()
	if p.value == value {
		p.mu.Unlock()
		return
	}
	p.value = value
	ch := p.ch
	p.mu.Unlock()
	if ch == nil {
		return
	}
	select {
	case ch <- value:
	default:
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- value:
		default:
		}
	}
}

// Channel returns the consumer end of the change channel, creating the
// channel on first use. Cells that nobody subscribes to stay channel-less
// and skip event queueing entirely.
func (p *Property[T]) Channel() <-chan any {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch == nil {
		p.ch = make(chan any, 64)
	}
	return p.ch
}

// SetAny implements AnyProperty. Events carrying a value of a different
// type are ignored; declarative files can only subscribe cells of the
// same type, so this only happens on programming errors.
func (p *Property[T]) SetAny(value any) {
	if v, ok := value.(T); ok {
		p.Set(v)
	}
}

// ValueAny implements AnyProperty.
func (p *Property[T]) ValueAny() any { return p.Get() }

// PropertyMap holds the application-level properties registered through
// the scheduler. A snapshot of this map is the only handle background
// workers receive; they update the UI exclusively through it.
type PropertyMap map[string]AnyProperty

// Int returns the named int property, or nil if absent or of another type.
func (m PropertyMap) Int(name string) *Property[int] {
	p, _ := m[name].(*Property[int])
	return p
}

// String returns the named string property, or nil.
func (m PropertyMap) String(name string) *Property[string] {
	p, _ := m[name].(*Property[string])
	return p
}

// Bool returns the named bool property, or nil.
func (m PropertyMap) Bool(name string) *Property[bool] {
	p, _ := m[name].(*Property[bool])
	return p
}

// Float returns the named float property, or nil.
func (m PropertyMap) Float(name string) *Property[float64] {
	p, _ := m[name].(*Property[float64])
	return p
}

// Color returns the named color property, or nil.
func (m PropertyMap) Color(name string) *Property[Color] {
	p, _ := m[name].(*Property[Color])
	return p
}
