package flechtwerk

// Context is handed to every callback and scheduled task. It borrows the
// state tree and the scheduler for the duration of the call and names the
// widget the call belongs to. Mouse callbacks additionally carry the
// event coordinates; X and Y are -1 otherwise.
type Context struct {
	Path      string
	States    *StateTree
	Scheduler *Scheduler
	UI        *UI
	Data      any // application data passed to Run
	X, Y      int
}

// Callback is a user callback. It returns true iff it consumed the event
// that triggered it.
type Callback func(*Context) bool

// KeyCallback handles a key event routed to a widget's keymap.
type KeyCallback func(*Context, KeyEvent) bool

// CallbackConfig is the per-widget callback record held by the callback
// registry. Every field may be nil.
type CallbackConfig struct {
	OnPress         Callback
	OnSelect        Callback
	OnDeselect      Callback
	OnHover         Callback
	OnHoverExit     Callback
	OnValueChange   Callback
	OnKeyboardEnter Callback
	Keymap          map[Key]KeyCallback
}

// Merge copies the set callbacks of other into the config, leaving
// existing entries alone where other is nil. Keymap entries merge by key.
func (c *CallbackConfig) Merge(other *CallbackConfig) {
	if other == nil {
		return
	}
	if other.OnPress != nil {
		c.OnPress = other.OnPress
	}
	if other.OnSelect != nil {
		c.OnSelect = other.OnSelect
	}
	if other.OnDeselect != nil {
		c.OnDeselect = other.OnDeselect
	}
	if other.OnHover != nil {
		c.OnHover = other.OnHover
	}
	if other.OnHoverExit != nil {
		c.OnHoverExit = other.OnHoverExit
	}
	if other.OnValueChange != nil {
		c.OnValueChange = other.OnValueChange
	}
	if other.OnKeyboardEnter != nil {
		c.OnKeyboardEnter = other.OnKeyboardEnter
	}
	if other.Keymap != nil {
		if c.Keymap == nil {
			c.Keymap = make(map[Key]KeyCallback)
		}
		for key, fn := range other.Keymap {
			c.Keymap[key] = fn
		}
	}
}

// runProtected invokes a user callback and catches panics. A panicking
// callback is logged with the widget path and treated as not having
// consumed the event, so a faulty callback never crashes the loop.
func runProtected(path string, fn func() bool) (consumed bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.Add(path, "error", "callback panic: %v", r)
			consumed = false
		}
	}()
	return fn()
}
