package flechtwerk

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// TaskFunc is the signature of scheduled work. The context carries the
// state tree and the scheduler so tasks can mutate the UI. Recurring
// tasks return false to cancel themselves; the return value of one-shot
// tasks is ignored.
type TaskFunc func(*Context) bool

// Task is a scheduled unit of work. Cancel may be called at any time and
// is idempotent; a cancelled task is dropped at its next due time.
type Task struct {
	id        string
	fn        TaskFunc
	recurring bool
	interval  time.Duration
	due       time.Time
	seq       int
	cancelled bool
}

// Cancel marks the task for removal.
func (t *Task) Cancel() { t.cancelled = true }

// ID returns the identifier the task was scheduled under, usually the
// path or id of the widget it belongs to.
func (t *Task) ID() string { return t.id }

type threadTask struct {
	fn       func(PropertyMap)
	onFinish TaskFunc
	done     chan struct{}
}

type subscriber struct {
	owner string
	fn    Updater
}

type pathConfig struct {
	path    string
	config  *CallbackConfig
	replace bool
}

// Scheduler owns everything that happens between input handling and
// rendering: one-shot, recurring and threaded tasks, the registry of
// application properties with their change channels, cell subscriptions,
// property-bound callbacks, queued callback-config changes and the set of
// widgets that need a redraw.
//
// On every frame tick the runtime calls, in order: Drain (property
// channels and subscribers, then bound callbacks), RunTasks (due tasks in
// FIFO of due time, insertion order breaking ties), Harvest (finished
// worker threads and their on-finish callbacks) and TakeUpdates (the
// merged dirty set).
type Scheduler struct {
	clock Clock
	seq   int

	tasks   []*Task
	pending []*threadTask
	running []*threadTask

	properties  PropertyMap
	cells       map[string]AnyProperty
	subscribers map[string][]subscriber
	callbacks   map[string][]TaskFunc

	configs     []pathConfig
	updates     []string
	forceRedraw bool
	stopped     bool
}

// NewScheduler creates a scheduler on the system clock.
func NewScheduler() *Scheduler {
	return NewSchedulerWithClock(systemClock{})
}

// NewSchedulerWithClock creates a scheduler on a custom time source.
func NewSchedulerWithClock(clock Clock) *Scheduler {
	return &Scheduler{
		clock:       clock,
		properties:  make(PropertyMap),
		cells:       make(map[string]AnyProperty),
		subscribers: make(map[string][]subscriber),
		callbacks:   make(map[string][]TaskFunc),
	}
}

// ---- Tasks ----------------------------------------------------------------

// ScheduleOnce registers fn for a single execution after delay. A delay
// of zero runs it on the next frame.
func (s *Scheduler) ScheduleOnce(id string, fn TaskFunc, delay time.Duration) *Task {
	s.seq++
	task := &Task{id: id, fn: fn, due: s.clock.Now().Add(delay), seq: s.seq}
	s.tasks = append(s.tasks, task)
	return task
}

// ScheduleRecurring registers fn for repeated execution. The first run
// happens one interval after registration, not immediately. The function
// cancels itself by returning false.
func (s *Scheduler) ScheduleRecurring(id string, fn TaskFunc, interval time.Duration) *Task {
	s.seq++
	task := &Task{id: id, fn: fn, recurring: true, interval: interval,
		due: s.clock.Now().Add(interval), seq: s.seq}
	s.tasks = append(s.tasks, task)
	return task
}

// ScheduleThreaded spawns fn on a worker goroutine on the next frame. The
// worker receives a snapshot of the property map only; it cannot touch
// the state tree or the terminal. When the worker finishes, onFinish (if
// not nil) runs on the UI goroutine. Workers are never cancelled
// forcibly, they finish naturally.
func (s *Scheduler) ScheduleThreaded(fn func(PropertyMap), onFinish TaskFunc) {
	s.pending = append(s.pending, &threadTask{fn: fn, onFinish: onFinish, done: make(chan struct{})})
}

// RunTasks executes every task whose due time has passed, in FIFO of due
// time with insertion order breaking ties. Recurring tasks are re-armed
// unless they return false or were cancelled.
func (s *Scheduler) RunTasks(ctx func(id string) *Context) {
	now := s.clock.Now()
	due := make([]*Task, 0)
	remaining := s.tasks[:0]
	for _, task := range s.tasks {
		if task.cancelled {
			continue
		}
		if !task.due.After(now) {
			due = append(due, task)
		} else {
			remaining = append(remaining, task)
		}
	}
	s.tasks = remaining
	sort.SliceStable(due, func(i, j int) bool {
		if due[i].due.Equal(due[j].due) {
			return due[i].seq < due[j].seq
		}
		return due[i].due.Before(due[j].due)
	})
	for _, task := range due {
		keep := runProtected(task.id, func() bool { return task.fn(ctx(task.id)) })
		if task.recurring && keep && !task.cancelled {
			task.due = now.Add(task.interval)
			s.tasks = append(s.tasks, task)
		}
	}
}

// StartThreads launches the workers queued by ScheduleThreaded. Each gets
// the current property map; the map itself is shared, the cells inside
// are safe for concurrent Set.
func (s *Scheduler) StartThreads() {
	for _, t := range s.pending {
		snapshot := make(PropertyMap, len(s.properties))
		for name, p := range s.properties {
			snapshot[name] = p
		}
		task := t
		go func() {
			defer close(task.done)
			task.fn(snapshot)
		}()
		s.running = append(s.running, t)
	}
	s.pending = nil
}

// Harvest collects finished workers and runs their on-finish callbacks on
// the UI goroutine.
func (s *Scheduler) Harvest(ctx func(id string) *Context) {
	remaining := s.running[:0]
	for _, t := range s.running {
		select {
		case <-t.done:
			if t.onFinish != nil {
				runProtected("thread", func() bool { return t.onFinish(ctx("thread")) })
			}
		default:
			remaining = append(remaining, t)
		}
	}
	s.running = remaining
}

// ---- Properties -----------------------------------------------------------

// registerProperty stores a new application property under its name.
func registerProperty[T comparable](s *Scheduler, name string, initial T) (*Property[T], error) {
	if _, exists := s.properties[name]; exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateName, name)
	}
	p := NewProperty(name, initial)
	s.properties[name] = p
	s.cells[name] = p
	return p, nil
}

// NewIntProperty registers an int property. The handle's Set feeds every
// subscriber on the next frame.
func (s *Scheduler) NewIntProperty(name string, initial int) (*Property[int], error) {
	return registerProperty(s, name, initial)
}

// NewStringProperty registers a string property.
func (s *Scheduler) NewStringProperty(name string, initial string) (*Property[string], error) {
	return registerProperty(s, name, initial)
}

// NewBoolProperty registers a bool property.
func (s *Scheduler) NewBoolProperty(name string, initial bool) (*Property[bool], error) {
	return registerProperty(s, name, initial)
}

// NewFloatProperty registers a float property.
func (s *Scheduler) NewFloatProperty(name string, initial float64) (*Property[float64], error) {
	return registerProperty(s, name, initial)
}

// NewColorProperty registers a color property.
func (s *Scheduler) NewColorProperty(name string, initial Color) (*Property[Color], error) {
	return registerProperty(s, name, initial)
}

// Properties returns the application property map.
func (s *Scheduler) Properties() PropertyMap { return s.properties }

// Subscribe attaches an updater to a registered application property.
// The updater runs during the per-frame drain with every new value and
// returns the widget path it mutated.
func (s *Scheduler) Subscribe(name string, updater Updater) error {
	p, ok := s.properties[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoSuchWidget, name)
	}
	s.subscribeCell(name, p, updater)
	return nil
}

// subscribeCell registers the cell's channel under the given name (state
// cells use "<path>/<prop>") and appends the updater. The owner prefix of
// the name is used to detach subscriptions when widgets are destroyed.
func (s *Scheduler) subscribeCell(name string, cell AnyProperty, updater Updater) {
	if _, ok := s.cells[name]; !ok {
		s.cells[name] = cell
	}
	cell.Channel()
	s.subscribers[name] = append(s.subscribers[name], subscriber{owner: name, fn: updater})
}

// Bind attaches a user callback to a property change. Callbacks run after
// all subscribers during the drain.
func (s *Scheduler) Bind(name string, fn TaskFunc) {
	s.callbacks[name] = append(s.callbacks[name], fn)
}

// Drain empties every property channel and applies subscribers
// breadth-first. A cell already touched in this drain is not processed
// again, which breaks infinite loops among mutual subscriptions. Bound
// callbacks run last. Returns the owner paths mutated by subscribers.
func (s *Scheduler) Drain(states *StateTree, ctx func(id string) *Context) []string {
	touched := make(map[string]bool)
	dirty := make([]string, 0)
	fired := make([]string, 0)

	// Events are applied breadth-first in rounds: everything queued
	// before a round is processed in it; a cell touched in an earlier
	// round has its re-enqueued events discarded, which breaks infinite
	// loops among mutual subscriptions.
	for {
		batch := make(map[string][]any)
		total := 0
		for name, cell := range s.cells {
			ch := cell.Channel()
			events := make([]any, 0)
			for {
				var value any
				received := false
				select {
				case value = <-ch:
					received = true
				default:
				}
				if !received {
					break
				}
				events = append(events, value)
			}
			if len(events) == 0 || touched[name] {
				continue
			}
			batch[name] = events
			total += len(events)
		}
		if total == 0 {
			break
		}
		for name, events := range batch {
			touched[name] = true
			fired = append(fired, name)
			for _, value := range events {
				for _, sub := range s.subscribers[name] {
					if path := sub.fn(states, value); path != "" {
						dirty = append(dirty, path)
					}
				}
			}
		}
	}

	for _, name := range fired {
		for _, fn := range s.callbacks[name] {
			cb := fn
			runProtected(name, func() bool { return cb(ctx(name)) })
		}
	}
	return dirty
}

// Detach drops every receiver, subscription and bound callback whose name
// lies under the given path prefix. Called when a widget subtree is
// destroyed.
func (s *Scheduler) Detach(prefix string) {
	for name := range s.cells {
		if strings.HasPrefix(name, prefix+"/") || name == prefix {
			delete(s.cells, name)
			delete(s.subscribers, name)
			delete(s.callbacks, name)
		}
	}
}

// ---- Redraw requests ------------------------------------------------------

// UpdateWidget schedules a widget for re-render in the current frame.
func (s *Scheduler) UpdateWidget(path string) {
	for _, p := range s.updates {
		if p == path {
			return
		}
	}
	s.updates = append(s.updates, path)
}

// ForceRedraw makes the next flush re-emit every cell.
func (s *Scheduler) ForceRedraw() { s.forceRedraw = true }

// TakeUpdates returns and clears the pending widget updates and the
// force-redraw flag.
func (s *Scheduler) TakeUpdates() (paths []string, force bool) {
	paths, force = s.updates, s.forceRedraw
	s.updates, s.forceRedraw = nil, false
	return paths, force
}

// ---- Callback configs -----------------------------------------------------

// SetCallbackConfig queues a config that replaces the widget's callbacks
// on the next frame.
func (s *Scheduler) SetCallbackConfig(pathOrID string, config *CallbackConfig) {
	s.configs = append(s.configs, pathConfig{path: pathOrID, config: config, replace: true})
}

// UpdateCallbackConfig queues a config that merges into the widget's
// callbacks on the next frame. Only set callbacks are replaced.
func (s *Scheduler) UpdateCallbackConfig(pathOrID string, config *CallbackConfig) {
	s.configs = append(s.configs, pathConfig{path: pathOrID, config: config})
}

// TakeConfigs returns and clears the queued callback configs.
func (s *Scheduler) TakeConfigs() []pathConfig {
	configs := s.configs
	s.configs = nil
	return configs
}

// ---- Lifecycle ------------------------------------------------------------

// Stop requests the run loop to exit after the current frame.
func (s *Scheduler) Stop() { s.stopped = true }

// Stopped reports whether Stop was called.
func (s *Scheduler) Stopped() bool { return s.stopped }

// Clock returns the scheduler's time source.
func (s *Scheduler) Clock() Clock { return s.clock }
