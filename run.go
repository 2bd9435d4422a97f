// Package run.go contains the UI type and the application lifecycle: the
// channel-driven run loop, frame processing in scheduler order, the modal
// stack, the callback registry and runtime widget creation.

package flechtwerk

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"
)

// Exit codes of a framework application.
const (
	ExitOK       = 0
	ExitPanic    = 1
	ExitTerminal = 2
	ExitParse    = 3
)

// errPanic is returned by Run when a panic unwound the UI goroutine.
var errPanic = errors.New("panic on UI thread")

// UI is the root object of a running application. It owns the widget
// tree, the state tree, the scheduler, the callback registry, the modal
// stack and the terminal, and drives the frame loop.
type UI struct {
	root      *Widget
	states    *StateTree
	scheduler *Scheduler
	term      Terminal
	config    Config

	def     *UIDefinition
	file    string
	baseDir string

	callbacks map[string]*CallbackConfig
	modals    []*Widget
	modalSeq  int

	selected string
	hovered  string

	// Data is handed to every callback context, for application state
	// that should travel with the UI.
	Data any

	width, height int
	lastFrame     *PixelMap
	needLayout    bool
	quit          chan struct{}
	reload        chan struct{}
}

// LoadUI parses the declarative root file and returns the assembled UI.
// The file is resolved against EZ_FOLDER when relative. All parse and
// registration errors are fatal; Run refuses to start on them.
func LoadUI(file string) (*UI, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	if !filepath.IsAbs(file) && cfg.Folder != "" {
		file = filepath.Join(cfg.Folder, file)
	}
	def, err := ParseFile(file)
	if err != nil {
		return nil, err
	}
	scheduler := NewScheduler()
	root, states, err := BuildUI(def, scheduler, filepath.Dir(file))
	if err != nil {
		return nil, err
	}
	ui := NewUI(root, states, scheduler, NewTerminal())
	ui.config = cfg
	ui.def = def
	ui.file = file
	ui.baseDir = filepath.Dir(file)
	return ui, nil
}

// NewUI assembles a UI from its parts. Tests use this with a fake
// terminal and a fake clock.
func NewUI(root *Widget, states *StateTree, scheduler *Scheduler, term Terminal) *UI {
	cfg, _ := LoadConfig()
	return &UI{
		root:      root,
		states:    states,
		scheduler: scheduler,
		term:      term,
		config:    cfg,
		callbacks: make(map[string]*CallbackConfig),
		quit:      make(chan struct{}),
		reload:    make(chan struct{}, 1),
	}
}

// Root returns the root widget.
func (ui *UI) Root() *Widget { return ui.root }

// States returns the state tree.
func (ui *UI) States() *StateTree { return ui.states }

// Scheduler returns the scheduler.
func (ui *UI) Scheduler() *Scheduler { return ui.scheduler }

// ---- Callback registry ----------------------------------------------------

// SetCallbackConfig replaces the callbacks of a widget addressed by path
// or id.
func (ui *UI) SetCallbackConfig(pathOrID string, config *CallbackConfig) error {
	state, err := ui.states.Resolve(pathOrID)
	if err != nil {
		return err
	}
	ui.callbacks[state.Path] = config
	return nil
}

// UpdateCallbackConfig merges callbacks into a widget's existing config.
// Only the callbacks set in the new config are replaced.
func (ui *UI) UpdateCallbackConfig(pathOrID string, config *CallbackConfig) error {
	state, err := ui.states.Resolve(pathOrID)
	if err != nil {
		return err
	}
	existing, ok := ui.callbacks[state.Path]
	if !ok {
		existing = &CallbackConfig{}
		ui.callbacks[state.Path] = existing
	}
	existing.Merge(config)
	return nil
}

func (ui *UI) callbackFor(path string) *CallbackConfig {
	return ui.callbacks[path]
}

func (ui *UI) context(path string, x, y int) *Context {
	return &Context{Path: path, States: ui.states, Scheduler: ui.scheduler, UI: ui,
		Data: ui.Data, X: x, Y: y}
}

func (ui *UI) contextFor(id string) *Context {
	return ui.context(id, -1, -1)
}

// invokeCallback runs one callback of the widget's config, if set.
func (ui *UI) invokeCallback(path string, pick func(*CallbackConfig) Callback) bool {
	return ui.invokeCallbackAt(path, -1, -1, pick)
}

func (ui *UI) invokeCallbackAt(path string, x, y int, pick func(*CallbackConfig) Callback) bool {
	config := ui.callbackFor(path)
	if config == nil {
		return false
	}
	fn := pick(config)
	if fn == nil {
		return false
	}
	return runProtected(path, func() bool { return fn(ui.context(path, x, y)) })
}

// applyConfigs moves callback configs queued on the scheduler into the
// registry. Unresolvable targets are logged and skipped.
func (ui *UI) applyConfigs() {
	for _, pc := range ui.scheduler.TakeConfigs() {
		var err error
		if pc.replace {
			err = ui.SetCallbackConfig(pc.path, pc.config)
		} else {
			err = ui.UpdateCallbackConfig(pc.path, pc.config)
		}
		if err != nil {
			logger.Add(pc.path, "warn", "callback config dropped: %v", err)
		}
	}
}

// ---- Modals ---------------------------------------------------------------

// OpenModal instantiates a template and pushes it on the modal stack. The
// modal is rendered over the composed frame, centered unless it carries
// pos hints, and monopolises input until dismissed. Returns the modal's
// path.
func (ui *UI) OpenModal(template string) (string, error) {
	var templates map[string]*Definition
	if ui.def != nil {
		templates = ui.def.Templates
	}
	id := fmt.Sprintf("modal%d", ui.modalSeq)
	ui.modalSeq++
	widget, states, err := expandTemplate(templates, ui.baseDir, template, id, ui.root.Path())
	if err != nil {
		return "", err
	}
	for path, state := range states {
		ui.states.Insert(path, state)
	}
	ui.modals = append(ui.modals, widget)
	ui.layoutModal(widget)
	ui.selectFirst()
	ui.scheduler.ForceRedraw()
	return widget.Path(), nil
}

// DismissModal pops the topmost modal, destroys its state records and
// detaches their channels and subscribers.
func (ui *UI) DismissModal() error {
	if len(ui.modals) == 0 {
		return ErrNoModal
	}
	modal := ui.modals[len(ui.modals)-1]
	ui.modals = ui.modals[:len(ui.modals)-1]
	for _, path := range ui.states.RemoveSubtree(modal.Path()) {
		ui.scheduler.Detach(path)
		delete(ui.callbacks, path)
	}
	if ui.selected != "" && ui.states.Get(ui.selected) == nil {
		ui.selected = ""
	}
	ui.selectFirst()
	ui.scheduler.ForceRedraw()
	return nil
}

// layoutModal sizes the modal against the screen and positions it
// centered unless pos hints say otherwise.
func (ui *UI) layoutModal(modal *Widget) {
	s := ui.states.Get(modal.Path())
	if s == nil {
		return
	}
	resolveSize(modal, s, ui.states, ui.width, ui.height)
	w, h := s.Width.Get(), s.Height.Get()
	x, y := (ui.width-w)/2, (ui.height-h)/2
	if !s.PosHintX.Get().None || !s.PosHintY.Get().None {
		x, y = applyPosHints(s, ui.width, ui.height)
	}
	s.X.Set(x)
	s.Y.Set(y)
	s.AbsX, s.AbsY = x, y
	layoutChildren(modal, ui.states)
}

// ---- Runtime widget creation ----------------------------------------------

// PrepareCreateWidget instantiates a template (or a plain widget kind) in
// isolation below the given parent path. Nothing is attached yet; the
// returned widget and records go to CreateWidget.
func (ui *UI) PrepareCreateWidget(template, id, parentPath string) (*Widget, map[string]*State, error) {
	var templates map[string]*Definition
	if ui.def != nil {
		templates = ui.def.Templates
	}
	return expandTemplate(templates, ui.baseDir, template, id, parentPath)
}

// CreateWidget attaches a prepared widget to the tree and inserts its
// state records. Fails when the parent is missing or the id collides.
func (ui *UI) CreateWidget(widget *Widget, states map[string]*State) error {
	parentPath := widget.Path()[:len(widget.Path())-len("/"+widget.ID())]
	parent := ui.root.FindPath(parentPath)
	if parent == nil {
		return fmt.Errorf("%w: %s", ErrNoSuchParent, parentPath)
	}
	if ui.states.Get(widget.Path()) != nil {
		return fmt.Errorf("%w: %s", ErrIDCollision, widget.Path())
	}
	parent.Add(widget)
	ui.root.PropagatePaths()
	for path, state := range states {
		ui.states.Insert(path, state)
	}
	ui.Relayout()
	return nil
}

// RemoveWidget detaches a widget subtree and destroys its records.
func (ui *UI) RemoveWidget(pathOrID string) error {
	state, err := ui.states.Resolve(pathOrID)
	if err != nil {
		return err
	}
	widget := ui.root.FindPath(state.Path)
	if widget == nil || widget.Parent() == nil {
		return fmt.Errorf("%w: %s", ErrNoSuchWidget, pathOrID)
	}
	widget.Parent().Remove(widget.ID())
	for _, path := range ui.states.RemoveSubtree(state.Path) {
		ui.scheduler.Detach(path)
		delete(ui.callbacks, path)
	}
	if ui.selected == state.Path {
		ui.selected = ""
	}
	ui.Relayout()
	return nil
}

// ---- Frame processing -----------------------------------------------------

// Relayout schedules a full layout pass before the next frame is drawn.
func (ui *UI) Relayout() {
	ui.needLayout = true
	ui.scheduler.ForceRedraw()
}

func (ui *UI) resize(w, h int) {
	ui.width, ui.height = w, h
	ui.lastFrame = nil
	ui.Relayout()
}

// frame runs one frame tick: queued callback configs, worker starts, the
// property drain, due tasks, thread harvesting, then layout and the
// render/diff/flush pipeline.
func (ui *UI) frame() error {
	ui.applyConfigs()
	ui.scheduler.StartThreads()

	dirty := ui.scheduler.Drain(ui.states, ui.contextFor)
	ui.scheduler.RunTasks(ui.contextFor)
	ui.scheduler.Harvest(ui.contextFor)
	ui.applyConfigs()

	updates, force := ui.scheduler.TakeUpdates()
	dirty = append(dirty, updates...)

	if ui.needLayout {
		LayoutTree(ui.root, ui.states, ui.width, ui.height)
		for _, modal := range ui.modals {
			ui.layoutModal(modal)
		}
		ui.needLayout = false
		force = true
	}

	if !force && len(dirty) == 0 {
		return nil
	}

	var next *PixelMap
	if force || ui.lastFrame == nil {
		next = ui.composeFrame()
	} else {
		next = ui.composePartial(dirty)
	}

	prev := ui.lastFrame
	if force {
		prev = nil
	}
	writes := Diff(prev, next)
	ui.lastFrame = next
	if err := Flush(ui.term, writes, next); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	ui.placeCursor()
	return nil
}

// composeFrame renders the whole tree plus the topmost modal. Suspended
// modals are not rendered.
func (ui *UI) composeFrame() *PixelMap {
	frame := NewPixelMap(ui.width, ui.height, Color{}, Color{})
	frame.Blit(Compose(ui.root, ui.states), 0, 0)
	if len(ui.modals) > 0 {
		modal := ui.modals[len(ui.modals)-1]
		if s := ui.states.Get(modal.Path()); s != nil {
			frame.Blit(Compose(modal, ui.states), s.AbsX, s.AbsY)
		}
	}
	return frame
}

// composePartial recomputes only the dirty widgets and patches them into
// a copy of the previous frame. The topmost modal is re-blitted last so
// dirty widgets below it never shine through.
func (ui *UI) composePartial(dirty []string) *PixelMap {
	next := ui.lastFrame.Crop(0, 0, ui.width, ui.height)
	for _, path := range dirty {
		widget := ui.findAnywhere(path)
		s := ui.states.Get(path)
		if widget == nil || s == nil {
			continue
		}
		next.Blit(Compose(widget, ui.states), s.AbsX, s.AbsY)
	}
	if len(ui.modals) > 0 {
		modal := ui.modals[len(ui.modals)-1]
		if s := ui.states.Get(modal.Path()); s != nil {
			next.Blit(Compose(modal, ui.states), s.AbsX, s.AbsY)
		}
	}
	return next
}

// findAnywhere resolves a path in the main tree or any modal subtree.
func (ui *UI) findAnywhere(path string) *Widget {
	if w := ui.root.FindPath(path); w != nil {
		return w
	}
	for _, modal := range ui.modals {
		if w := modal.FindPath(path); w != nil {
			return w
		}
	}
	return nil
}

// placeCursor shows the terminal cursor inside a selected text input.
func (ui *UI) placeCursor() {
	widget := ui.selectedWidget()
	if widget == nil || widget.Kind() != KindTextInput {
		ui.term.HideCursor()
		return
	}
	s := ui.states.Get(widget.Path())
	if s == nil || s.Cursor.Get() == "" {
		ui.term.HideCursor()
		return
	}
	cx, cy := textInputCursor(s)
	border := 0
	if s.Border.Enabled.Get() {
		border = 1
	}
	ui.term.ShowCursor(s.AbsX+border+s.PaddingLeft.Get()+cx, s.AbsY+border+s.PaddingTop.Get()+cy)
}

// ---- Run loop -------------------------------------------------------------

// Run enters the event loop and blocks until Stop is called, Ctrl-C is
// pressed or the terminal fails. Raw mode and the alternate screen are
// released on every exit path; a panic on the UI goroutine restores the
// terminal, dumps a trace to stderr and surfaces as an error mapping to
// exit code 1.
func (ui *UI) Run() (err error) {
	if err := ui.term.Init(); err != nil {
		return err
	}
	defer ui.term.Fini()
	defer func() {
		if r := recover(); r != nil {
			ui.term.Fini()
			fmt.Fprintf(os.Stderr, "panic: %v\n%s", r, debug.Stack())
			for entry := range logger.Iter() {
				fmt.Fprintln(os.Stderr, entry.String())
			}
			err = fmt.Errorf("%w: %v", errPanic, r)
		}
	}()

	ui.width, ui.height = ui.term.Size()
	ui.needLayout = true
	ui.selectFirst()

	if ui.config.LiveReload && ui.file != "" {
		if err := watchUI(ui.file, ui.quit, func() {
			select {
			case ui.reload <- struct{}{}:
			default:
			}
		}); err != nil {
			logger.Add("run", "warn", "live reload unavailable: %v", err)
		}
	}

	if err := ui.frame(); err != nil {
		return err
	}

	interval := ui.config.FrameInterval
	if interval <= 0 {
		interval = 16 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	events := ui.term.Events()
	for {
		select {
		case <-ui.quit:
			return nil
		case <-ui.reload:
			ui.reloadUI()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if ev != nil {
				ui.dispatch(ev)
			}
		case <-ticker.C:
		}
		if ui.scheduler.Stopped() {
			ui.frame()
			return nil
		}
		if err := ui.frame(); err != nil {
			return err
		}
	}
}

// Stop ends the run loop after the current frame.
func (ui *UI) Stop() {
	ui.scheduler.Stop()
	select {
	case <-ui.quit:
	default:
		close(ui.quit)
	}
}

// reloadUI re-parses the declarative file and swaps the widget and state
// trees in place. Callbacks and properties registered by the application
// survive; parse errors keep the old UI and are logged.
func (ui *UI) reloadUI() {
	def, err := ParseFile(ui.file)
	if err != nil {
		logger.Add("reload", "error", "parse failed: %v", err)
		return
	}
	root, states, err := BuildUI(def, ui.scheduler, ui.baseDir)
	if err != nil {
		logger.Add("reload", "error", "build failed: %v", err)
		return
	}
	ui.def = def
	ui.root = root
	ui.states = states
	ui.modals = nil
	ui.selected = ""
	ui.hovered = ""
	ui.lastFrame = nil
	ui.selectFirst()
	ui.Relayout()
}

// ExitCode maps a Run error to the process exit code contract.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, errPanic):
		return ExitPanic
	case errors.Is(err, ErrInitFailed), errors.Is(err, ErrWriteFailed):
		return ExitTerminal
	default:
		var parseErr *ParseError
		if errors.As(err, &parseErr) {
			return ExitParse
		}
		return ExitPanic
	}
}
