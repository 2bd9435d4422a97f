// Package flechtwerk provides a retained-mode terminal user interface
// framework driven by declarative UI files.
//
// # Overview
//
// An application describes its interface in a .ez file: widgets, layouts,
// styling and reusable templates, written in an indentation based syntax.
// The framework parses the file into a widget tree, keeps a parallel
// state tree of typed reactive cells for every widget, and runs a render
// loop that recomputes only dirty widget contents, diffs them against the
// previous frame and writes only changed cells to the terminal.
//
// Imperative code attaches behaviour: callbacks on widgets, scheduled
// tasks, background workers and reactive property bindings.
//
// # Widgets
//
//   - Label: static (or figlet banner) text
//   - Button: press feedback with flash colors
//   - Checkbox, RadioButton: toggles, radio groups with exclusivity
//   - Dropdown: option list with keyboard and mouse selection
//   - Slider, ProgressBar: numeric value display and input
//   - TextInput: single-line editing with cursor, clipboard and paste
//   - Canvas: free-form content from a file or painted programmatically
//   - Layout: box, stack, table, float, screen and tab composition modes
//     with scrolling and a modal overlay stack
//
// # Typical use
//
//	ui, err := flechtwerk.LoadUI("app.ez")
//	if err != nil {
//		log.Fatal(err)
//	}
//	ui.UpdateCallbackConfig("ok", &flechtwerk.CallbackConfig{
//		OnPress: func(ctx *flechtwerk.Context) bool {
//			ctx.Scheduler.Stop()
//			return true
//		},
//	})
//	os.Exit(flechtwerk.ExitCode(ui.Run()))
//
// Background work never touches the state tree directly: workers receive
// the property map only and the scheduler funnels their effects back into
// the UI through property channels at the start of each frame.
package flechtwerk
