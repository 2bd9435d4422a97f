// Command demo runs the showcase application: most widget kinds, a
// template-based modal, scheduled tasks and a background worker feeding a
// progress bar through a bound property.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tekugo/flechtwerk"
)

func main() {
	file := "demo.ez"
	if len(os.Args) > 1 {
		file = os.Args[1]
	} else if _, err := os.Stat(file); err != nil {
		file = filepath.Join("cmd", "demo", "demo.ez")
	}

	ui, err := flechtwerk.LoadUI(file)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(flechtwerk.ExitCode(err))
	}

	scheduler := ui.Scheduler()

	// Clock label, updated every second.
	scheduler.ScheduleRecurring("clock", func(ctx *flechtwerk.Context) bool {
		state, err := ctx.States.GetByID("clock")
		if err != nil {
			return false
		}
		state.Label.Text.Set(time.Now().Format("15:04:05"))
		ctx.Scheduler.UpdateWidget(state.Path)
		return true
	}, time.Second)

	// Background worker driving the progress bar via a bound property.
	if _, err := scheduler.NewIntProperty("progress", 0); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(flechtwerk.ExitPanic)
	}
	scheduler.Subscribe("progress", func(states *flechtwerk.StateTree, value any) string {
		state, err := states.GetByID("progress")
		if err != nil {
			return ""
		}
		state.ProgressBar.Value.Set(value.(int))
		return state.Path
	})

	ui.UpdateCallbackConfig("open", &flechtwerk.CallbackConfig{
		OnPress: func(ctx *flechtwerk.Context) bool {
			ctx.UI.OpenModal("Dialog")
			return true
		},
	})
	ui.UpdateCallbackConfig("quit", &flechtwerk.CallbackConfig{
		OnPress: func(ctx *flechtwerk.Context) bool {
			ctx.UI.Stop()
			return true
		},
	})
	ui.UpdateCallbackConfig("verbose", &flechtwerk.CallbackConfig{
		OnValueChange: func(ctx *flechtwerk.Context) bool {
			state := ctx.States.Get(ctx.Path)
			status, err := ctx.States.GetByID("status")
			if state == nil || err != nil {
				return false
			}
			if state.Checkbox.Active.Get() {
				status.Label.Text.Set("verbose")
			} else {
				status.Label.Text.Set("quiet")
			}
			ctx.Scheduler.UpdateWidget(status.Path)
			return true
		},
	})

	// Kick off the worker once the UI runs.
	scheduler.ScheduleOnce("progress", func(ctx *flechtwerk.Context) bool {
		ctx.Scheduler.ScheduleThreaded(func(properties flechtwerk.PropertyMap) {
			for value := 0; value <= 100; value += 20 {
				properties.Int("progress").Set(value)
				time.Sleep(time.Second)
			}
		}, func(ctx *flechtwerk.Context) bool {
			if status, err := ctx.States.GetByID("status"); err == nil {
				status.Label.Text.Set("done")
				ctx.Scheduler.UpdateWidget(status.Path)
			}
			return true
		})
		return false
	}, time.Second)

	os.Exit(flechtwerk.ExitCode(ui.Run()))
}
