// Command dbu is a small SQLite browser built on the framework: type a
// query, press Ctrl-R (or the Run button) and the result fills the
// output canvas.
package main

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/tekugo/flechtwerk"
)

const ui = `
- layout: root
    mode: box
    orientation: vertical
    - layout: top
        mode: box
        orientation: horizontal
        auto_scale_y: true
        size_hint_y: none
        - text_input: sql
            text: SELECT * FROM sqlite_schema
            max_length: 500
        - button: run
            text: Run
    - layout: bottom
        mode: box
        orientation: vertical
        border_enabled: true
        scroll_y_enabled: true
        - canvas: result
`

func main() {
	path := "test.db"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer db.Close()

	file, err := os.CreateTemp("", "dbu-*.ez")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer os.Remove(file.Name())
	file.WriteString(ui)
	file.Close()

	app, err := flechtwerk.LoadUI(file.Name())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(flechtwerk.ExitCode(err))
	}

	run := func(ctx *flechtwerk.Context) bool {
		input, err := ctx.States.GetByID("sql")
		if err != nil {
			return false
		}
		result, err := ctx.States.GetByID("result")
		if err != nil {
			return false
		}
		result.Canvas.Lines = query(db, input.TextInput.Text.Get())
		ctx.UI.Relayout()
		return true
	}

	app.UpdateCallbackConfig("run", &flechtwerk.CallbackConfig{OnPress: run})
	app.UpdateCallbackConfig("sql", &flechtwerk.CallbackConfig{OnKeyboardEnter: run})

	os.Exit(flechtwerk.ExitCode(app.Run()))
}

// query executes the statement and formats the rows as text lines.
func query(db *sql.DB, statement string) []string {
	rows, err := db.Query(statement)
	if err != nil {
		return []string{"error: " + err.Error()}
	}
	defer rows.Close()

	cols, _ := rows.Columns()
	lines := []string{strings.Join(cols, " | ")}
	values := make([]any, len(cols))
	pointers := make([]any, len(cols))
	for i := range values {
		pointers[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(pointers...); err != nil {
			lines = append(lines, "error: "+err.Error())
			break
		}
		fields := make([]string, len(cols))
		for i, v := range values {
			fields[i] = fmt.Sprintf("%v", v)
		}
		lines = append(lines, strings.Join(fields, " | "))
	}
	lines = append(lines, fmt.Sprintf("(%d rows)", len(lines)-1))
	return lines
}
