package flechtwerk

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// pendingRef is a property reference noted during expansion, resolved to
// a subscription once all paths are known.
type pendingRef struct {
	owner      *Widget
	prop       string
	target     string // "parent", "root" or a widget id
	targetProp string
}

// builder materializes definitions into widget subtrees with their state
// records. It is used at initial load and again at runtime for modals and
// programmatic widget creation.
type builder struct {
	templates map[string]*Definition
	baseDir   string
	states    map[*Widget]*State
	pending   []pendingRef
}

func newBuilder(templates map[string]*Definition, baseDir string) *builder {
	return &builder{
		templates: templates,
		baseDir:   baseDir,
		states:    make(map[*Widget]*State),
	}
}

// expand materializes a definition into a fresh widget subtree. Template
// references are resolved lazily, so templates may reference templates;
// the visited set detects cycles.
func (b *builder) expand(def *Definition, id string, visited map[string]bool) (*Widget, error) {
	if isTemplateName(def.Type) {
		if visited[def.Type] {
			return nil, &ParseError{Kind: CycleInTemplate, Widget: def.Type, Line: def.Line}
		}
		template, ok := b.templates[def.Type]
		if !ok {
			return nil, &ParseError{Kind: UnknownKind, Widget: def.Type, Line: def.Line}
		}
		visited[def.Type] = true
		defer delete(visited, def.Type)

		// Expand the template body under the instance id, then apply the
		// instance's own property overrides and extra children on top.
		widget, err := b.expand(&Definition{
			Type:       template.ID,
			ID:         id,
			Line:       template.Line,
			Properties: append(append([]PropertyLine{}, template.Properties...), def.Properties...),
			Children:   append(append([]*Definition{}, template.Children...), def.Children...),
		}, id, visited)
		if err != nil {
			return nil, err
		}
		return widget, nil
	}

	kind, ok := KindFromName(def.Type)
	if !ok {
		return nil, &ParseError{Kind: UnknownKind, Widget: def.Type, Line: def.Line}
	}
	widget := NewWidget(kind, id)
	state := NewState(kind)
	b.states[widget] = state

	for _, line := range def.Properties {
		if line.Name == "from_file" {
			if err := b.fromFile(widget, state, line.Value); err != nil {
				return nil, &ParseError{Kind: BadValue, Widget: id, Name: "from_file",
					Raw: line.Value, Line: line.Line}
			}
			continue
		}
		if target, prop, ok := IsReference(line.Value); ok {
			b.pending = append(b.pending, pendingRef{widget, line.Name, target, prop})
			continue
		}
		if err := state.Apply(id, line.Name, line.Value); err != nil {
			return nil, err
		}
	}

	for _, childDef := range def.Children {
		if kind != KindLayout {
			return nil, &ParseError{Kind: BadValue, Widget: id, Line: childDef.Line,
				Raw: "only layouts have children"}
		}
		child, err := b.expand(childDef, childDef.ID, visited)
		if err != nil {
			return nil, err
		}
		widget.Add(child)
	}
	return widget, nil
}

// fromFile substitutes a file's text into the widget's content cell. The
// path is resolved below the UI base directory; glob patterns pick the
// first match.
func (b *builder) fromFile(widget *Widget, state *State, value string) error {
	path := filepath.Join(b.baseDir, value)
	if strings.ContainsAny(value, "*?[{") {
		matches, err := doublestar.FilepathGlob(path)
		if err != nil || len(matches) == 0 {
			return fmt.Errorf("no file matches %q", value)
		}
		path = matches[0]
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	text := strings.TrimRight(string(content), "\n")
	switch {
	case state.Label != nil:
		state.Label.Text.Set(text)
	case state.TextInput != nil:
		state.TextInput.Text.Set(text)
	case state.Canvas != nil:
		state.Canvas.Lines = strings.Split(text, "\n")
	default:
		return fmt.Errorf("widget kind %s has no text content", widget.Kind())
	}
	return nil
}

// insertStates stores the records of every materialized widget in the
// state tree under the now-final widget paths.
func (b *builder) insertStates(root *Widget, tree *StateTree) {
	root.Traverse(func(w *Widget) {
		if state, ok := b.states[w]; ok {
			tree.Insert(w.Path(), state)
		}
	})
}

// resolve wires the pending property references: the owner cell
// subscribes to the referenced cell and takes its current value.
func (b *builder) resolve(root *Widget, tree *StateTree, sched *Scheduler) error {
	for _, ref := range b.pending {
		var srcPath string
		switch ref.target {
		case "parent":
			if ref.owner.Parent() == nil {
				return fmt.Errorf("%w: %s has no parent", ErrNoSuchWidget, ref.owner.Path())
			}
			srcPath = ref.owner.Parent().Path()
		case "root":
			srcPath = root.Path()
		default:
			target := root.Find(ref.target)
			if target == nil {
				return fmt.Errorf("%w: %s", ErrNoSuchWidget, ref.target)
			}
			srcPath = target.Path()
		}

		src := tree.Get(srcPath)
		owner := tree.Get(ref.owner.Path())
		if src == nil || owner == nil {
			return fmt.Errorf("%w: %s", ErrNoSuchWidget, srcPath)
		}
		srcCell, err := src.Cell(ref.targetProp)
		if err != nil {
			return err
		}
		ownerCell, err := owner.Cell(ref.prop)
		if err != nil {
			return err
		}
		ownerCell.SetAny(srcCell.ValueAny())

		ownerPath, prop := ref.owner.Path(), ref.prop
		updater := func(t *StateTree, value any) string {
			state := t.Get(ownerPath)
			if state == nil {
				return ""
			}
			cell, err := state.Cell(prop)
			if err != nil {
				return ""
			}
			cell.SetAny(value)
			return ownerPath
		}
		sched.subscribeCell(srcPath+"/"+ref.targetProp, srcCell, updater)
	}
	b.pending = nil
	return nil
}

// BuildUI materializes a parsed UI definition into the widget tree and
// state tree, wiring property-reference subscriptions into the scheduler.
func BuildUI(def *UIDefinition, sched *Scheduler, baseDir string) (*Widget, *StateTree, error) {
	b := newBuilder(def.Templates, baseDir)
	root, err := b.expand(def.Root, def.Root.ID, map[string]bool{})
	if err != nil {
		return nil, nil, err
	}
	root.PropagatePaths()
	tree := NewStateTree()
	b.insertStates(root, tree)
	if err := b.resolve(root, tree, sched); err != nil {
		return nil, nil, err
	}
	return root, tree, nil
}

// expandTemplate materializes a template in isolation: the subtree gets
// paths below the given parent path and its records are returned without
// touching the state tree. Used by modals and PrepareCreateWidget.
func expandTemplate(templates map[string]*Definition, baseDir, name, id, parentPath string) (*Widget, map[string]*State, error) {
	b := newBuilder(templates, baseDir)
	if _, concrete := KindFromName(name); !concrete {
		if _, ok := templates[name]; !ok {
			return nil, nil, &ParseError{Kind: UnknownKind, Widget: name}
		}
	}
	widget, err := b.expand(&Definition{Type: name, ID: id}, id, map[string]bool{})
	if err != nil {
		return nil, nil, err
	}
	widget.SetPath(parentPath + "/" + id)
	widget.PropagatePaths()

	states := make(map[string]*State)
	widget.Traverse(func(w *Widget) {
		if s, ok := b.states[w]; ok {
			s.Path = w.Path()
			states[w.Path()] = s
		}
	})
	return widget, states, nil
}
