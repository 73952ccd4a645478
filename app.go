package main

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/wailsapp/wails/v2/pkg/runtime"

	"github.com/stylus-cad/stylus/pkg/geom"
	"github.com/stylus-cad/stylus/pkg/kernel"
	"github.com/stylus-cad/stylus/pkg/kernel/sdfx"
	"github.com/stylus-cad/stylus/pkg/script"
	"github.com/stylus-cad/stylus/pkg/sketch"
	"github.com/stylus-cad/stylus/pkg/solid"
	"github.com/stylus-cad/stylus/pkg/stl"
	"github.com/stylus-cad/stylus/pkg/tools"
	"github.com/stylus-cad/stylus/pkg/watch"
)

// App is the Wails backend. It owns the live sketch document, the tool
// state machines, the feature history, and the script engine, and
// exposes them to the frontend via bindings. All bound methods are
// safe for concurrent use.
type App struct {
	ctx context.Context

	mu      sync.Mutex
	doc     *sketch.Document
	toolbox *tools.Toolbox
	history *solid.History
	engine  *script.Engine
	kernel  kernel.Kernel
	watcher *watch.Watcher
}

// MeshData is the JSON-serializable mesh format sent to the frontend.
type MeshData struct {
	Vertices []float32 `json:"vertices"`
	Normals  []float32 `json:"normals"`
	Indices  []uint32  `json:"indices"`
}

// EvalErrorData is a JSON-serializable eval error for the frontend.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// EvalResultData is the script evaluation result for the frontend.
type EvalResultData struct {
	Sketch string          `json:"sketch"`
	Errors []EvalErrorData `json:"errors"`
}

// FindingData is a JSON-serializable constraint check finding.
type FindingData struct {
	ConstraintID string  `json:"constraintId"`
	Kind         string  `json:"kind"`
	Residual     float64 `json:"residual"`
	Satisfied    bool    `json:"satisfied"`
}

// NewApp creates a new App with an empty sketch and the sdfx kernel.
func NewApp() *App {
	a := &App{
		doc:     sketch.New(),
		history: solid.NewHistory(),
		engine:  script.NewEngine(),
		kernel:  sdfx.New(),
	}
	a.toolbox = tools.NewToolbox(a.doc, tools.DefaultConfig)
	a.doc.SetOnChange(a.emitChanged)
	return a
}

// startup is called by Wails on app startup. The context is saved so
// document change notifications can reach the frontend.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
}

// shutdown is called by Wails on exit.
func (a *App) shutdown(ctx context.Context) {
	a.mu.Lock()
	w := a.watcher
	a.watcher = nil
	a.mu.Unlock()
	if w != nil {
		w.Close()
	}
}

func (a *App) emitChanged() {
	if a.ctx != nil {
		runtime.EventsEmit(a.ctx, "sketch:changed")
	}
}

// ---------------------------------------------------------------------------
// Tool bindings
// ---------------------------------------------------------------------------

// ToolNames returns the available tool names.
func (a *App) ToolNames() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.toolbox.Names()
}

// ActiveTool returns the name of the active tool.
func (a *App) ActiveTool() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.toolbox.Active().Name()
}

// ActivateTool switches the active tool, cancelling any in-progress
// interaction on the previous one.
func (a *App) ActivateTool(name string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.toolbox.Activate(name)
}

// PointerDown forwards a pointer press in sketch coordinates.
func (a *App) PointerDown(x, y float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.toolbox.Active().PointerDown(geom.Vec2{X: x, Y: y})
}

// PointerMove forwards a pointer move in sketch coordinates.
func (a *App) PointerMove(x, y float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.toolbox.Active().PointerMove(geom.Vec2{X: x, Y: y})
}

// PointerUp forwards a pointer release in sketch coordinates.
func (a *App) PointerUp(x, y float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.toolbox.Active().PointerUp(geom.Vec2{X: x, Y: y})
}

// CancelTool aborts the active tool's in-progress interaction.
func (a *App) CancelTool() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.toolbox.Active().Cancel()
}

// ---------------------------------------------------------------------------
// Document bindings
// ---------------------------------------------------------------------------

// Undo reverts the last mutation. Returns false when the undo stack is
// empty.
func (a *App) Undo() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.doc.Undo()
}

// Redo reapplies the last undone mutation.
func (a *App) Redo() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.doc.Redo()
}

// CanUndo reports whether an undo step is available.
func (a *App) CanUndo() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.doc.CanUndo()
}

// CanRedo reports whether a redo step is available.
func (a *App) CanRedo() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.doc.CanRedo()
}

// SketchJSON returns the current document serialized to JSON.
func (a *App) SketchJSON() (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	data, err := a.doc.ToJSON()
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// SaveSketch writes the document to path as JSON.
func (a *App) SaveSketch(path string) error {
	a.mu.Lock()
	data, err := a.doc.ToJSON()
	a.mu.Unlock()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadSketch replaces the document with the contents of path. The load
// is atomic: a malformed file leaves the current document untouched.
func (a *App) LoadSketch(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	doc, err := sketch.FromJSON(data)
	if err != nil {
		return err
	}
	a.replaceDocument(doc)
	return nil
}

// replaceDocument swaps in a new document, rebinding the toolbox and
// the change notification.
func (a *App) replaceDocument(doc *sketch.Document) {
	a.mu.Lock()
	a.doc = doc
	a.toolbox = tools.NewToolbox(doc, tools.DefaultConfig)
	doc.SetOnChange(a.emitChanged)
	a.mu.Unlock()
	a.emitChanged()
}

// WatchSketch loads path and reloads it whenever it changes on disk.
// A reload emits "sketch:reloaded"; a failed reload emits
// "sketch:reload-error" and keeps the current document.
func (a *App) WatchSketch(path string) error {
	if err := a.LoadSketch(path); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.watcher == nil {
		w, err := watch.New(watch.DefaultDebounce)
		if err != nil {
			return err
		}
		a.watcher = w
		w.Start()
	}
	return a.watcher.Watch([]string{path}, func(changed string) {
		if err := a.LoadSketch(changed); err != nil {
			if a.ctx != nil {
				runtime.EventsEmit(a.ctx, "sketch:reload-error", err.Error())
			}
			return
		}
		if a.ctx != nil {
			runtime.EventsEmit(a.ctx, "sketch:reloaded", changed)
		}
	})
}

// CheckConstraints re-evaluates every constraint and returns the
// findings.
func (a *App) CheckConstraints() []FindingData {
	a.mu.Lock()
	defer a.mu.Unlock()

	result := sketch.Validate(a.doc)
	out := make([]FindingData, 0, len(result.Findings))
	for _, f := range result.Findings {
		out = append(out, FindingData{
			ConstraintID: string(f.ConstraintID),
			Kind:         f.Kind.String(),
			Residual:     f.Residual,
			Satisfied:    f.Satisfied,
		})
	}
	return out
}

// ---------------------------------------------------------------------------
// Script bindings
// ---------------------------------------------------------------------------

// EvaluateScript runs a sketch script. On success the live document
// and feature history are replaced with the script's output.
func (a *App) EvaluateScript(source string) EvalResultData {
	out := EvalResultData{Errors: []EvalErrorData{}}

	res, err := a.engine.Evaluate(source)
	if err != nil {
		out.Errors = append(out.Errors, EvalErrorData{Message: err.Error()})
		return out
	}
	if !res.OK() {
		for _, e := range res.Errors {
			out.Errors = append(out.Errors, EvalErrorData{Line: e.Line, Col: e.Col, Message: e.Message})
		}
		return out
	}

	a.replaceDocument(res.Doc)
	a.mu.Lock()
	a.history = res.History
	a.mu.Unlock()

	if data, err := res.Doc.ToJSON(); err == nil {
		out.Sketch = string(data)
	}
	return out
}

// ---------------------------------------------------------------------------
// Solid bindings
// ---------------------------------------------------------------------------

// AddExtrude records an extrusion of the currently selected entities
// and returns the feature id.
func (a *App) AddExtrude(distance float64, mode string, second float64) (string, error) {
	var m solid.ExtrudeMode
	switch mode {
	case "single", "":
		m = solid.ModeSingle
	case "symmetric":
		m = solid.ModeSymmetric
	case "two-sided":
		m = solid.ModeTwoSided
	default:
		return "", fmt.Errorf("unknown extrude mode %q", mode)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	profile := a.doc.SelectedIDs()
	if len(profile) == 0 {
		return "", fmt.Errorf("nothing selected to extrude")
	}
	op := a.history.Add(solid.Operation{
		Kind:    solid.OpExtrude,
		Profile: profile,
		Extrude: solid.ExtrudeParams{Distance: distance, Mode: m, SecondDistance: second},
	})
	return op.ID, nil
}

// AddRevolve records a revolution of the currently selected entities
// and returns the feature id.
func (a *App) AddRevolve(angle float64) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	profile := a.doc.SelectedIDs()
	if len(profile) == 0 {
		return "", fmt.Errorf("nothing selected to revolve")
	}
	op := a.history.Add(solid.Operation{
		Kind:    solid.OpRevolve,
		Profile: profile,
		Revolve: solid.RevolveParams{Angle: angle},
	})
	return op.ID, nil
}

// RemoveFeature deletes a feature from the history.
func (a *App) RemoveFeature(id string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.history.Remove(id)
}

// Mesh regenerates the feature history and returns the merged mesh in
// the flat-array format the viewport consumes.
func (a *App) Mesh() MeshData {
	a.mu.Lock()
	mesh := a.history.Regenerate(a.doc, a.kernel)
	a.mu.Unlock()
	return flattenMesh(mesh)
}

// ExportSTL regenerates the feature history and writes it to path.
func (a *App) ExportSTL(path string, ascii bool) error {
	a.mu.Lock()
	mesh := a.history.Regenerate(a.doc, a.kernel)
	name := a.doc.Name
	a.mu.Unlock()

	if mesh.IsEmpty() {
		return fmt.Errorf("nothing to export: no features generate geometry")
	}
	return stl.WriteFile(path, mesh, name, ascii)
}

// flattenMesh fan-triangulates an indexed mesh into the flat arrays
// the frontend renderer uploads directly.
func flattenMesh(m *solid.Mesh) MeshData {
	out := MeshData{
		Vertices: []float32{},
		Normals:  []float32{},
		Indices:  []uint32{},
	}
	for _, f := range m.Faces {
		if len(f.Indices) < 3 {
			continue
		}
		ok := true
		for _, idx := range f.Indices {
			if idx < 0 || idx >= len(m.Vertices) {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		for i := 1; i+1 < len(f.Indices); i++ {
			a := m.Vertices[f.Indices[0]]
			b := m.Vertices[f.Indices[i]]
			c := m.Vertices[f.Indices[i+1]]

			var n geom.Vec3
			if f.Normal != nil {
				n = *f.Normal
			} else {
				cross := b.Sub(a).Cross(c.Sub(a))
				if l := cross.Length(); l > 1e-12 {
					n = cross.Mul(1 / l)
				}
			}

			for _, v := range [3]geom.Vec3{a, b, c} {
				out.Indices = append(out.Indices, uint32(len(out.Vertices)/3))
				out.Vertices = append(out.Vertices, float32(v.X), float32(v.Y), float32(v.Z))
				out.Normals = append(out.Normals, float32(n.X), float32(n.Y), float32(n.Z))
			}
		}
	}
	return out
}
