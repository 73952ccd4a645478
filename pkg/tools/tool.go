// Package tools implements the interactive drawing tools of Stylus.
// Each tool is a small state machine driven by world-space pointer
// events; tools never paint or capture input themselves — the input
// collaborator transforms device events to world space and the render
// collaborator reads the preview accessors.
package tools

import (
	"fmt"
	"sort"

	"github.com/stylus-cad/stylus/pkg/geom"
	"github.com/stylus-cad/stylus/pkg/sketch"
)

// State is a tool's interaction phase.
type State int

const (
	StateIdle State = iota
	StateDrawing
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDrawing:
		return "drawing"
	default:
		return "unknown"
	}
}

// Config carries the interaction parameters shared by all tools.
type Config struct {
	GridSize     float64 // snap grid spacing in world units
	HitTolerance float64 // hit-test distance in world units
}

// DefaultConfig is the configuration used when none is supplied.
var DefaultConfig = Config{
	GridSize:     1,
	HitTolerance: 5,
}

// Tool is the contract every drawing tool implements. Pointer
// positions are in world space. Cancel resets only the tool's local
// drawing state, never the document.
type Tool interface {
	Name() string
	State() State
	PointerDown(p geom.Vec2)
	PointerMove(p geom.Vec2)
	PointerUp(p geom.Vec2)
	Cancel()

	// Preview returns the uncommitted entity being drawn, or nil.
	// The returned entity is not part of any document.
	Preview() *sketch.Entity
	// PreviewPoints returns in-progress reference points (e.g. the
	// clicks collected by the arc tool), or nil.
	PreviewPoints() []geom.Vec2
}

// Toolbox owns one instance of every tool over a shared document and
// tracks which one is active.
type Toolbox struct {
	doc    *sketch.Document
	cfg    Config
	tools  map[string]Tool
	active Tool
}

// NewToolbox creates a toolbox with every standard tool registered and
// the select tool active.
func NewToolbox(doc *sketch.Document, cfg Config) *Toolbox {
	if cfg.GridSize <= 0 {
		cfg.GridSize = DefaultConfig.GridSize
	}
	if cfg.HitTolerance <= 0 {
		cfg.HitTolerance = DefaultConfig.HitTolerance
	}
	tb := &Toolbox{
		doc:   doc,
		cfg:   cfg,
		tools: make(map[string]Tool),
	}
	for _, t := range []Tool{
		NewSelectTool(doc, cfg),
		NewLineTool(doc, cfg),
		NewCircleTool(doc, cfg),
		NewRectangleTool(doc, cfg),
		NewArcTool(doc, cfg),
		NewPointTool(doc, cfg),
		NewTrimTool(doc, cfg),
		NewDeleteTool(doc, cfg),
	} {
		tb.tools[t.Name()] = t
	}
	tb.active = tb.tools["select"]
	return tb
}

// Activate switches the active tool, cancelling the previous one.
func (tb *Toolbox) Activate(name string) error {
	t, ok := tb.tools[name]
	if !ok {
		return fmt.Errorf("tools: no tool named %q", name)
	}
	if tb.active != nil && tb.active != t {
		tb.active.Cancel()
	}
	tb.active = t
	return nil
}

// Active returns the currently active tool.
func (tb *Toolbox) Active() Tool {
	return tb.active
}

// Names returns the registered tool names, sorted.
func (tb *Toolbox) Names() []string {
	names := make([]string, 0, len(tb.tools))
	for name := range tb.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
