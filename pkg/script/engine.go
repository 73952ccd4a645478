// Package script provides the Lisp evaluation engine for Stylus.
// It wraps zygomys in a sandboxed environment and produces a sketch
// document plus a feature history from user source code, so sketches
// can be authored and regenerated as text.
package script

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/stylus-cad/stylus/pkg/sketch"
	"github.com/stylus-cad/stylus/pkg/solid"
)

// EvalError represents a non-fatal error encountered during evaluation,
// such as a parse error or a runtime error in user code.
type EvalError struct {
	Line    int
	Col     int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Result bundles the full output of an evaluation.
type Result struct {
	Doc     *sketch.Document
	History *solid.History
	Errors  []EvalError
}

// OK reports whether the evaluation produced no errors.
func (r *Result) OK() bool {
	return r != nil && len(r.Errors) == 0
}

// Engine wraps the zygomys interpreter for sketch scripts.
// It is safe for concurrent use; each call to Evaluate creates a fresh
// sandboxed environment for determinism.
type Engine struct {
	mu         sync.Mutex
	generation uint64
}

// NewEngine creates a new Engine instance.
func NewEngine() *Engine {
	return &Engine{}
}

// Evaluate takes Lisp source code and produces a sketch document and
// feature history. Each call creates a fresh zygomys sandbox for
// deterministic evaluation.
//
// Return semantics:
//   - On success: Result with empty Errors, nil error
//   - On parse/eval failure: Result with Errors set, nil error
//   - On fatal failure (timeout, panic): nil Result, non-nil error
func (e *Engine) Evaluate(source string) (*Result, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	ch := make(chan evalResult, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()

		res, err := e.evaluate(source)
		ch <- evalResult{result: res, err: err}
	}()

	return waitWithTimeout(ch, gen, &e.mu, &e.generation)
}

// evaluate performs the actual zygomys evaluation in a fresh sandbox.
func (e *Engine) evaluate(source string) (*Result, error) {
	doc := sketch.New()
	history := solid.NewHistory()
	res := &Result{Doc: doc, History: history}

	// Empty source is a valid program that produces an empty sketch.
	if strings.TrimSpace(source) == "" {
		return res, nil
	}

	// Sandbox mode prevents user code from accessing the filesystem
	// or syscalls.
	env := zygo.NewZlispSandbox()
	defer env.Stop()

	registerBuiltins(env, doc, history)

	if err := env.LoadString(preprocessSource(source)); err != nil {
		res.Errors = parseZygomysError(err)
		return res, nil
	}

	if _, err := env.Run(); err != nil {
		res.Errors = parseZygomysError(err)
		return res, nil
	}

	return res, nil
}

// linePattern matches zygomys error messages that include "Error on line N: ..."
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches simpler "line N: ..." patterns.
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// parseZygomysError converts a zygomys error into one or more EvalError
// values, extracting line numbers from the message where possible.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()

	if m := linePattern.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		return []EvalError{{Line: line, Message: strings.TrimSpace(m[2])}}
	}

	if m := linePatternShort.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		return []EvalError{{Line: line, Message: strings.TrimSpace(m[2])}}
	}

	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
