// Package script evaluates lisp programs that compose fsdf fields. Every
// registered fsdf primitive and operator is available as a function. Operators
// take the field they apply to as their first argument:
//
//	(def ball (sphere 1))
//	(union (translate ball [1 0 0]) (box 1) 0.25)
//
// Vectors are written as arrays. Optional trailing arguments may be left out
// or passed as nil.
package script

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	zygo "github.com/glycerine/zygomys/zygo"
	"github.com/soypat/fsdf"
)

// DefaultTimeout bounds a single evaluation when Engine.Timeout is zero.
const DefaultTimeout = 5 * time.Second

// ErrNoShape is returned when a program's last expression is not a shape.
var ErrNoShape = errors.New("program did not evaluate to a shape")

// EvalError is a parse or runtime error in user code.
type EvalError struct {
	Line    int
	Message string
}

func (e *EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Engine evaluates programs. Each evaluation runs in a fresh sandboxed
// interpreter so an Engine may be used from several goroutines. An Engine
// must not be copied after first use.
type Engine struct {
	// Timeout bounds how long Eval waits for a single evaluation. Zero selects
	// DefaultTimeout. The interpreter cannot be interrupted: an evaluation
	// that outlives its timeout keeps running in its own goroutine until the
	// program returns, which for a program that never halts is never.
	Timeout time.Duration

	abandoned atomic.Int64
}

type evalResult struct {
	shape fsdf.Shape
	err   error
}

const (
	evalRunning int32 = iota
	evalDone
	evalAbandoned
)

// evaluateFunc is replaced in tests.
var evaluateFunc = evaluate

// Eval runs source and returns the shape its last expression evaluates to.
// When ctx is done or the timeout expires first Eval returns the context's
// error and abandons the evaluation. Its goroutine is not stopped and is
// counted by Abandoned until it returns.
func (e *Engine) Eval(ctx context.Context, source string) (fsdf.Shape, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("script evaluation: %w", err)
	}
	timeout := e.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	var state atomic.Int32
	ch := make(chan evalResult, 1)
	go func() {
		ch <- evaluateRecover(source)
		if !state.CompareAndSwap(evalRunning, evalDone) {
			n := e.abandoned.Add(-1)
			fsdf.Logger().Info("abandoned script evaluation returned", "elapsed", time.Since(start), "abandoned", n)
		}
	}()

	var res evalResult
	select {
	case res = <-ch:
	case <-ctx.Done():
		n := e.abandoned.Add(1)
		if state.CompareAndSwap(evalRunning, evalAbandoned) {
			fsdf.Logger().Info("script evaluation abandoned", "bytes", len(source), "err", ctx.Err(), "abandoned", n)
			return nil, fmt.Errorf("script evaluation: %w", ctx.Err())
		}
		// Finished while the deadline fired.
		e.abandoned.Add(-1)
		res = <-ch
	}
	if res.err != nil {
		return nil, res.err
	}
	fsdf.Logger().Info("script evaluated", "bytes", len(source), "dims", res.shape.Dims(), "elapsed", time.Since(start))
	return res.shape, nil
}

// Abandoned returns the number of evaluations Eval gave up on that are still
// running.
func (e *Engine) Abandoned() int64 { return e.abandoned.Load() }

func evaluateRecover(source string) (res evalResult) {
	defer func() {
		if r := recover(); r != nil {
			res = evalResult{err: fmt.Errorf("panic during evaluation: %v", r)}
		}
	}()
	s, err := evaluateFunc(source)
	return evalResult{shape: s, err: err}
}

func evaluate(source string) (fsdf.Shape, error) {
	if strings.TrimSpace(source) == "" {
		return nil, ErrNoShape
	}
	env := zygo.NewZlispSandbox()
	defer env.Stop()
	registerBuiltins(env)

	err := env.LoadString(preprocessSource(source))
	if err != nil {
		return nil, parseZygomysError(err)
	}
	out, err := env.Run()
	if err != nil {
		return nil, parseZygomysError(err)
	}
	s, ok := out.(*sexpShape)
	if !ok {
		return nil, fmt.Errorf("%w: got %s", ErrNoShape, out.SexpString(nil))
	}
	return s.shape, nil
}

// preprocessSource converts ; line comments to the // comments zygomys
// understands, leaving string literals untouched.
func preprocessSource(source string) string {
	var sb strings.Builder
	sb.Grow(len(source))
	inString := false
	for i := 0; i < len(source); i++ {
		c := source[i]
		switch {
		case inString:
			sb.WriteByte(c)
			if c == '\\' && i+1 < len(source) {
				i++
				sb.WriteByte(source[i])
			} else if c == '"' {
				inString = false
			}
		case c == '"':
			inString = true
			sb.WriteByte(c)
		case c == ';':
			sb.WriteString("//")
			for i+1 < len(source) && source[i+1] == ';' {
				i++
			}
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

// linePattern matches zygomys error messages that include "Error on line N: ..."
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

func parseZygomysError(err error) *EvalError {
	msg := err.Error()
	if m := linePattern.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		return &EvalError{Line: line, Message: strings.TrimSpace(m[2])}
	}
	return &EvalError{Message: strings.TrimSpace(msg)}
}
