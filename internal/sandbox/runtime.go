package sandbox

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dop251/goja"
)

// Runtime wraps a goja VM configured with endowments instead of ambient
// globals.
type Runtime struct {
	vm     *goja.Runtime
	config Config
	mu     sync.Mutex

	console   []LogEntry
	consoleMu sync.Mutex
}

// New creates a runtime with the endowment set installed.
func New(config Config) (*Runtime, error) {
	vm := goja.New()
	vm.SetMaxCallStackSize(1024)

	r := &Runtime{
		vm:     vm,
		config: config,
	}
	if err := r.installEndowments(); err != nil {
		return nil, err
	}
	return r, nil
}

// Verify evaluates a postprocessed bundle, asserts it produced a
// zero-argument function, and invokes it once. The timeout covers both
// evaluation and invocation.
func (r *Runtime) Verify(ctx context.Context, bundle string) (*Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	start := time.Now()

	timer := time.NewTimer(r.config.Timeout)
	defer timer.Stop()
	defer r.vm.ClearInterrupt()
	done := make(chan struct{})
	go func() {
		select {
		case <-timer.C:
			r.vm.Interrupt("execution timeout exceeded")
		case <-ctx.Done():
			r.vm.Interrupt("context cancelled")
		case <-done:
		}
	}()
	defer close(done)

	r.consoleMu.Lock()
	r.console = r.console[:0]
	r.consoleMu.Unlock()

	val, err := r.vm.RunString(bundle)
	if err != nil {
		return nil, fmt.Errorf("bundle failed to evaluate: %w", err)
	}

	fn, ok := goja.AssertFunction(val)
	if !ok {
		return nil, fmt.Errorf("bundle did not evaluate to a callable, got %s", val.ExportType())
	}

	ret, err := fn(goja.Undefined())
	if err != nil {
		return nil, fmt.Errorf("bundle invocation failed: %w", err)
	}

	result := &Result{Duration: time.Since(start)}
	if ret != nil && !goja.IsUndefined(ret) && !goja.IsNull(ret) {
		result.Value = ret.Export()
	}

	r.consoleMu.Lock()
	result.Console = append([]LogEntry{}, r.console...)
	r.consoleMu.Unlock()

	return result, nil
}

// installEndowments removes Node globals and grants the explicit
// capability set the postprocessor targets.
func (r *Runtime) installEndowments() error {
	r.vm.Set("require", goja.Undefined())
	r.vm.Set("process", goja.Undefined())
	r.vm.Set("module", goja.Undefined())
	r.vm.Set("exports", goja.Undefined())

	// The postprocessor rewrites worker-style `self` references to
	// `window`; endow window as an alias of the global object.
	if err := r.vm.Set("window", r.vm.GlobalObject()); err != nil {
		return err
	}

	// Buffer is endowed rather than passed as a call argument, which is
	// why the postprocessor strips the bundler-injected parameter.
	buffer := r.vm.NewObject()
	if err := buffer.Set("isBuffer", func(goja.FunctionCall) goja.Value {
		return r.vm.ToValue(false)
	}); err != nil {
		return err
	}
	if err := r.vm.Set("Buffer", buffer); err != nil {
		return err
	}

	if r.config.EnableConsole {
		console := r.vm.NewObject()
		for _, level := range []string{"log", "warn", "error", "info"} {
			if err := console.Set(level, r.makeConsoleFunc(level)); err != nil {
				return err
			}
		}
		if err := r.vm.Set("console", console); err != nil {
			return err
		}
	}

	// Timers are no-ops; setImmediate stays absent on purpose, since the
	// postprocessor patches the known call sites away.
	noop := func(goja.FunctionCall) goja.Value { return goja.Undefined() }
	r.vm.Set("setTimeout", noop)
	r.vm.Set("setInterval", noop)

	return nil
}

func (r *Runtime) makeConsoleFunc(level string) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		var msg string
		for i, arg := range call.Arguments {
			if i > 0 {
				msg += " "
			}
			msg += arg.String()
		}

		r.consoleMu.Lock()
		r.console = append(r.console, LogEntry{
			Level:   level,
			Message: msg,
			Time:    time.Now(),
		})
		r.consoleMu.Unlock()

		return goja.Undefined()
	}
}

// Close releases the VM.
func (r *Runtime) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.vm = nil
	r.console = nil
	return nil
}
