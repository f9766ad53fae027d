// Package orchestrator runs remote actions behind named loading flags and a
// shared error slot. Every action follows the same shape: flag up, error
// slot cleared, call, outcome recorded, flag down. The flag release is
// deferred so it survives panics in the call path.
package orchestrator

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/partykeep/partykeep/internal/platform/errors"
)

const tracerName = "github.com/partykeep/partykeep/internal/orchestrator"

// Operation is one remote call plus whatever cache folding follows it.
type Operation func(ctx context.Context) error

// Result is the envelope every action handler returns to its caller.
type Result struct {
	Success bool
	Err     *apperrors.Error
}

// Runner tracks per-key loading flags and the shared error slot. Concurrent
// actions under different keys are allowed; a repeated key re-sets the flag
// unless the caller opts into the exclusive variant.
type Runner struct {
	mu       sync.Mutex
	loading  map[string]bool
	inFlight map[string]bool
	lastErr  *apperrors.Error
	tracer   trace.Tracer
}

// NewRunner returns a runner with no flags set.
func NewRunner() *Runner {
	return &Runner{
		loading:  make(map[string]bool),
		inFlight: make(map[string]bool),
		tracer:   otel.Tracer(tracerName),
	}
}

// Loading reports whether the named flag is currently set.
func (r *Runner) Loading(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loading[key]
}

// Err returns the current error slot value, nil when the last action
// succeeded or no action ran yet.
func (r *Runner) Err() *apperrors.Error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastErr
}

// ClearErr empties the error slot without running an action.
func (r *Runner) ClearErr() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastErr = nil
}

// Do runs one operation under the named loading flag. Failures land in the
// error slot except stale-target errors, which are discarded silently.
func (r *Runner) Do(ctx context.Context, key string, op Operation) Result {
	r.begin(key)
	defer r.end(key)

	ctx, span := r.tracer.Start(ctx, key)
	defer span.End()

	if err := op(ctx); err != nil {
		if apperrors.KindOf(err) == apperrors.KindStale {
			// A response for an entity the user already left. Nothing to
			// show; the flag release is the only observable effect.
			return Result{Success: false, Err: apperrors.AsError(err, apperrors.CodeStaleTarget, "stale response discarded")}
		}
		appErr := apperrors.AsError(err, apperrors.CodeUnknown, "the request could not be completed")
		span.RecordError(err)
		span.SetStatus(codes.Error, string(appErr.Code))
		r.fail(appErr)
		return Result{Success: false, Err: appErr}
	}

	span.SetStatus(codes.Ok, "")
	return Result{Success: true}
}

// DoExclusive behaves like Do but rejects a second call under the same key
// while the first is still in flight.
func (r *Runner) DoExclusive(ctx context.Context, key string, op Operation) Result {
	r.mu.Lock()
	if r.inFlight[key] {
		r.mu.Unlock()
		return Result{Success: false, Err: apperrors.New(apperrors.CodeActionInFlight, "action already in progress")}
	}
	r.inFlight[key] = true
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		delete(r.inFlight, key)
		r.mu.Unlock()
	}()

	return r.Do(ctx, key, op)
}

func (r *Runner) begin(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loading[key] = true
	r.lastErr = nil
}

func (r *Runner) end(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.loading, key)
}

func (r *Runner) fail(err *apperrors.Error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastErr = err
}
