package actor

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
)

// RunFunc is the body of an actor: given the actor's own context (done
// when the actor is killed) and a handle to itself (for Receive, Sleep,
// and friends), it runs to completion and returns either a result or an
// error; any arguments are captured by the closure. Returning an error
// is equivalent to a panic inside the reference implementation's run
// method — it drives the exceptional-completion path, casting a
// formatted exception to every alink.
//
// A panic inside RunFunc is recovered at the run boundary and treated
// exactly the same way; no panic or error ever crosses the actor
// boundary directly; supervisors only ever observe the structured
// {address, exit} / {address, exception} messages.
type RunFunc func(ctx context.Context, self *Actor) (Value, error)

// Actor is the handle a running actor uses to interact with its own
// mailbox and lifecycle. It is never constructed directly — Spawn and
// SpawnLink create one and pass it to the RunFunc.
type Actor struct {
	handle *actorHandle
}

// Address returns this actor's own Address, suitable for embedding in
// messages so other actors can reply or link back.
func (a *Actor) Address() Address {
	return Address{id: a.handle.id, handle: a.handle, registry: a.handle.registry}
}

// Context returns the actor's lifetime context, done (with cause
// ErrKilled) once Kill has been called on its Address. RunFuncs that do
// their own blocking (beyond Receive/Sleep/Cooperate/Wait) should select
// on this to remain killable.
func (a *Actor) Context() context.Context {
	return a.handle.ctx
}

// Receive selects the first mailbox entry matching any of patterns (the
// wildcard Any if none are given), ties broken by pattern order, and
// removes it in place; non-matching entries keep their relative order.
// If nothing matches yet, it blocks until something does, the actor is
// killed, or ctx is done.
//
// A plain Receive(ctx, ...) with no deadline on ctx blocks until a match
// or a kill. To receive with a timeout, wrap ctx with context.WithTimeout
// (or use ReceiveTimeout): when that deadline elapses before anything
// matches, Receive returns (nil, nil, nil) — a receive timeout is not an
// error, it is the normal "nothing arrived in time" outcome. A kill,
// by contrast, surfaces as (nil, nil, ErrKilled).
func (a *Actor) Receive(ctx context.Context, patterns ...Shape) (Shape, Value, error) {
	idx, v, err := a.receiveMatch(ctx, patterns...)
	if idx < 0 {
		return nil, v, err
	}
	if len(patterns) == 0 {
		return Any, v, nil
	}
	return patterns[idx], v, nil
}

// ReceiveTimeout is Receive wrapped in context.WithTimeout(ctx, timeout).
func (a *Actor) ReceiveTimeout(ctx context.Context, timeout time.Duration, patterns ...Shape) (Shape, Value, error) {
	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return a.Receive(cctx, patterns...)
}

// receiveMatch is Receive's implementation, returning the index into
// patterns that matched instead of the Shape itself — callers like Call
// that passed in several structurally-similar shapes need to know which
// one fired, and Shape values are not safely comparable with == when
// they are Map/Tuple/Seq/Set.
func (a *Actor) receiveMatch(ctx context.Context, patterns ...Shape) (int, Value, error) {
	effective := patterns
	if len(effective) == 0 {
		effective = []Shape{Any}
	}
	mb := a.handle.mailbox
	for {
		if idx, v, ok := mb.scanRemove(effective); ok {
			return idx, v, nil
		}
		select {
		case <-mb.notify:
			continue
		case <-ctx.Done():
			return -1, nil, receiveDoneError(ctx)
		}
	}
}

// receiveDoneError classifies why ctx is done: a kill (ErrKilled), this
// receive's own deadline elapsing (nil — not an error, see Receive's doc
// comment), or some other cancellation the caller is responsible for
// (returned as-is).
func receiveDoneError(ctx context.Context) error {
	cause := context.Cause(ctx)
	switch {
	case errors.Is(cause, ErrKilled):
		return ErrKilled
	case errors.Is(cause, context.DeadlineExceeded):
		return nil
	default:
		return cause
	}
}

// Sleep blocks for d, or until the actor is killed or ctx is done,
// whichever comes first.
func (a *Actor) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return a.Cooperate(ctx)
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return receiveDoneError(ctx)
	}
}

// Cooperate yields to the scheduler without otherwise pausing, the
// actor's equivalent of sleep(0). It still observes a kill that arrived
// before it was called.
func (a *Actor) Cooperate(ctx context.Context) error {
	runtime.Gosched()
	select {
	case <-ctx.Done():
		return receiveDoneError(ctx)
	default:
		return nil
	}
}

// AddLink subscribes addr to be notified when this actor terminates,
// equivalent to a.Address().Link(linker, trapExit) called by the actor
// linker that addr names.
func (a *Actor) AddLink(addr Address, trapExit bool) {
	a.handle.addLink(addr, trapExit)
}

// Rename changes this actor's id and re-keys the registry atomically.
// Existing Addresses continue to resolve to the same actor across the
// rename, since they hold the *actorHandle directly rather than a copy
// of the id.
func (a *Actor) Rename(newID string) {
	a.handle.registry.rename(a.handle, newID)
}

// Spawn starts a new actor running run against DefaultRegistry and
// returns its Address. The actor's goroutine does not begin executing
// run until after Spawn has finished all of its own bookkeeping
// (registering the actor and, for SpawnLink, installing the caller's
// link) — see the comment on deferred start inside spawn.
func Spawn(run RunFunc) Address {
	return spawn(DefaultRegistry, Address{}, false, run)
}

// SpawnLink is Spawn plus linking caller as both an alink and an exit
// link of the new actor before it starts, so caller is notified however
// the new actor terminates.
func SpawnLink(caller *Actor, run RunFunc) Address {
	return spawn(DefaultRegistry, caller.Address(), true, run)
}

// SpawnIn and SpawnLinkIn are Spawn/SpawnLink against an explicit
// Registry, for isolating actor populations (e.g. between tests) instead
// of sharing DefaultRegistry.
func SpawnIn(reg *Registry, run RunFunc) Address {
	return spawn(reg, Address{}, false, run)
}

func SpawnLinkIn(reg *Registry, caller *Actor, run RunFunc) Address {
	return spawn(reg, caller.Address(), true, run)
}

func spawn(reg *Registry, linkTo Address, link bool, run RunFunc) Address {
	h := newActorHandle(reg, uuid.NewString())
	reg.register(h)

	// The real invariant the reference implementation's deferred start
	// protects — that the spawning actor's setup (here, installing the
	// link) completes before the child can be observed to have run —
	// holds structurally: the link is installed synchronously, before
	// the goroutine below is even started, rather than by racing a
	// scheduler tick. The Gosched inside the goroutine is a courtesy
	// that biases towards the reference implementation's "one tick
	// later" ordering in the common case, not a correctness requirement.
	if link {
		h.addLink(linkTo, true)
	}

	addr := h.addressIn(reg)
	a := &Actor{handle: h}

	go func() {
		runtime.Gosched()
		result, err := invokeRun(h.ctx, run, a)
		h.finish(result, err)
	}()

	return addr
}

func invokeRun(ctx context.Context, run RunFunc, a *Actor) (result Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &panicError{value: r, stack: debug.Stack()}
		}
	}()
	return run(ctx, a)
}

// panicError adapts a recovered panic value into an error so it can flow
// through the same exceptional-completion path as a returned error.
type panicError struct {
	value interface{}
	stack []byte
}

func (e *panicError) Error() string {
	return fmt.Sprintf("actor panicked: %v", e.value)
}

func formatException(err error) ExceptionDetail {
	if pe, ok := err.(*panicError); ok {
		return ExceptionDetail{
			Kind:    "panic",
			Message: fmt.Sprintf("%v", pe.value),
			Trace:   string(pe.stack),
		}
	}
	return ExceptionDetail{
		Kind:    fmt.Sprintf("%T", err),
		Message: err.Error(),
	}
}
