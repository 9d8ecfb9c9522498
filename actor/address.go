package actor

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Address is an opaque reference to an actor: a pair of (actor id, handle
// to the actor) equal by actor id. Any actor holding an Address can
// asynchronously enqueue a message on the addressed actor's mailbox
// (Cast) or synchronously request/await a response (Call). Addresses
// travel freely inside messages — the codec encodes and decodes them
// as {"_pyact_address": "<id>"} — and are safe to compare and hold onto
// after the actor they name has terminated; Cast, Call, Link and Kill on
// a dead actor's Address fail with ErrDeadActor, while Wait returns the
// actor's final outcome.
type Address struct {
	// id is retained for a decoded Address naming an actor id the local
	// registry has never heard of: handle is nil in that case, and id is
	// all there is to report in a DeadActorError.
	id       string
	handle   *actorHandle
	registry *Registry
}

// ID returns the actor id this Address currently names. For a live
// Address this tracks Rename; for one decoded from an unknown id it is
// the id as received.
func (a Address) ID() string {
	if a.handle != nil {
		a.handle.linkMu.Lock()
		defer a.handle.linkMu.Unlock()
		return a.handle.id
	}
	return a.id
}

// Equal reports whether a and other name the same actor.
func (a Address) Equal(other Address) bool {
	if a.handle != nil || other.handle != nil {
		return a.handle == other.handle
	}
	return a.id == other.id
}

// IsZero reports whether a is the zero Address, naming no actor at all
// (as opposed to an actor that once existed and has since died).
func (a Address) IsZero() bool {
	return a.handle == nil && a.id == ""
}

func (a Address) actorRef() (*actorHandle, error) {
	if a.handle == nil {
		return nil, &DeadActorError{ActorID: a.id}
	}
	if !a.handle.alive.Load() {
		return nil, &DeadActorError{ActorID: a.handle.id}
	}
	return a.handle, nil
}

// Cast asynchronously enqueues message on the addressed actor's mailbox.
// The message is round-tripped through the codec even for in-process
// delivery, so the receiver can never observe or mutate the sender's
// copy of any container it passed in.
func (a Address) Cast(message Value) error {
	h, err := a.actorRef()
	if err != nil {
		return err
	}
	return h.cast(message)
}

// Link subscribes caller to be notified when the actor a addresses
// terminates: it always receives an {address, exception} message on an
// abnormal exit, and additionally an {address, exit} message on a normal
// one when trapExit is true.
func (a Address) Link(caller *Actor, trapExit bool) error {
	h, err := a.actorRef()
	if err != nil {
		return err
	}
	h.addLink(caller.Address(), trapExit)
	return nil
}

// Wait blocks until the actor a addresses terminates, returning its
// result on a normal exit or the error it terminated with otherwise
// (including ErrKilled, if it was killed). It returns immediately if the
// actor has already terminated.
func (a Address) Wait(ctx context.Context) (Value, error) {
	if a.handle == nil {
		return nil, &DeadActorError{ActorID: a.id}
	}
	select {
	case <-a.handle.waitCh:
		return a.handle.result, a.handle.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Kill asynchronously terminates the addressed actor with ErrKilled. Any
// actor waiting on this Address observes ErrKilled from Wait, and alinks
// receive the usual exception notification. Kill is only guaranteed to
// take effect at one of the actor's suspension points (Receive, Sleep,
// Cooperate, or Wait on another actor) — see Actor.Context.
func (a Address) Kill() error {
	h, err := a.actorRef()
	if err != nil {
		return err
	}
	h.cancel(ErrKilled)
	return nil
}

// Call sends a cast encoding {call, method, address, message}, correlated
// by a fresh id, and selectively receives the matching response on the
// caller's mailbox: {response, message} on success, {response, exception}
// as ErrRemoteException (via *RemoteError), or {response, invalid_method}
// as ErrRemoteAttributeError (via *RemoteMethodError). If timeout is
// positive, a response not observed within it fails with ErrTimeout; the
// callee is not otherwise notified or cancelled.
func (a Address) Call(ctx context.Context, caller *Actor, method string, payload Value, timeout time.Duration) (Value, error) {
	h, err := a.actorRef()
	if err != nil {
		return nil, err
	}

	callID := uuid.NewString()
	if err := h.cast(Map{
		"call":    callID,
		"method":  method,
		"address": caller.Address(),
		"message": payload,
	}); err != nil {
		return nil, err
	}

	respShape := Map{"response": callID, "message": Any}
	excShape := Map{"response": callID, "exception": Any}
	invShape := Map{"response": callID, "invalid_method": Any}

	rctx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		rctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	idx, msg, rerr := caller.receiveMatch(rctx, respShape, excShape, invShape)
	if rerr != nil {
		return nil, rerr
	}
	if idx < 0 {
		// Our own deadline elapsed without a response; the callee is not
		// notified and may still answer into a mailbox nobody is
		// receiving for anymore.
		return nil, ErrTimeout
	}

	m, _ := msg.(Map)
	switch idx {
	case 1:
		return nil, &RemoteError{Detail: exceptionDetailFromValue(m["exception"])}
	case 2:
		method, _ := m["invalid_method"].(string)
		return nil, &RemoteMethodError{Method: method}
	default:
		return m["message"], nil
	}
}

// Invoke curries Call into a terser call-site sugar, standing in for the
// reference implementation's addr.method(payload, timeout) dynamic
// dispatch (which has no Go equivalent, since Go has no dynamic attribute
// access): addr.Invoke("foo")(ctx, caller, payload, timeout) is exactly
// addr.Call(ctx, caller, "foo", payload, timeout).
func (a Address) Invoke(method string) func(ctx context.Context, caller *Actor, payload Value, timeout time.Duration) (Value, error) {
	return func(ctx context.Context, caller *Actor, payload Value, timeout time.Duration) (Value, error) {
		return a.Call(ctx, caller, method, payload, timeout)
	}
}

func exceptionDetailFromValue(v Value) ExceptionDetail {
	m, ok := v.(Map)
	if !ok {
		return ExceptionDetail{Kind: "unknown"}
	}
	kind, _ := m["kind"].(string)
	message, _ := m["message"].(string)
	trace, _ := m["trace"].(string)
	return ExceptionDetail{Kind: kind, Message: message, Trace: trace}
}
