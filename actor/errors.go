package actor

import (
	"errors"
	"fmt"
)

// Sentinel errors forming the runtime's error taxonomy. Use errors.Is to
// test for these; the shape-mismatch family also exposes typed details via
// errors.As.
var (
	// ErrDeadActor is returned when cast/call/link/kill targets an actor
	// that has already terminated, and by Wait on an Address that names
	// no known actor.
	ErrDeadActor = errors.New("actor: dead actor")

	// ErrKilled is the cause installed by Address.Kill and surfaced to
	// Wait on the killed actor and to its alinks.
	ErrKilled = errors.New("actor: killed")

	// ErrTimeout is returned by Call when its own timer fires before a
	// response arrives. It is distinct from a plain Receive timeout,
	// which returns no error at all (see ReceiveTimeout in the package
	// doc comment on Actor.Receive).
	ErrTimeout = errors.New("actor: call timed out")

	// ErrRemoteAttributeError is returned by Call when the callee has no
	// method by that name.
	ErrRemoteAttributeError = errors.New("actor: remote has no such method")

	// ErrRemoteException is returned by Call when the callee's method
	// raised; the formatted detail is attached via RemoteError.
	ErrRemoteException = errors.New("actor: remote raised an exception")

	// ErrInvalidCallMessage is returned by Respond, RespondInvalidMethod,
	// and RespondException when orig does not conform to the call shape
	// (missing call/method/address/message). A well-formed call never
	// produces this; treat it as a programmer error rather than a
	// runtime condition.
	ErrInvalidCallMessage = errors.New("actor: message does not conform to the call shape")

	// ErrShapeMismatch is the base sentinel all shape-matching failures
	// wrap, so that errors.Is(err, ErrShapeMismatch) is true regardless
	// of which subtype was returned.
	ErrShapeMismatch = errors.New("actor: shape mismatch")
)

// RemoteError carries the formatted exception detail reported by a server
// method that failed, as attached to ErrRemoteException.
type RemoteError struct {
	Detail ExceptionDetail
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("actor: remote exception: %s: %s", e.Detail.Kind, e.Detail.Message)
}

func (e *RemoteError) Unwrap() error { return ErrRemoteException }

// RemoteMethodError names the method a Call addressed that the callee does
// not expose, attached to ErrRemoteAttributeError.
type RemoteMethodError struct {
	Method string
}

func (e *RemoteMethodError) Error() string {
	return fmt.Sprintf("actor: remote has no method %q", e.Method)
}

func (e *RemoteMethodError) Unwrap() error { return ErrRemoteAttributeError }

// DeadActorError names the actor id a dead-actor failure was raised
// against, attached to ErrDeadActor.
type DeadActorError struct {
	ActorID string
}

func (e *DeadActorError) Error() string {
	if e.ActorID == "" {
		return "actor: dead actor"
	}
	return fmt.Sprintf("actor: dead actor %q", e.ActorID)
}

func (e *DeadActorError) Unwrap() error { return ErrDeadActor }

// TypeMismatchError reports that a value's concrete type does not conform
// to the shape at the same position.
type TypeMismatchError struct {
	Want Shape
	Got  Value
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("actor: type mismatch: %v does not conform to shape %v", describeValue(e.Got), describeShape(e.Want))
}

func (e *TypeMismatchError) Unwrap() error { return ErrShapeMismatch }

// KeyMismatchError reports a mapping shape whose required key was absent
// from the value.
type KeyMismatchError struct {
	Key string
}

func (e *KeyMismatchError) Error() string {
	return fmt.Sprintf("actor: key mismatch: required key %q not present", e.Key)
}

func (e *KeyMismatchError) Unwrap() error { return ErrShapeMismatch }

// SizeMismatchError reports a tuple shape whose arity did not match the
// value's.
type SizeMismatchError struct {
	Want int
	Got  int
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("actor: size mismatch: expected %d items, got %d", e.Want, e.Got)
}

func (e *SizeMismatchError) Unwrap() error { return ErrShapeMismatch }

// ShapeMismatchError is the generic fallback when none of the more specific
// shape errors apply (e.g. a literal shape of the value's own type that
// does not equal the value being matched).
type ShapeMismatchError struct {
	Want Shape
	Got  Value
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("actor: shape mismatch: %v does not match %v", describeValue(e.Got), describeShape(e.Want))
}

func (e *ShapeMismatchError) Unwrap() error { return ErrShapeMismatch }

// AmbiguousShapeError reports that CalculateShape was asked to derive a
// shape for an empty Seq, which has no element type to infer.
type AmbiguousShapeError struct{}

func (e *AmbiguousShapeError) Error() string {
	return "actor: cannot calculate shape of an empty sequence"
}

// HeterogeneousShapeError reports that CalculateShape was asked to derive
// a shape for a Seq whose elements are not all the same concrete type.
type HeterogeneousShapeError struct{}

func (e *HeterogeneousShapeError) Error() string {
	return "actor: sequence elements must be homogeneously typed to calculate a shape"
}

func describeValue(v Value) string {
	return fmt.Sprintf("%T(%v)", v, v)
}

func describeShape(s Shape) string {
	return fmt.Sprintf("%T(%v)", s, s)
}

// ExceptionDetail is the transport-safe record an actor's panic or error is
// formatted into before being cast to alinks or stored in the exit slot,
// mirroring the "type, value, traceback summary" tuple of the original
// implementation's exc.format_exc().
type ExceptionDetail struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Trace   string `json:"trace"`
}

func (d ExceptionDetail) toValue() Value {
	return Map{
		"kind":    d.Kind,
		"message": d.Message,
		"trace":   d.Trace,
	}
}
