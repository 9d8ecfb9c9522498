package actor

import (
	"context"
	"runtime/debug"
)

// Handler answers one call to method with payload, returning the value
// to send back as {response: callID, message: result} or an error to
// send back as {response: callID, exception: ...}.
type Handler func(ctx context.Context, self *Actor, method string, payload Value) (Value, error)

// MethodTable dispatches a call by method name to a Handler, answering
// unknown methods with {response: callID, invalid_method: method}
// instead of invoking anything. It is the Go analogue of the reference
// implementation's Server, whose call_* methods are looked up by
// reflection; Go has no such lookup; a MethodTable is the closed,
// explicit substitute.
type MethodTable map[string]Handler

// callPattern is the shape of an incoming {call, method, address,
// message} envelope, matching any call id.
var callPattern = Map{
	"call":    AnyString,
	"method":  AnyString,
	"address": AnyAddress,
	"message": Any,
}

// BuildCallPattern narrows callPattern to one method and message shape,
// letting a Receive loop select calls to a single method out of a
// mailbox that may also hold other traffic.
func BuildCallPattern(method string, messageShape Shape) Shape {
	return Map{
		"call":    AnyString,
		"method":  method,
		"address": AnyAddress,
		"message": messageShape,
	}
}

// callEnvelope extracts the call id and reply-to address from orig,
// failing with ErrInvalidCallMessage if orig does not conform to
// callPattern. Every Respond* operation validates through this before
// casting anything back.
func callEnvelope(orig Value) (callID string, replyTo Address, err error) {
	if !Matches(orig, callPattern) {
		return "", Address{}, ErrInvalidCallMessage
	}
	m := orig.(Map)
	callID, _ = m["call"].(string)
	replyTo, _ = m["address"].(Address)
	return callID, replyTo, nil
}

// Respond answers orig, the original {call, method, address, message}
// envelope, with result as {response: call, message: result}, cast to
// the address orig names as the caller. It fails with
// ErrInvalidCallMessage without casting anything if orig does not
// conform to the call shape.
func (a *Actor) Respond(orig Value, result Value) error {
	callID, replyTo, err := callEnvelope(orig)
	if err != nil {
		return err
	}
	return replyTo.Cast(Map{"response": callID, "message": result})
}

// RespondInvalidMethod answers orig with {response: call, invalid_method:
// method}, for a call naming a method the server has no handler for.
func (a *Actor) RespondInvalidMethod(orig Value, method string) error {
	callID, replyTo, err := callEnvelope(orig)
	if err != nil {
		return err
	}
	return replyTo.Cast(Map{"response": callID, "invalid_method": method})
}

// RespondException answers orig with {response: call, exception:
// detail}, for a call whose handler returned an error or panicked.
func (a *Actor) RespondException(orig Value, detail ExceptionDetail) error {
	callID, replyTo, err := callEnvelope(orig)
	if err != nil {
		return err
	}
	return replyTo.Cast(Map{"response": callID, "exception": detail.toValue()})
}

// StartHook and StopHook run before a Serve loop begins handling calls
// and after it exits, respectively, mirroring the reference
// implementation's optional on_start/on_stop server lifecycle methods.
type StartHook func(ctx context.Context, self *Actor) error
type StopHook func(ctx context.Context, self *Actor)

// ServerOptions configures Serve.
type ServerOptions struct {
	OnStart StartHook
	OnStop  StopHook
}

// Serve runs a call/response server actor body: it invokes OnStart (if
// set), then loops receiving {call, method, address, message} envelopes
// and dispatching each to table, replying via Respond/RespondInvalidMethod/
// RespondException on the caller's address. It runs until ctx is done
// (typically because the server actor was killed), then invokes OnStop
// (if set) and returns nil after a kill or an elapsed deadline, or the
// context's cancellation cause otherwise.
//
// Serve is meant to be called directly as, or from within, a RunFunc:
//
//	addr := Spawn(func(ctx context.Context, self *Actor) (Value, error) {
//		return nil, Serve(ctx, self, table, opts)
//	})
func Serve(ctx context.Context, self *Actor, table MethodTable, opts ServerOptions) error {
	if opts.OnStart != nil {
		if err := opts.OnStart(ctx, self); err != nil {
			return err
		}
	}
	if opts.OnStop != nil {
		defer opts.OnStop(ctx, self)
	}

	for {
		_, msg, err := self.Receive(ctx, callPattern)
		if err != nil {
			if err == ErrKilled {
				return nil
			}
			return err
		}
		if msg == nil {
			// ctx's deadline passed; Receive reports that as no message.
			return nil
		}
		handleCall(ctx, self, table, msg)
	}
}

func handleCall(ctx context.Context, self *Actor, table MethodTable, orig Value) {
	m := orig.(Map)
	method, _ := m["method"].(string)

	handler, ok := table[method]
	if !ok {
		_ = self.RespondInvalidMethod(orig, method)
		return
	}

	result, err := func() (result Value, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = &panicError{value: r, stack: debug.Stack()}
			}
		}()
		return handler(ctx, self, method, m["message"])
	}()
	if err != nil {
		_ = self.RespondException(orig, formatException(err))
		return
	}
	_ = self.Respond(orig, result)
}
