package actor

import (
	"context"
	"sync"
	"sync/atomic"
)

// Registry is the process-wide mapping from actor id to the live actor
// behind it. Every live actor is present in its Registry; every dead
// actor is absent — spawn registers before the actor's goroutine runs,
// and termination deregisters last, after the exit slot is completed and
// the links are notified.
type Registry struct {
	mu     sync.RWMutex
	actors map[string]*actorHandle
}

// NewRegistry returns an empty Registry. Most callers use the package's
// DefaultRegistry implicitly via Spawn/SpawnLink rather than constructing
// their own; a dedicated Registry is mainly useful to isolate actor
// populations between tests.
func NewRegistry() *Registry {
	return &Registry{actors: make(map[string]*actorHandle)}
}

// DefaultRegistry is the registry Spawn, SpawnLink, and Lookup operate
// against when no explicit Registry is supplied.
var DefaultRegistry = NewRegistry()

func (r *Registry) register(h *actorHandle) {
	r.mu.Lock()
	r.actors[h.id] = h
	r.mu.Unlock()
}

func (r *Registry) deregister(id string) {
	r.mu.Lock()
	delete(r.actors, id)
	r.mu.Unlock()
}

func (r *Registry) get(id string) (*actorHandle, bool) {
	r.mu.RLock()
	h, ok := r.actors[id]
	r.mu.RUnlock()
	return h, ok
}

// rename re-keys id to newID atomically. Live Addresses referencing the
// actor hold the *actorHandle pointer directly, not a copy of its id, so
// they keep resolving to the same actor across a rename; only the
// registry's id -> handle lookup key changes.
func (r *Registry) rename(h *actorHandle, newID string) {
	r.mu.Lock()
	h.linkMu.Lock()
	delete(r.actors, h.id)
	h.id = newID
	r.actors[newID] = h
	h.linkMu.Unlock()
	r.mu.Unlock()
}

// Lookup resolves an actor id to its Address. The second return value is
// false if no live actor is registered under that id.
func (r *Registry) Lookup(id string) (Address, bool) {
	h, ok := r.get(id)
	if !ok {
		return Address{}, false
	}
	return Address{id: id, handle: h, registry: r}, true
}

// Lookup resolves id against DefaultRegistry.
func Lookup(id string) (Address, bool) {
	return DefaultRegistry.Lookup(id)
}

// actorHandle is the registry's entry for one actor: its mailbox, link
// sets, and one-shot exit slot. It outlives deregistration — an Address
// holding a handle pointer can still observe the terminal result via
// Wait, and can still tell the actor is dead via alive.
type actorHandle struct {
	id       string
	registry *Registry
	mailbox  *mailbox

	// ctx is cancelled (with cause ErrKilled) by Kill. Every suspension
	// point the actor passes through (Receive, Sleep, Cooperate, Wait on
	// another actor) selects on ctx.Done(), which is how a kill actually
	// takes effect — Go has no way to forcibly preempt a goroutine that
	// is not cooperating at one of these points.
	ctx    context.Context
	cancel context.CancelCauseFunc

	linkMu    sync.Mutex
	alinks    []Address
	exitLinks []Address

	alive atomic.Bool

	waitCh chan struct{}
	result Value
	err    error
}

func newActorHandle(reg *Registry, id string) *actorHandle {
	ctx, cancel := context.WithCancelCause(context.Background())
	h := &actorHandle{
		id:       id,
		registry: reg,
		mailbox:  newMailbox(),
		ctx:      ctx,
		cancel:   cancel,
		waitCh:   make(chan struct{}),
	}
	h.alive.Store(true)
	return h
}

func (h *actorHandle) addressIn(reg *Registry) Address {
	return Address{id: h.id, handle: h, registry: reg}
}

// cast encodes v and immediately decodes it back before enqueuing it,
// enforcing message isolation even for in-process delivery: the receiver
// can never alias a container the sender still holds a reference to.
func (h *actorHandle) cast(v Value) error {
	if !h.alive.Load() {
		return &DeadActorError{ActorID: h.id}
	}
	encoded, err := Encode(v)
	if err != nil {
		return err
	}
	decoded, err := Decode(encoded, h.registry)
	if err != nil {
		return err
	}
	h.mailbox.push(decoded)
	return nil
}

// addLink registers addr as an alink (always) and, if trapExit, also as an
// exit link, in registration order.
func (h *actorHandle) addLink(addr Address, trapExit bool) {
	h.linkMu.Lock()
	h.alinks = append(h.alinks, addr)
	if trapExit {
		h.exitLinks = append(h.exitLinks, addr)
	}
	h.linkMu.Unlock()
}

func (h *actorHandle) snapshotLinks() (alinks, exitLinks []Address) {
	h.linkMu.Lock()
	alinks = append([]Address(nil), h.alinks...)
	exitLinks = append([]Address(nil), h.exitLinks...)
	h.linkMu.Unlock()
	return
}

// finish runs the termination protocol: on success, complete the exit
// slot and then notify exit links (in registration order); on failure,
// notify alinks first (in registration order) and only then complete the
// exit slot, so that Wait cannot observe the exception before the
// subscribers' messages have been enqueued. Either way, the actor is
// deregistered last.
func (h *actorHandle) finish(result Value, err error) {
	alinks, exitLinks := h.snapshotLinks()
	self := h.addressIn(h.registry)

	if err != nil {
		detail := formatException(err)
		logException(h.id, detail)
		for _, link := range alinks {
			_ = link.Cast(Map{"address": self, "exception": detail.toValue()})
		}
		h.result, h.err = nil, err
		close(h.waitCh)
	} else {
		h.result, h.err = result, nil
		close(h.waitCh)
		for _, link := range exitLinks {
			_ = link.Cast(Map{"address": self, "exit": result})
		}
	}

	h.alive.Store(false)
	h.registry.deregister(h.id)
	h.cancel(err)
}
