// Package actor implements an in-process actor runtime: isolated,
// goroutine-backed units of execution that communicate exclusively by
// asynchronous messages delivered to per-actor mailboxes, addressed by an
// opaque identity that can itself travel inside messages. It supports
// selective receive against structural patterns ("shapes"), supervision
// links that turn exits and panics into ordinary messages, a
// call/response protocol layered over plain casts, and a JSON envelope
// that isolates senders from receivers.
package actor

// Value is the closed set of transportable values a message may be built
// from: nil, bool, int64, float64, string, Seq, Tuple, Set, Map, Address,
// and Binary. Go has no sum types, so this is an unconstrained alias —
// Matches and the codec are what actually enforce the closed set, via
// type switches over exactly these cases.
type Value = interface{}

// Shape is a structural pattern over the same grammar as Value, extended
// with the type-token and wildcard values declared below. A Shape is
// itself a Value: container shapes (Map, Tuple, Seq, Set) reuse the value
// container types directly, e.g. the shape Seq{AnyInt} means "a sequence
// of integers" and Tuple{AnyString, AnyInt} means "a two-tuple of
// (string, int)".
type Shape = interface{}

// Tuple is a fixed-arity ordered sequence. Unlike Seq, a Tuple shape
// requires the value to be a Tuple of equal arity with each position
// matching positionally; as a value, Tuple and Seq carry the same JSON
// wire representation (a JSON array) and are therefore indistinguishable
// once they have crossed the codec boundary — a Tuple cast becomes a Seq
// on the receiving end, same as the reference implementation's use of
// Python's json module.
type Tuple []Value

// Set is an unordered collection. A Set shape (like a Seq shape) carries
// exactly one canonical element, standing for "every element matches this
// shape"; both Seq and Set shapes accept a value that is either a Seq or
// a Set. Like Tuple, Set degrades to Seq across the wire.
type Set []Value

// Map is a string-keyed mapping. A Map shape matches by required-key
// containment: every key in the shape must be present in the value and
// match recursively; extra keys in the value are permitted.
type Map map[string]Value

// Binary is an opaque byte string. It compares by its underlying bytes
// (see Equal) and is base64-encoded on the wire as
// {"_pyact_binary": "<base64>"}.
type Binary []byte

// Equal reports whether b holds the same bytes as other, accepting either
// a Binary or a raw []byte/string.
func (b Binary) Equal(other interface{}) bool {
	switch o := other.(type) {
	case Binary:
		return string(b) == string(o)
	case []byte:
		return string(b) == string(o)
	case string:
		return string(b) == o
	default:
		return false
	}
}

func (b Binary) String() string {
	return "Binary(" + string(b) + ")"
}

// token is a shape-only value standing for "any value of this primitive
// type"; the zero value of token is never exposed, only the named
// constants below.
type token struct{ name string }

func (t token) String() string { return t.name }

// Shape tokens and the wildcard. Any matches any value whatsoever; each
// Any* token matches any value of the named primitive Go-side type.
var (
	Any        = token{"any"}
	AnyBool    = token{"bool"}
	AnyInt     = token{"int"}
	AnyFloat   = token{"float"}
	AnyString  = token{"string"}
	AnyAddress = token{"address"}
	AnyBinary  = token{"binary"}

	// AnySet exists only as the result CalculateShape produces for a Set
	// value: the original implementation never recurses into set
	// elements when deriving a shape (only dict/list/tuple are handled
	// specially), so a Set's calculated shape is "any set at all",
	// preserved here for behavioral fidelity.
	AnySet = token{"set"}
)

func isContainerShape(s Shape) bool {
	switch s.(type) {
	case Map, Tuple, Seq, Set:
		return true
	default:
		return false
	}
}

// Seq is an ordered sequence; as a value its elements may be of mixed
// types. As a shape, Seq carries exactly one canonical element standing
// for the element shape.
type Seq []Value
