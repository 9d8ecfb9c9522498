package actor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	reg := NewRegistry()
	original := Map{
		"int":    int64(42),
		"float":  1.5,
		"str":    "hello",
		"bool":   true,
		"nested": Seq{int64(1), int64(2), int64(3)},
	}

	encoded, err := Encode(original)
	require.NoError(t, err)

	decoded, err := Decode(encoded, reg)
	require.NoError(t, err)
	require.Equal(t, original, decoded)
}

func TestEncodeDecodeBinary(t *testing.T) {
	reg := NewRegistry()
	encoded, err := Encode(Binary("raw bytes"))
	require.NoError(t, err)

	decoded, err := Decode(encoded, reg)
	require.NoError(t, err)
	require.Equal(t, Binary("raw bytes"), decoded)
}

func TestEncodeDecodeAddressKnownID(t *testing.T) {
	reg := NewRegistry()
	h := newActorHandle(reg, "actor-1")
	reg.register(h)
	addr := h.addressIn(reg)

	encoded, err := Encode(addr)
	require.NoError(t, err)

	decoded, err := Decode(encoded, reg)
	require.NoError(t, err)
	decodedAddr := decoded.(Address)
	require.Equal(t, "actor-1", decodedAddr.ID())
	require.True(t, decodedAddr.Equal(addr))
}

func TestDecodeAddressUnknownIDDefersFailure(t *testing.T) {
	reg := NewRegistry()
	encoded, err := Encode(Address{id: "ghost", registry: reg})
	require.NoError(t, err)

	decoded, err := Decode(encoded, reg)
	require.NoError(t, err)
	addr := decoded.(Address)

	err = addr.Cast("hi")
	var deadErr *DeadActorError
	require.ErrorAs(t, err, &deadErr)
	require.Equal(t, "ghost", deadErr.ActorID)
}

func TestTupleAndSetDegradeToSeqAcrossTheWire(t *testing.T) {
	reg := NewRegistry()

	encoded, err := Encode(Tuple{int64(1), "x"})
	require.NoError(t, err)
	decoded, err := Decode(encoded, reg)
	require.NoError(t, err)
	require.Equal(t, Seq{int64(1), "x"}, decoded)

	encoded, err = Encode(Set{int64(1), int64(2)})
	require.NoError(t, err)
	decoded, err = Decode(encoded, reg)
	require.NoError(t, err)
	require.Equal(t, Seq{int64(1), int64(2)}, decoded)
}

type jsonifiableStamp struct {
	label string
}

func (s jsonifiableStamp) JSONValue() (Value, error) {
	return Map{"label": s.label}, nil
}

func TestEncodeUsesJsonifiableHook(t *testing.T) {
	reg := NewRegistry()
	encoded, err := Encode(jsonifiableStamp{label: "x"})
	require.NoError(t, err)

	decoded, err := Decode(encoded, reg)
	require.NoError(t, err)
	require.Equal(t, Map{"label": "x"}, decoded)
}
