package actor

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
)

const (
	addressKey = "_pyact_address"
	binaryKey  = "_pyact_binary"
)

// Jsonifiable lets a caller supply a custom transport encoding for a
// message cast by value, mirroring the reference implementation's
// _as_json_obj hook: if a value passed to Cast implements Jsonifiable,
// JSONValue is called to obtain the Value that is actually encoded.
type Jsonifiable interface {
	JSONValue() (Value, error)
}

// Encode converts v to its JSON wire representation. Address encodes as
// {"_pyact_address": "<actor_id>"}, Binary as
// {"_pyact_binary": "<base64>"}.
func Encode(v Value) ([]byte, error) {
	if j, ok := v.(Jsonifiable); ok {
		jv, err := j.JSONValue()
		if err != nil {
			return nil, err
		}
		v = jv
	}
	tree, err := valueToJSON(v)
	if err != nil {
		return nil, err
	}
	return json.Marshal(tree)
}

// Decode reconstructs a Value from its JSON wire representation. A
// mapping carrying exactly one of the reserved keys is reconstituted to
// an Address or Binary; an Address naming an actor id unknown to reg
// decodes successfully (it only fails with ErrDeadActor on first
// dereference). Every other mapping, and every array, passes through to
// Map and Seq respectively — note that this means a Tuple or Set cast by
// the sender is always observed as a Seq by the receiver, since JSON has
// no way to spell either on the wire.
func Decode(data []byte, reg *Registry) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	return jsonToValue(raw, reg)
}

func valueToJSON(v Value) (interface{}, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case bool:
		return t, nil
	case int:
		return int64(t), nil
	case int64:
		return t, nil
	case float64:
		return t, nil
	case string:
		return t, nil
	case Address:
		return map[string]interface{}{addressKey: t.ID()}, nil
	case Binary:
		return map[string]interface{}{binaryKey: base64.StdEncoding.EncodeToString([]byte(t))}, nil
	case Map:
		obj := make(map[string]interface{}, len(t))
		for key, val := range t {
			encoded, err := valueToJSON(val)
			if err != nil {
				return nil, err
			}
			obj[key] = encoded
		}
		return obj, nil
	case Seq:
		return seqToJSON(t)
	case Tuple:
		return seqToJSON(t)
	case Set:
		return seqToJSON(t)
	default:
		if j, ok := v.(Jsonifiable); ok {
			jv, err := j.JSONValue()
			if err != nil {
				return nil, err
			}
			return valueToJSON(jv)
		}
		return nil, fmt.Errorf("actor: value of type %T is not transportable", v)
	}
}

func seqToJSON(elems []Value) (interface{}, error) {
	arr := make([]interface{}, len(elems))
	for i, elem := range elems {
		encoded, err := valueToJSON(elem)
		if err != nil {
			return nil, err
		}
		arr[i] = encoded
	}
	return arr, nil
}

func jsonToValue(raw interface{}, reg *Registry) (Value, error) {
	switch t := raw.(type) {
	case nil:
		return nil, nil
	case bool:
		return t, nil
	case string:
		return t, nil
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i, nil
		}
		f, err := t.Float64()
		if err != nil {
			return nil, err
		}
		return f, nil
	case []interface{}:
		seq := make(Seq, len(t))
		for i, elem := range t {
			v, err := jsonToValue(elem, reg)
			if err != nil {
				return nil, err
			}
			seq[i] = v
		}
		return seq, nil
	case map[string]interface{}:
		if raw, present := t[addressKey]; present && len(t) == 1 {
			id, _ := raw.(string)
			return decodeAddress(id, reg), nil
		}
		if raw, present := t[binaryKey]; present && len(t) == 1 {
			encoded, _ := raw.(string)
			decoded, err := base64.StdEncoding.DecodeString(encoded)
			if err != nil {
				return nil, err
			}
			return Binary(decoded), nil
		}
		m := make(Map, len(t))
		for key, val := range t {
			v, err := jsonToValue(val, reg)
			if err != nil {
				return nil, err
			}
			m[key] = v
		}
		return m, nil
	default:
		return nil, fmt.Errorf("actor: cannot decode JSON value of type %T", raw)
	}
}

func decodeAddress(id string, reg *Registry) Address {
	if reg == nil {
		return Address{id: id}
	}
	if h, ok := reg.get(id); ok {
		return Address{id: id, handle: h, registry: reg}
	}
	return Address{id: id, registry: reg}
}
