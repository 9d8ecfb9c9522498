package actor

// Matches reports whether v conforms to shape s. It never returns an
// error; use MatchesExc to find out why a mismatch occurred.
func Matches(v Value, s Shape) bool {
	return MatchesExc(v, s) == nil
}

// MatchesExc matches v against s, returning nil on a match or one of
// *TypeMismatchError, *KeyMismatchError, *SizeMismatchError, or
// *ShapeMismatchError (all wrapping ErrShapeMismatch) describing why it
// did not.
//
// Rules, evaluated in order on the pair (shape, value):
//
//  1. The wildcard Any matches anything.
//  2. A container shape (Map, Tuple, Seq, Set) dispatches structurally:
//     a Map shape matches by required-key containment; a Tuple shape
//     matches by exact arity and positional shapes; a Seq-or-Set shape
//     takes its first element as the element shape and requires every
//     element of a Seq or Set value to match it.
//  3. A shape and value of the same concrete type that are equal match
//     (a literal match).
//  4. A primitive type token matches any value of the corresponding type.
//  5. Otherwise, mismatch.
func MatchesExc(v Value, s Shape) error {
	if s == Any {
		return nil
	}

	if isContainerShape(s) {
		return matchContainer(v, s)
	}

	if sameConcreteType(v, s) && v == s {
		return nil
	}
	switch lit := s.(type) {
	case Address:
		if a, ok := v.(Address); ok && a.Equal(lit) {
			return nil
		}
	case Binary:
		if b, ok := v.(Binary); ok && lit.Equal(b) {
			return nil
		}
	}

	if t, ok := s.(token); ok {
		return matchToken(v, t)
	}

	switch s.(type) {
	case nil, bool, string, int64, float64:
		if !sameConcreteType(v, s) {
			return &TypeMismatchError{Want: s, Got: v}
		}
	}
	return &ShapeMismatchError{Want: s, Got: v}
}

func sameConcreteType(v, s Value) bool {
	switch s.(type) {
	case nil:
		return v == nil
	case bool:
		_, ok := v.(bool)
		return ok
	case string:
		_, ok := v.(string)
		return ok
	case int64:
		_, ok := v.(int64)
		return ok
	case float64:
		_, ok := v.(float64)
		return ok
	default:
		return false
	}
}

func matchContainer(v Value, s Shape) error {
	switch shape := s.(type) {
	case Map:
		m, ok := v.(Map)
		if !ok {
			return &TypeMismatchError{Want: s, Got: v}
		}
		for key, subshape := range shape {
			subitem, present := m[key]
			if !present {
				return &KeyMismatchError{Key: key}
			}
			if err := MatchesExc(subitem, subshape); err != nil {
				return err
			}
		}
		return nil

	case Tuple:
		t, ok := v.(Tuple)
		if !ok {
			return &TypeMismatchError{Want: s, Got: v}
		}
		if len(t) != len(shape) {
			return &SizeMismatchError{Want: len(shape), Got: len(t)}
		}
		for i, subshape := range shape {
			if err := MatchesExc(t[i], subshape); err != nil {
				return err
			}
		}
		return nil

	case Seq:
		return matchHomogeneous(v, elementShapeOf(shape))

	case Set:
		return matchHomogeneous(v, elementShapeOf(shape))
	}
	return &ShapeMismatchError{Want: s, Got: v}
}

// elementShapeOf returns the canonical single element of a Seq or Set
// shape, or Any if the shape carries no elements (matches any element).
func elementShapeOf(shape []Value) Shape {
	if len(shape) == 0 {
		return Any
	}
	return shape[0]
}

func matchHomogeneous(v Value, elemShape Shape) error {
	var elems []Value
	switch t := v.(type) {
	case Seq:
		elems = t
	case Set:
		elems = t
	default:
		return &TypeMismatchError{Want: Seq{elemShape}, Got: v}
	}
	for _, e := range elems {
		if err := MatchesExc(e, elemShape); err != nil {
			return err
		}
	}
	return nil
}

// matchToken matches a primitive type token shape against a value.
func matchToken(v Value, t token) error {
	var conforms bool
	switch t {
	case AnyBool:
		_, conforms = v.(bool)
	case AnyInt:
		_, conforms = v.(int64)
	case AnyFloat:
		_, conforms = v.(float64)
	case AnyString:
		_, conforms = v.(string)
	case AnyAddress:
		_, conforms = v.(Address)
	case AnyBinary:
		_, conforms = v.(Binary)
	case AnySet:
		_, conforms = v.(Set)
	default:
		conforms = false
	}
	if conforms {
		return nil
	}
	return &TypeMismatchError{Want: t, Got: v}
}

// CalculateShape derives the tightest shape matching v: primitives
// collapse to their type token, maps recurse per key, tuples recurse per
// position, and a non-empty homogeneously-typed Seq collapses to a
// one-element Seq shape. An empty Seq has no element type to infer
// (AmbiguousShapeError); a Seq with mixed element types cannot either
// (HeterogeneousShapeError). A Set value, following the reference
// implementation, never recurses into its elements — it calculates to
// AnySet regardless of contents.
func CalculateShape(v Value) (Shape, error) {
	switch t := v.(type) {
	case Map:
		shape := Map{}
		for key, val := range t {
			sub, err := CalculateShape(val)
			if err != nil {
				return nil, err
			}
			shape[key] = sub
		}
		return shape, nil

	case Tuple:
		shape := make(Tuple, len(t))
		for i, val := range t {
			sub, err := CalculateShape(val)
			if err != nil {
				return nil, err
			}
			shape[i] = sub
		}
		return shape, nil

	case Seq:
		if len(t) == 0 {
			return nil, &AmbiguousShapeError{}
		}
		first := t[0]
		firstType := concreteTypeOf(first)
		for _, elem := range t[1:] {
			if concreteTypeOf(elem) != firstType {
				return nil, &HeterogeneousShapeError{}
			}
		}
		elemShape, err := CalculateShape(first)
		if err != nil {
			return nil, err
		}
		return Seq{elemShape}, nil

	case Set:
		return AnySet, nil

	case nil:
		return nil, nil

	case bool:
		return AnyBool, nil
	case int64:
		return AnyInt, nil
	case float64:
		return AnyFloat, nil
	case string:
		return AnyString, nil
	case Address:
		return AnyAddress, nil
	case Binary:
		return AnyBinary, nil

	default:
		return nil, &ShapeMismatchError{Want: nil, Got: v}
	}
}

func concreteTypeOf(v Value) string {
	switch v.(type) {
	case nil:
		return "nil"
	case bool:
		return "bool"
	case int64:
		return "int64"
	case float64:
		return "float64"
	case string:
		return "string"
	case Map:
		return "map"
	case Tuple:
		return "tuple"
	case Seq:
		return "seq"
	case Set:
		return "set"
	case Address:
		return "address"
	case Binary:
		return "binary"
	default:
		return "unknown"
	}
}
