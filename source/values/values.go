package values

import (
	"src.elv.sh/pkg/persistent/vector"
)

type ValueType uint32

// The machine's values form a closed set. Everything on the stack or in the environment is
// one of these, including the bookkeeping that 'apply' and 'applyn' push.
const (
	UNDEFINED_VALUE ValueType = iota // For debugging purposes, it is useful to have the zero value something it should never actually be.
	INT
	BOOL
	CLOSURE
	REC_FRAME
	FOCUSED
	RETURN_ADDRESS
	SAVED_ENV
)

var typeNames = []string{"undefined", "int", "bool", "closure", "recursive frame",
	"focused function", "return address", "saved environment"}

func (t ValueType) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "unknown"
}

type Value struct {
	T ValueType
	V any
}

// An entry point paired with the environment it was created in.
type Closure struct {
	Pc  uint32
	Env vector.Vector
}

// A group of mutually recursive entry points sharing one captured environment.
type RecFrame struct {
	Fns []uint32
	Env vector.Vector
}

// A RecFrame with one of its entry points selected. Idx counts from 1.
type Focused struct {
	Idx int
	Fns []uint32
	Env vector.Vector
}

var (
	FALSE = Value{T: BOOL, V: false}
	TRUE  = Value{T: BOOL, V: true}
)

func Int(i int) Value {
	return Value{INT, i}
}

func Bool(b bool) Value {
	if b {
		return TRUE
	}
	return FALSE
}

// Copies the contents of a vector of values into a slice, bottom first.
func Slice(vec vector.Vector) []Value {
	result := make([]Value, 0, vec.Len())
	for it := vec.Iterator(); it.HasElem(); it.Next() {
		result = append(result, it.Elem().(Value))
	}
	return result
}

// Builds a vector from values, the first value at the bottom.
func Vector(vals ...Value) vector.Vector {
	vec := vector.Empty
	for _, v := range vals {
		vec = vec.Conj(v)
	}
	return vec
}

// The value n places from the top of vec, counting the top as 1.
func FromTop(vec vector.Vector, n int) (Value, bool) {
	if n < 1 || n > vec.Len() {
		return Value{}, false
	}
	el, ok := vec.Index(vec.Len() - n)
	if !ok {
		return Value{}, false
	}
	return el.(Value), true
}
