package vm

import (
	"encoding/json"

	"secd/source/values"

	"src.elv.sh/pkg/persistent/vector"
)

// A State is one configuration of the machine. States are never changed once made: a step
// builds a new one, sharing whatever it can with the old.
type State struct {
	Pc    uint32
	Stack vector.Vector // Values, bottom first.
	Env   vector.Vector // Values; the last is the most recently bound.

	halted bool
	result values.Value
}

// The terminal state. It keeps the contents of the state that halted, for display.
func haltedState(st *State, result values.Value) *State {
	return &State{Pc: st.Pc, Stack: st.Stack, Env: st.Env, halted: true, result: result}
}

func (st *State) IsHalted() bool {
	return st.halted
}

// The value the program halted with. Only meaningful for a halted state.
func (st *State) Result() values.Value {
	return st.result
}

func (st *State) advance(stk, env vector.Vector) *State {
	return &State{Pc: st.Pc + 1, Stack: stk, Env: env}
}

func (st *State) jump(loc uint32, stk, env vector.Vector) *State {
	return &State{Pc: loc, Stack: stk, Env: env}
}

func (st *State) MarshalJSON() ([]byte, error) {
	obj := map[string]any{
		"pc":    st.Pc,
		"stack": values.Slice(st.Stack),
		"env":   values.Slice(st.Env),
	}
	if st.halted {
		obj["halted"] = true
		obj["result"] = st.result
	}
	return json.Marshal(obj)
}

// Takes the top value off a stack which is known to be deep enough.
func pop(stk vector.Vector) (values.Value, vector.Vector) {
	el, _ := stk.Index(stk.Len() - 1)
	return el.(values.Value), stk.Pop()
}
