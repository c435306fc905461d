package vm

import (
	"github.com/JohnCGriffin/overflow"
	"github.com/rs/zerolog/log"

	"secd/source/report"
	"secd/source/settings"
	"secd/source/token"
	"secd/source/values"

	"src.elv.sh/pkg/persistent/vector"
)

// A Machine executes one Program. It holds no state of its own between steps: everything that
// changes is in the State passed to Step.
type Machine struct {
	prog *Program
}

func New(prog *Program) *Machine {
	return &Machine{prog: prog}
}

func (m *Machine) Program() *Program {
	return m.prog
}

// The state a run starts from: at 'main', with nothing on the stack or in the environment.
func (m *Machine) Initial() *State {
	return &State{Pc: m.prog.Main, Stack: vector.Empty, Env: vector.Empty}
}

// Step returns the successor of st, which is the terminal state if the operation at st.Pc is
// 'halt'. It neither changes st nor anything reachable from it. Errors are *report.Error.
func (m *Machine) Step(st *State) (*State, error) {
	if st.halted {
		return nil, m.rtErr(st, "vm/halted")
	}
	if st.Pc >= m.prog.codeTop() {
		return nil, m.rtErr(st, "vm/pc", st.Pc)
	}
	op := m.prog.Code[st.Pc]
	if settings.SHOW_RUNTIME {
		println(m.prog.describeCode(st.Pc))
	}
	log.Trace().
		Str("opcode", op.Mnemonic()).
		Uint32("pc", st.Pc).
		Int("stack_depth", st.Stack.Len()).
		Int("env_depth", st.Env.Len()).
		Msg("step")
	if st.Stack.Len() < op.arity() {
		return nil, m.rtErr(st, "vm/underflow", op.Mnemonic(), op.arity(), st.Stack.Len())
	}
	args := op.Args
	switch op.Opcode {
	case labl:
		return st.advance(st.Stack, st.Env), nil
	case cnst:
		return st.advance(st.Stack.Conj(m.prog.Consts[args[0]]), st.Env), nil
	case accs:
		v, ok := values.FromTop(st.Env, int(args[0]))
		if !ok {
			return nil, m.rtErr(st, "vm/access", int(args[0]), st.Env.Len())
		}
		return st.advance(st.Stack.Conj(v), st.Env), nil
	case clos:
		cl := values.Value{values.CLOSURE, values.Closure{Pc: args[0], Env: st.Env}}
		return st.advance(st.Stack.Conj(cl), st.Env), nil
	case clss:
		fr := values.Value{values.REC_FRAME, values.RecFrame{Fns: args, Env: st.Env}}
		return st.advance(st.Stack, st.Env.Conj(fr)), nil
	case focs:
		v, stk := pop(st.Stack)
		if v.T != values.REC_FRAME {
			return nil, m.rtErr(st, "vm/focus/type", v.T.String())
		}
		fr := v.V.(values.RecFrame)
		idx := int(args[0])
		if idx > len(fr.Fns) {
			return nil, m.rtErr(st, "vm/focus/range", idx, len(fr.Fns))
		}
		fc := values.Value{values.FOCUSED, values.Focused{Idx: idx, Fns: fr.Fns, Env: fr.Env}}
		return st.advance(stk.Conj(fc), st.Env), nil
	case appl:
		arg, stk := pop(st.Stack)
		fn, stk := pop(stk)
		if fn.T != values.CLOSURE {
			return nil, m.rtErr(st, "vm/apply/type", fn.T.String())
		}
		cl := fn.V.(values.Closure)
		stk = m.pushFrame(st, stk)
		return st.jump(cl.Pc, stk, cl.Env.Conj(arg)), nil
	case apln:
		arg, stk := pop(st.Stack)
		fn, stk := pop(stk)
		if fn.T != values.FOCUSED {
			return nil, m.rtErr(st, "vm/applyn/type", fn.T.String())
		}
		fc := fn.V.(values.Focused)
		stk = m.pushFrame(st, stk)
		// The callee's own frame is bound again below its argument, so that it can reach itself
		// and its siblings with 'access $2'.
		self := values.Value{values.REC_FRAME, values.RecFrame{Fns: fc.Fns, Env: fc.Env}}
		return st.jump(fc.Fns[fc.Idx-1], stk, fc.Env.Conj(self).Conj(arg)), nil
	case retn:
		result, stk := pop(st.Stack)
		ret, stk := pop(stk)
		saved, stk := pop(stk)
		if ret.T != values.RETURN_ADDRESS || saved.T != values.SAVED_ENV {
			return nil, m.rtErr(st, "vm/return/type", ret.T.String(), saved.T.String())
		}
		return st.jump(ret.V.(uint32), stk.Conj(result), saved.V.(vector.Vector)), nil
	case addi, subi, muli:
		rhs, stk := pop(st.Stack)
		lhs, stk := pop(stk)
		if lhs.T != values.INT || rhs.T != values.INT {
			return nil, m.rtErr(st, "vm/arith/type", op.Mnemonic(), lhs.T.String(), rhs.T.String())
		}
		var (
			result int
			ok     bool
		)
		switch op.Opcode {
		case addi:
			result, ok = overflow.Add(lhs.V.(int), rhs.V.(int))
		case subi:
			result, ok = overflow.Sub(lhs.V.(int), rhs.V.(int))
		case muli:
			result, ok = overflow.Mul(lhs.V.(int), rhs.V.(int))
		}
		if !ok {
			return nil, m.rtErr(st, "vm/overflow", op.Mnemonic())
		}
		return st.advance(stk.Conj(values.Int(result)), st.Env), nil
	case equi:
		rhs, stk := pop(st.Stack)
		lhs, stk := pop(stk)
		if !isScalar(lhs) || !isScalar(rhs) {
			return nil, m.rtErr(st, "vm/eq/type", lhs.T.String(), rhs.T.String())
		}
		return st.advance(stk.Conj(values.Bool(lhs == rhs)), st.Env), nil
	case brfl:
		cond, stk := pop(st.Stack)
		if cond.T != values.BOOL {
			return nil, m.rtErr(st, "vm/brfl/type", cond.T.String())
		}
		if !cond.V.(bool) {
			return st.jump(args[0], stk, st.Env), nil
		}
		return st.advance(stk, st.Env), nil
	case jmp:
		return st.jump(args[0], st.Stack, st.Env), nil
	case halt:
		result, _ := values.FromTop(st.Stack, 1)
		log.Debug().Str("result", values.Describe(result)).Uint32("pc", st.Pc).Msg("halted")
		return haltedState(st, result), nil
	}
	return nil, m.rtErr(st, "vm/opcode", op.Mnemonic())
}

// A call saves the caller's environment and the location to return to on the stack.
func (m *Machine) pushFrame(st *State, stk vector.Vector) vector.Vector {
	return stk.Conj(values.Value{values.SAVED_ENV, st.Env}).Conj(values.Value{values.RETURN_ADDRESS, st.Pc + 1})
}

func isScalar(v values.Value) bool {
	return v.T == values.INT || v.T == values.BOOL
}

// Runtime errors carry the offending instruction and what was on the stack and in the
// environment when it was reached.
func (m *Machine) rtErr(st *State, errorId string, args ...any) *report.Error {
	e := report.CreateErr(errorId, m.tokenAt(st.Pc), args...)
	e.Stack = values.Slice(st.Stack)
	e.Env = values.Slice(st.Env)
	log.Debug().Str("error", errorId).Uint32("pc", st.Pc).Msg(e.Message)
	return e
}

func (m *Machine) tokenAt(loc uint32) *token.Token {
	if int(loc) < len(m.prog.Tokens) {
		return &m.prog.Tokens[loc]
	}
	return &token.Token{}
}
