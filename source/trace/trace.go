package trace

import (
	"errors"

	"github.com/rs/zerolog/log"

	"secd/source/report"
	"secd/source/token"
	"secd/source/values"
	"secd/source/vm"

	"src.elv.sh/pkg/persistent/vector"
)

type Status int

const (
	RUNNING Status = iota
	HALTED
	FAILED  // A runtime error stopped the machine.
	ABORTED // The step budget ran out.
)

var statusNames = []string{"running", "halted", "failed", "aborted"}

func (s Status) String() string {
	return statusNames[s]
}

// A Trace drives a machine and keeps every state it has been through, so that a user can step
// back through the history without anything being recomputed. The history only ever grows.
type Trace struct {
	machine  *vm.Machine
	history  vector.Vector // Of *vm.State; the first is the initial state.
	cursor   int
	maxSteps int
	err      error // Once set, no more states are computed.
}

type Outcome struct {
	Status Status
	Result values.Value // Only meaningful if the status is HALTED.
	Steps  int
	Err    error
}

func New(m *vm.Machine, maxSteps int) *Trace {
	return &Trace{machine: m, history: vector.Empty.Conj(m.Initial()), maxSteps: maxSteps}
}

func (t *Trace) Machine() *vm.Machine {
	return t.machine
}

func (t *Trace) Len() int {
	return t.history.Len()
}

// The number of steps taken so far.
func (t *Trace) Steps() int {
	return t.history.Len() - 1
}

func (t *Trace) Cursor() int {
	return t.cursor
}

func (t *Trace) At(i int) (*vm.State, bool) {
	el, ok := t.history.Index(i)
	if !ok {
		return nil, false
	}
	return el.(*vm.State), true
}

func (t *Trace) Current() *vm.State {
	st, _ := t.At(t.cursor)
	return st
}

func (t *Trace) Last() *vm.State {
	st, _ := t.At(t.history.Len() - 1)
	return st
}

func (t *Trace) Err() error {
	return t.err
}

func (t *Trace) Status() Status {
	switch {
	case t.Last().IsHalted():
		return HALTED
	case IsBudgetError(t.err):
		return ABORTED
	case t.err != nil:
		return FAILED
	}
	return RUNNING
}

// Next moves the cursor forward one state, computing that state if the cursor is at the end
// of the history. It returns false when there is nowhere to go: because the machine has
// halted, in which case the error is nil, or because of an error, which is returned every
// time Next is called at the end of the history from then on.
func (t *Trace) Next() (bool, error) {
	if t.cursor < t.history.Len()-1 {
		t.cursor++
		return true, nil
	}
	last := t.Last()
	if last.IsHalted() {
		return false, nil
	}
	if t.err != nil {
		return false, t.err
	}
	if t.Steps() >= t.maxSteps {
		t.err = report.CreateErr("trace/budget", &token.Token{}, t.maxSteps)
		log.Debug().Int("steps", t.Steps()).Msg("step budget exceeded")
		return false, t.err
	}
	st, err := t.machine.Step(last)
	if err != nil {
		t.err = err
		log.Debug().Err(err).Int("steps", t.Steps()).Msg("machine failed")
		return false, err
	}
	t.history = t.history.Conj(st)
	t.cursor++
	return true, nil
}

// Prev moves the cursor back one state. It returns false at the start of the history.
func (t *Trace) Prev() bool {
	if t.cursor == 0 {
		return false
	}
	t.cursor--
	return true
}

// Run steps until the machine halts, fails or exhausts its budget, leaving the cursor at the
// last state.
func (t *Trace) Run() Outcome {
	for {
		ok, _ := t.Next()
		if !ok {
			break
		}
	}
	return t.Outcome()
}

func (t *Trace) Outcome() Outcome {
	o := Outcome{Status: t.Status(), Steps: t.Steps(), Err: t.err}
	if o.Status == HALTED {
		o.Result = t.Last().Result()
		log.Debug().Str("result", values.Describe(o.Result)).Int("steps", o.Steps).Msg("run halted")
	}
	return o
}

func IsBudgetError(err error) bool {
	var e *report.Error
	return errors.As(err, &e) && e.ErrorId == "trace/budget"
}
