package hub

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"secd/source/report"
	"secd/source/settings"
	"secd/source/text"
	"secd/source/trace"
	"secd/source/vm"
)

var (
	MARGIN = 84
)

// The hub sits between the user and a trace. It turns console commands into moves through the
// trace's history and renders what it finds there.
type Hub struct {
	out    io.Writer
	trace  *trace.Trace
	config settings.Config
	notes  strings.Builder // Messages to show under the next state displayed.
}

func New(out io.Writer, m *vm.Machine, cfg settings.Config) *Hub {
	return &Hub{out: out, trace: trace.New(m, cfg.MaxSteps), config: cfg}
}

func (hub *Hub) Trace() *trace.Trace {
	return hub.trace
}

// This takes a line of input from the console and acts on it. It returns true if the user
// wants to quit.
func (hub *Hub) Do(line string) bool {
	switch strings.TrimSpace(line) {
	case "", "n":
		hub.next()
	case "p":
		if !hub.trace.Prev() {
			hub.noteError("already at the first state.")
		}
	case "d":
		hub.changes()
	case "r":
		for {
			if ok := hub.next(); !ok {
				break
			}
		}
	case "e":
		hub.explain()
	case "h":
		hub.notes.WriteString(text.CONSOLE_HELP)
	case "q":
		return true
	default:
		hub.noteError("unknown command " + text.Emph(strings.TrimSpace(line)) + ", 'h' lists the commands.")
	}
	return false
}

func (hub *Hub) next() bool {
	ok, err := hub.trace.Next()
	switch {
	case err != nil:
		hub.notes.WriteString(describeFailure(err))
	case !ok:
		hub.notes.WriteString(text.Yellow("The machine has halted.") + "\n")
	}
	return ok
}

func (hub *Hub) changes() {
	i := hub.trace.Cursor()
	if i == 0 {
		hub.noteError("this is the initial state, no step led to it.")
		return
	}
	changes, err := hub.trace.Changes(i)
	if err != nil {
		hub.noteError(err.Error())
		return
	}
	hub.notes.WriteString("--- changes made by step " + strconv.Itoa(i) + "\n")
	for _, c := range changes {
		hub.notes.WriteString(text.BULLET + c + "\n")
	}
}

// Explains the error that stopped the run, if there is one.
func (hub *Hub) explain() {
	var e *report.Error
	if !errors.As(hub.trace.Err(), &e) {
		hub.noteError("there is no error to explain.")
		return
	}
	hub.notes.WriteString(text.Pretty(e.Explain(), 0, MARGIN) + "\n")
}

// Show displays the state under the cursor, followed by whatever the last command had to say.
func (hub *Hub) Show() {
	if hub.config.ClearScreen {
		hub.WriteString(text.CLEAR_SCREEN)
	}
	hub.showState(hub.trace.Cursor())
	if st := hub.trace.Current(); st.IsHalted() {
		hub.WriteString(vm.DescribeResult(st) + "\n")
	}
	hub.WriteString(hub.notes.String())
	hub.notes.Reset()
}

func (hub *Hub) showState(i int) {
	st, _ := hub.trace.At(i)
	hub.WriteString("\n" + strconv.Itoa(i) + text.RULE + "\n\n")
	hub.WriteString(hub.trace.Machine().DescribeState(st))
}

// RunBatch prints every state the machine goes through until it halts, fails or runs out of
// steps, and then the outcome.
func (hub *Hub) RunBatch() trace.Outcome {
	for {
		hub.showState(hub.trace.Cursor())
		ok, _ := hub.trace.Next()
		if !ok || hub.trace.Current().IsHalted() {
			break
		}
	}
	return hub.Finish()
}

// Finish reports how the run ended.
func (hub *Hub) Finish() trace.Outcome {
	outcome := hub.trace.Outcome()
	switch outcome.Status {
	case trace.HALTED:
		hub.WriteString(vm.DescribeResult(hub.trace.Last()) + "\n")
		return outcome
	case trace.FAILED, trace.ABORTED:
		hub.WriteString(describeFailure(outcome.Err))
	}
	hub.WriteString("Abort.\n")
	return outcome
}

func describeFailure(err error) string {
	var e *report.Error
	if errors.As(err, &e) {
		if trace.IsBudgetError(e) {
			return text.ErrorHeader() + e.Error() + ".\n"
		}
		return e.Describe()
	}
	return text.ErrorHeader() + err.Error() + "\n"
}

func (hub *Hub) noteError(s string) {
	hub.notes.WriteString(text.ErrorHeader() + s + "\n")
}

func (hub *Hub) WriteString(s string) {
	io.WriteString(hub.out, s)
}
