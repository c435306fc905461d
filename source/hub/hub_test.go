package hub

import (
	"bytes"
	"strings"
	"testing"

	"secd/source/examples"
	"secd/source/report"
	"secd/source/settings"
	"secd/source/text"
	"secd/source/trace"
	"secd/source/vm"
)

func newHub(t *testing.T, name string, maxSteps int) (*Hub, *bytes.Buffer) {
	t.Helper()
	text.Monochrome()
	src, ok := examples.Get(name)
	if !ok {
		t.Fatalf("no example called %s", name)
	}
	prog, ers := vm.Assemble(name, src)
	if len(ers) > 0 {
		t.Fatalf("assembly failed: %s", report.GetList(ers))
	}
	cfg := settings.Default()
	cfg.MaxSteps = maxSteps
	cfg.ClearScreen = false
	var out bytes.Buffer
	return New(&out, vm.New(prog), cfg), &out
}

func TestRunBatch(t *testing.T) {
	hub, out := newHub(t, "add", 1000)
	outcome := hub.RunBatch()
	if outcome.Status != trace.HALTED {
		t.Fatalf("expected to halt, got %s", outcome.Status)
	}
	got := out.String()
	if !strings.HasPrefix(got, "\n0"+text.RULE+"\n\n--- pc\n") {
		t.Fatalf("output should start with the initial state, got %q", got[:40])
	}
	if !strings.Contains(got, "\n1"+text.RULE+"\n") || !strings.HasSuffix(got, "HALTED, return value = 34\n") {
		t.Fatalf("bad output: %s", got)
	}
}

func TestRunBatchAborts(t *testing.T) {
	hub, out := newHub(t, "loop", 20)
	outcome := hub.RunBatch()
	if outcome.Status != trace.ABORTED {
		t.Fatalf("expected to abort, got %s", outcome.Status)
	}
	got := out.String()
	if !strings.Contains(got, "step budget of '20' steps exceeded") || !strings.HasSuffix(got, "Abort.\n") {
		t.Fatalf("bad output: %s", got)
	}
}

func TestDo(t *testing.T) {
	hub, out := newHub(t, "inc", 1000)
	hub.Do("n")
	hub.Do("")
	hub.Do("p")
	if hub.Trace().Cursor() != 1 || hub.Trace().Len() != 3 {
		t.Fatalf("cursor %d, length %d", hub.Trace().Cursor(), hub.Trace().Len())
	}
	hub.Do("p")
	hub.Do("p")
	hub.Show()
	if !strings.Contains(out.String(), "already at the first state") {
		t.Fatalf("expected a complaint about going back too far: %s", out.String())
	}
	out.Reset()
	hub.Do("xyzzy")
	hub.Do("d")
	hub.Show()
	if !strings.Contains(out.String(), "unknown command 'xyzzy'") || !strings.Contains(out.String(), "no step led to it") {
		t.Fatalf("bad notes: %s", out.String())
	}
	out.Reset()
	hub.Do("n")
	hub.Do("d")
	hub.Show()
	if !strings.Contains(out.String(), "--- changes made by step 1\n") || !strings.Contains(out.String(), "replace /pc 1") {
		t.Fatalf("bad changes: %s", out.String())
	}
	out.Reset()
	hub.Do("r")
	hub.Show()
	if !hub.Trace().Current().IsHalted() || !strings.Contains(out.String(), "HALTED, return value = 6") {
		t.Fatalf("r should run to the end: %s", out.String())
	}
	if !strings.Contains(out.String(), "The machine has halted.") {
		t.Fatalf("r should say when it stops: %s", out.String())
	}
	out.Reset()
	hub.Do("e")
	hub.Do("h")
	hub.Show()
	if !strings.Contains(out.String(), "there is no error to explain") || !strings.Contains(out.String(), "Console commands are") {
		t.Fatalf("bad notes: %s", out.String())
	}
	if !hub.Do("q") {
		t.Fatalf("q should quit")
	}
}

func TestExplain(t *testing.T) {
	hub, out := newHub(t, "loop", 5)
	hub.Do("r")
	hub.Do("e")
	hub.Show()
	if !strings.Contains(out.String(), "didn't halt within the permitted number of steps") {
		t.Fatalf("expected an explanation of the budget: %s", out.String())
	}
	if makePrompt(hub) != "step 5/5 "+text.PROMPT {
		t.Fatalf("bad prompt: %q", makePrompt(hub))
	}
}
