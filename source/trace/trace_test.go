package trace_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"secd/source/examples"
	"secd/source/report"
	"secd/source/trace"
	"secd/source/values"
	"secd/source/vm"
)

func newTrace(t *testing.T, input string, maxSteps int) *trace.Trace {
	t.Helper()
	prog, ers := vm.Assemble("test", input)
	if len(ers) > 0 {
		t.Fatalf("assembly failed: %s", report.GetList(ers))
	}
	return trace.New(vm.New(prog), maxSteps)
}

func example(t *testing.T, name string, maxSteps int) *trace.Trace {
	t.Helper()
	src, ok := examples.Get(name)
	if !ok {
		t.Fatalf("no example called %s", name)
	}
	return newTrace(t, src, maxSteps)
}

func TestRun(t *testing.T) {
	tr := example(t, "inc", 1000)
	outcome := tr.Run()
	if outcome.Status != trace.HALTED || values.Describe(outcome.Result) != "6" || outcome.Err != nil {
		t.Fatalf("wrong outcome: %s %s %v", outcome.Status, values.Describe(outcome.Result), outcome.Err)
	}
	if outcome.Steps != 10 || tr.Cursor() != 10 {
		t.Fatalf("expected 10 steps, got %d with the cursor at %d", outcome.Steps, tr.Cursor())
	}
	ok, err := tr.Next()
	if ok || err != nil {
		t.Fatalf("a halted trace should go nowhere, got %v, %v", ok, err)
	}
}

func TestBudget(t *testing.T) {
	if outcome := example(t, "inc", 10).Run(); outcome.Status != trace.HALTED {
		t.Fatalf("halting on the last permitted step should succeed, got %s", outcome.Status)
	}
	outcome := example(t, "inc", 9).Run()
	if outcome.Status != trace.ABORTED || !trace.IsBudgetError(outcome.Err) || outcome.Steps != 9 {
		t.Fatalf("expected to abort after 9 steps, got %s after %d: %v", outcome.Status, outcome.Steps, outcome.Err)
	}
	outcome = example(t, "loop", 50).Run()
	if outcome.Status != trace.ABORTED || outcome.Steps != 50 {
		t.Fatalf("expected the loop to abort after 50 steps, got %s after %d", outcome.Status, outcome.Steps)
	}
}

func TestFailure(t *testing.T) {
	tr := newTrace(t, `main:; access $1; halt`, 1000)
	if ok, err := tr.Next(); !ok || err != nil {
		t.Fatalf("the first step should succeed")
	}
	_, err := tr.Next()
	if e, ok := err.(*report.Error); !ok || e.ErrorId != "vm/access" {
		t.Fatalf("expected vm/access, got %v", err)
	}
	if _, again := tr.Next(); again != err {
		t.Fatalf("the error should be returned again")
	}
	if tr.Status() != trace.FAILED || tr.Len() != 2 || trace.IsBudgetError(err) {
		t.Fatalf("wrong status %s with %d states", tr.Status(), tr.Len())
	}
}

func TestNavigation(t *testing.T) {
	tr := example(t, "add", 1000)
	if tr.Prev() {
		t.Fatalf("there is nothing before the initial state")
	}
	for i := 0; i < 3; i++ {
		tr.Next()
	}
	third := tr.Current()
	tr.Prev()
	tr.Prev()
	if tr.Cursor() != 1 || tr.Len() != 4 {
		t.Fatalf("cursor %d, length %d", tr.Cursor(), tr.Len())
	}
	tr.Next()
	tr.Next()
	if tr.Current() != third || tr.Len() != 4 {
		t.Fatalf("moving forward through the history should not recompute states")
	}
	tr.Next()
	if tr.Len() != 5 || tr.Cursor() != 4 {
		t.Fatalf("moving past the end should compute a new state")
	}
}

func TestChanges(t *testing.T) {
	tr := example(t, "inc", 1000)
	tr.Run()
	changes, err := tr.Changes(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(changes) != 1 || changes[0] != "replace /pc 1" {
		t.Fatalf("the first step only moves past 'main:', got %v", changes)
	}
	changes, err = tr.Changes(2)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(strings.Join(changes, "\n"), "/stack") {
		t.Fatalf("'closure' should change the stack, got %v", changes)
	}
	if _, err := tr.Changes(0); err == nil {
		t.Fatalf("no step leads to the initial state")
	}
	if _, err := tr.Changes(tr.Len()); err == nil {
		t.Fatalf("there is no such state")
	}
}

func TestWriteJSON(t *testing.T) {
	tr := example(t, "inc", 1000)
	tr.Run()
	var buf bytes.Buffer
	if err := tr.WriteJSON(&buf); err != nil {
		t.Fatal(err)
	}
	var dump []struct {
		Step  int            `json:"step"`
		State map[string]any `json:"state"`
	}
	if err := json.Unmarshal(buf.Bytes(), &dump); err != nil {
		t.Fatal(err)
	}
	if len(dump) != tr.Len() {
		t.Fatalf("dumped %d states out of %d", len(dump), tr.Len())
	}
	last := dump[len(dump)-1]
	if last.Step != tr.Len()-1 || last.State["halted"] != true {
		t.Fatalf("the last state should be halted: %v", last)
	}
	result, _ := last.State["result"].(map[string]any)
	if result["type"] != "int" || result["value"] != float64(6) {
		t.Fatalf("wrong result: %v", result)
	}
}
