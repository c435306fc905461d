package report_test

import (
	"errors"
	"strings"
	"testing"

	"secd/source/report"
	"secd/source/token"
	"secd/source/values"
)

func TestCreateErr(t *testing.T) {
	tok := &token.Token{Type: token.OP, Literal: "access $3", Line: 7, Source: "prog.secd"}
	e := report.CreateErr("vm/access", tok, 3, 1)
	if !strings.Contains(e.Error(), "'access $3'") || !strings.HasSuffix(e.Error(), " at line 7 of 'prog.secd'") {
		t.Fatalf("bad message: %s", e.Error())
	}
	if !errors.Is(e, report.CreateErr("vm/access", &token.Token{}, 1, 0)) {
		t.Fatalf("errors with the same id should match")
	}
	if errors.Is(e, report.CreateErr("vm/halted", &token.Token{})) {
		t.Fatalf("errors with different ids shouldn't match")
	}
	if e.Explain() == "" {
		t.Fatalf("no explanation")
	}
}

func TestDescribe(t *testing.T) {
	tok := &token.Token{Type: token.OP, Literal: "add", Line: 2, Source: "test"}
	e := report.CreateErr("vm/arith/type", tok, "add", "int", "bool")
	e.Stack = []values.Value{values.Int(1), values.TRUE}
	e.Env = []values.Value{}
	got := e.Describe()
	for _, want := range []string{"--- instruction", "add", "--- stk (from bottom to top)\n1\ntrue\n", "--- env (from bottom to top)\n"} {
		if !strings.Contains(got, want) {
			t.Fatalf("description %q doesn't contain %q", got, want)
		}
	}
}

func TestErrors(t *testing.T) {
	es := report.Errors{
		report.CreateErr("parse/opcode", &token.Token{Line: 1, Source: "test"}, "frob"),
		report.CreateErr("label/main", &token.Token{Source: "test"}),
	}
	if !strings.Contains(es.Error(), "(and 1 more)") {
		t.Fatalf("bad summary: %s", es.Error())
	}
	list := report.GetList(es)
	if !strings.Contains(list, "[0] ") || !strings.Contains(list, "[1] ") || !strings.Contains(list, "'frob'") {
		t.Fatalf("bad list: %s", list)
	}
	if es.Explain(1) == "" || es.Explain(2) != "" {
		t.Fatalf("bad explanations")
	}
}

func TestEveryErrorHasAnExplanation(t *testing.T) {
	for id, creator := range report.ErrorCreatorMap {
		if creator.Message == nil || creator.Explanation == nil {
			t.Fatalf("error %s is missing a message or an explanation", id)
		}
	}
}
