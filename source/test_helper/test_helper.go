package test_helper

import (
	"testing"

	"secd/source/report"
	"secd/source/settings"
	"secd/source/text"
	"secd/source/trace"
	"secd/source/values"
	"secd/source/vm"
)

// Auxiliary types and functions for testing the assembler and the machine.

type TestItem struct {
	Input string
	Want  string
}

func RunTest(t *testing.T, tests []TestItem, F func(s string) (string, error)) {
	t.Helper()
	for _, test := range tests {
		if settings.SHOW_TESTS {
			println(text.BULLET + "Running test " + text.Emph(test.Input))
		}
		got, e := F(test.Input)
		if e != nil {
			println(text.Red(test.Input))
			println("There were errors running the program: \n" + e.Error() + "\n")
		}
		if !(test.Want == got) {
			t.Fatalf(`Test failed with input %s | Wanted : %s | Got : %s.`, test.Input, test.Want, got)
		}
	}
}

// Assembles and runs a program, returning the described result value if it halts and the id
// of the first error if it doesn't.
func RunProgram(input string) (string, error) {
	prog, ers := vm.Assemble("test", input)
	if len(ers) > 0 {
		return ers[0].ErrorId, ers
	}
	outcome := trace.New(vm.New(prog), settings.MAX_STEPS).Run()
	if outcome.Status == trace.HALTED {
		return values.Describe(outcome.Result), nil
	}
	return ErrorId(outcome.Err), outcome.Err
}

// Only assembles the program, returning "ok" or the ids of the load-time errors.
func AssembleProgram(input string) (string, error) {
	_, ers := vm.Assemble("test", input)
	if len(ers) == 0 {
		return "ok", nil
	}
	result := ""
	for i, e := range ers {
		if i > 0 {
			result = result + ", "
		}
		result = result + e.ErrorId
	}
	return result, ers
}

func ErrorId(err error) string {
	if e, ok := err.(*report.Error); ok {
		return e.ErrorId
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
