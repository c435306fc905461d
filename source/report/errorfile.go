package report

import (
	"fmt"
	"strconv"

	"secd/source/token"
)

type ErrorCreator struct {
	Message     func(tok *token.Token, args ...any) string
	Explanation func(errors Errors, pos int, tok *token.Token, args ...any) string
}

// A map from error identifiers to functions that supply the corresponding error messages and explanations.
//
// Errors in the map are in alphabetical order of their identifers.
//
// Major categories are label, lex, parse, trace and vm. The first three are raised while a program is
// loaded, before any step is taken; vm errors are raised by the step engine; trace errors by the driver.

var ErrorCreatorMap = map[string]ErrorCreator{

	"label/dup": {
		Message: func(tok *token.Token, args ...any) string {
			return "redefining label " + emph(args[0])
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "The label " + emph(args[0]) + " was already defined at line " + emphNum(args[1]) +
				". Each label names exactly one place in the program, so it can only be defined once."
		},
	},

	"label/main": {
		Message: func(tok *token.Token, args ...any) string {
			return "no " + emph("main") + " label"
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "Execution starts at the label " + emph("main") + ", so a program without one can't be run."
		},
	},

	"label/name": {
		Message: func(tok *token.Token, args ...any) string {
			return "malformed label " + emph(args[0])
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "A label is a single identifier immediately followed by a colon, e.g. " + emph("main:") + "."
		},
	},

	"label/undef": {
		Message: func(tok *token.Token, args ...any) string {
			return "no such label " + emph(args[0])
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "The instruction " + emph(tok.Literal) + " refers to the label " + emph(args[0]) +
				", which isn't defined anywhere in the program."
		},
	},

	"lex/char": {
		Message: func(tok *token.Token, args ...any) string {
			return fmt.Sprintf("invalid character %q", args[0])
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "Programs may only contain printable characters, tabs and newlines."
		},
	},

	"parse/access": {
		Message: func(tok *token.Token, args ...any) string {
			return "argument of " + emph("access") + " should be " + emph("$") + " followed by a positive integer, not " + emph(args[0])
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "The argument of " + emph("access") + " says how far down the environment to look: " +
				emph("$1") + " is the most recently bound value, " + emph("$2") + " the one before it, and so on."
		},
	},

	"parse/args": {
		Message: func(tok *token.Token, args ...any) string {
			return emph(args[0]) + " takes " + args[1].(string) + ", not " + emphNum(args[2])
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "Each opcode takes a fixed number of arguments, except " + emph("closures") +
				" which takes one label for each function in the group."
		},
	},

	"parse/const": {
		Message: func(tok *token.Token, args ...any) string {
			return "can't parse " + emph(args[0]) + " as an integer or boolean literal"
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "The argument of " + emph("const") + " should be an integer such as " + emph("42") + ", " +
				emph("-7") + " or " + emph("0x2A") + ", or one of " + emph("True") + " and " + emph("False") + "."
		},
	},

	"parse/focus": {
		Message: func(tok *token.Token, args ...any) string {
			return "argument of " + emph("focus") + " should be a positive integer, not " + emph(args[0])
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "The argument of " + emph("focus") + " selects one function of a group defined by " +
				emph("closures") + ", counting from 1."
		},
	},

	"parse/opcode": {
		Message: func(tok *token.Token, args ...any) string {
			return "unknown opcode " + emph(args[0])
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "The opcodes are const, access, closure, closures, focus, apply, applyn, return, " +
				"add, sub, mul, eq, brfl, br and halt."
		},
	},

	"parse/threshold": {
		Message: func(tok *token.Token, args ...any) string {
			return "too many errors, giving up after " + emphNum(args[0])
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "Fix the errors shown and try again."
		},
	},

	"trace/budget": {
		Message: func(tok *token.Token, args ...any) string {
			return "step budget of " + emphNum(args[0]) + " steps exceeded"
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "The program didn't halt within the permitted number of steps. Either it doesn't " +
				"terminate or it needs a larger budget, which can be set with " + emph("-max") +
				" or with " + emph("max_steps") + " in the configuration file."
		},
	},

	"vm/access": {
		Message: func(tok *token.Token, args ...any) string {
			return "environment index out of range: " + emph("access $"+strconv.Itoa(args[0].(int))) +
				" but the environment holds " + emphNum(args[1]) + " values"
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return emph("access $n") + " reads the nth most recently bound value, so the environment must " +
				"hold at least n values."
		},
	},

	"vm/apply/type": {
		Message: func(tok *token.Token, args ...any) string {
			return emph("apply") + " expects a closure below its argument, got " + emph(args[0])
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "Functions made by " + emph("closures") + " and selected by " + emph("focus") +
				" must be called with " + emph("applyn") + "; " + emph("apply") + " is for closures made by " +
				emph("closure") + "."
		},
	},

	"vm/applyn/type": {
		Message: func(tok *token.Token, args ...any) string {
			return emph("applyn") + " expects a focused function below its argument, got " + emph(args[0])
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return emph("applyn") + " calls a function selected from a recursive frame with " + emph("focus") + "."
		},
	},

	"vm/arith/type": {
		Message: func(tok *token.Token, args ...any) string {
			return emph(args[0]) + " expects two ints, got " + emph(args[1]) + " and " + emph(args[2])
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "Arithmetic is only defined on integers."
		},
	},

	"vm/brfl/type": {
		Message: func(tok *token.Token, args ...any) string {
			return emph("brfl") + " expects a bool, got " + emph(args[0])
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return emph("brfl") + " branches if the top of the stack is false, so it must be a boolean, " +
				"such as the result of " + emph("eq") + "."
		},
	},

	"vm/eq/type": {
		Message: func(tok *token.Token, args ...any) string {
			return emph("eq") + " can't compare " + emph(args[0]) + " with " + emph(args[1])
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return emph("eq") + " compares ints and bools. Values of different types are never equal, and " +
				"functions and machine bookkeeping can't be compared at all."
		},
	},

	"vm/focus/range": {
		Message: func(tok *token.Token, args ...any) string {
			return emph("focus "+strconv.Itoa(args[0].(int))) + " selects past the end of a frame of " +
				emphNum(args[1]) + " functions"
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "A frame made by " + emph("closures") + " holds one function per label, counting from 1."
		},
	},

	"vm/focus/type": {
		Message: func(tok *token.Token, args ...any) string {
			return emph("focus") + " expects a recursive frame, got " + emph(args[0])
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "Recursive frames are made by " + emph("closures") + " and are usually fetched with " +
				emph("access") + " just before " + emph("focus") + "."
		},
	},

	"vm/halted": {
		Message: func(tok *token.Token, args ...any) string {
			return "the machine has halted and can't be stepped"
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "A halted machine has no next state."
		},
	},

	"vm/opcode": {
		Message: func(tok *token.Token, args ...any) string {
			return "unknown opcode " + emph(args[0])
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "The step engine was handed an operation it doesn't know how to execute."
		},
	},

	"vm/overflow": {
		Message: func(tok *token.Token, args ...any) string {
			return "integer overflow in " + emph(args[0])
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "The result of the arithmetic doesn't fit in a machine integer."
		},
	},

	"vm/pc": {
		Message: func(tok *token.Token, args ...any) string {
			return "program counter " + emph("@"+strconv.Itoa(int(args[0].(uint32)))) + " is outside the program"
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "Control ran off the end of the program. Every path should finish with " + emph("halt") +
				" or " + emph("return") + "."
		},
	},

	"vm/return/type": {
		Message: func(tok *token.Token, args ...any) string {
			return emph("return") + " expects a return address and a saved environment below its result, got " +
				emph(args[0]) + " and " + emph(args[1])
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "Calls push the caller's environment and return address onto the stack. A function must " +
				"leave exactly one result above them before it returns."
		},
	},

	"vm/underflow": {
		Message: func(tok *token.Token, args ...any) string {
			return "stack underflow: " + emph(args[0]) + " needs " + emphNum(args[1]) +
				" values but the stack holds " + emphNum(args[2])
		},
		Explanation: func(errors Errors, pos int, tok *token.Token, args ...any) string {
			return "Each opcode consumes a fixed number of values from the top of the stack."
		},
	},
}

func emph(s any) string {
	return fmt.Sprintf("'%v'", s)
}

func emphNum(i any) string {
	return "'" + strconv.Itoa(i.(int)) + "'"
}
