package report

import (
	"strconv"
	"strings"

	"secd/source/text"
	"secd/source/token"
	"secd/source/values"
)

// The 'error' type.
type Error struct {
	ErrorId string
	Message string
	Args    []any
	Token   *token.Token
	Stack   []values.Value // Bottom first. Only filled in for runtime errors.
	Env     []values.Value
}

type Errors []*Error

func CreateErr(errorId string, tok *token.Token, args ...any) *Error {
	creator, ok := ErrorCreatorMap[errorId]
	if !ok {
		panic("no error creator for " + errorId)
	}
	return &Error{ErrorId: errorId, Message: creator.Message(tok, args...), Args: args, Token: tok}
}

func (e *Error) Error() string {
	return e.Message + text.DescribePos(e.Token)
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.ErrorId == e.ErrorId
}

func (e *Error) Explain() string {
	return ErrorCreatorMap[e.ErrorId].Explanation(Errors{e}, 0, e.Token, e.Args...)
}

// Describes a runtime error together with the instruction and the machine contents at the
// time it was raised.
func (e *Error) Describe() string {
	var out strings.Builder
	out.WriteString(text.ErrorHeader() + e.Error() + ".\n")
	if e.Token != nil && e.Token.Literal != "" {
		out.WriteString("\n--- instruction\n" + text.Cyan(e.Token.Literal) + "\n")
	}
	if e.Stack != nil {
		out.WriteString("--- stk (from bottom to top)\n")
		writeValues(&out, e.Stack)
	}
	if e.Env != nil {
		out.WriteString("--- env (from bottom to top)\n")
		writeValues(&out, e.Env)
	}
	return out.String()
}

func writeValues(out *strings.Builder, vals []values.Value) {
	for _, v := range vals {
		out.WriteString(values.Describe(v) + "\n")
	}
}

func (es Errors) Error() string {
	if len(es) == 0 {
		return "no errors"
	}
	if len(es) == 1 {
		return es[0].Error()
	}
	return es[0].Error() + " (and " + strconv.Itoa(len(es)-1) + " more)"
}

func GetList(es Errors) string {
	var out strings.Builder
	for i, e := range es {
		out.WriteString("[" + strconv.Itoa(i) + "] " + text.ErrorHeader() + e.Error() + ".\n")
	}
	return out.String()
}

func (es Errors) Explain(pos int) string {
	if pos < 0 || pos >= len(es) {
		return ""
	}
	e := es[pos]
	return ErrorCreatorMap[e.ErrorId].Explanation(es, pos, e.Token, e.Args...)
}
