package vm

import (
	"strings"

	"secd/source/text"
	"secd/source/values"
)

// DescribeState renders a state the way the console shows it: the program with the current
// location marked, then the stack and the environment, each from the bottom up.
func (m *Machine) DescribeState(st *State) string {
	var out strings.Builder
	if st.halted {
		out.WriteString(text.Green("HALTED!") + "\n")
		return out.String()
	}
	out.WriteString("--- pc\n")
	for i, line := range m.prog.Listing(st.Pc) {
		if uint32(i) == st.Pc {
			line = text.Cyan(line)
		}
		out.WriteString(line + "\n")
	}
	out.WriteString("--- stk (from bottom to top)\n")
	for _, v := range values.Slice(st.Stack) {
		out.WriteString(values.Describe(v) + "\n")
	}
	out.WriteString("--- env (from bottom to top)\n")
	for _, v := range values.Slice(st.Env) {
		out.WriteString(values.Describe(v) + "\n")
	}
	return out.String()
}

func DescribeResult(st *State) string {
	return "HALTED, return value = " + values.Describe(st.result)
}
