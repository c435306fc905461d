package vm

import (
	"sort"
	"strconv"
	"strings"

	"secd/source/token"
	"secd/source/values"
)

// A Program is the output of the assembler. Nothing in it changes once it has been made, so any
// number of states and machines can share it.
type Program struct {
	Code   []*Operation
	Consts []values.Value
	Labels map[string]uint32
	Tokens []token.Token // The statement each operation was assembled from.
	Main   uint32
}

func (p *Program) codeTop() uint32 {
	return uint32(len(p.Code))
}

func (p *Program) Len() int {
	return len(p.Code)
}

// The labels in order of the locations they name.
func (p *Program) LabelNames() []string {
	names := make([]string, 0, len(p.Labels))
	for k := range p.Labels {
		names = append(names, k)
	}
	sort.Slice(names, func(i, j int) bool {
		if p.Labels[names[i]] == p.Labels[names[j]] {
			return names[i] < names[j]
		}
		return p.Labels[names[i]] < p.Labels[names[j]]
	})
	return names
}

// Renders the program one statement per line, numbered by program counter, with a marker
// at loc. Labels are outdented.
func (p *Program) Listing(loc uint32) []string {
	lines := make([]string, len(p.Tokens))
	for i, tok := range p.Tokens {
		indent := "    "
		if tok.Type == token.LABEL {
			indent = ""
		}
		prefix := "  "
		if uint32(i) == loc {
			prefix = "> "
		}
		line := prefix + padLeft(strconv.Itoa(i), len(strconv.Itoa(len(p.Tokens)))) + ": " + indent + tok.Literal
		lines[i] = line
	}
	return lines
}

func (p *Program) describeCode(loc uint32) string {
	prefix := "@" + strconv.Itoa(int(loc)) + " : "
	spaces := strings.Repeat(" ", max(0, 6-len(prefix)))
	return spaces + prefix + describe(p.Code[loc])
}

func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}
