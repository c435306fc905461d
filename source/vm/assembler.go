package vm

import (
	"strconv"
	"strings"
	"unicode"

	"secd/source/lexer"
	"secd/source/report"
	"secd/source/settings"
	"secd/source/text"
	"secd/source/token"
	"secd/source/values"
)

type assembler struct {
	prog       *Program
	Ers        report.Errors
	labelLines map[string]int // Where each label was first defined, for reporting redefinitions.
}

// Assemble turns program text into a Program. The labels are resolved before anything else is
// done, and every label an operation mentions must exist; so must 'main'. If anything is wrong
// the errors are returned and the program is nil.
func Assemble(source, input string) (*Program, report.Errors) {
	lx := lexer.NewLexer(source, input)
	toks := lx.Tokens()
	as := &assembler{
		prog:       &Program{Labels: map[string]uint32{}, Tokens: toks},
		Ers:        lx.Ers,
		labelLines: map[string]int{},
	}
	as.resolveLabels()
	for i := range toks {
		if len(as.Ers) >= settings.ERROR_THRESHOLD {
			as.Ers = append(as.Ers, report.CreateErr("parse/threshold", &toks[i], len(as.Ers)))
			break
		}
		as.prog.Code = append(as.prog.Code, as.assemble(&toks[i]))
	}
	if loc, ok := as.prog.Labels[settings.MAIN_LABEL]; ok {
		as.prog.Main = loc
	} else {
		as.Ers = append(as.Ers, report.CreateErr("label/main", &token.Token{Source: source}))
	}
	if len(as.Ers) > 0 {
		return nil, as.Ers
	}
	if settings.SHOW_ASSEMBLER {
		for i := range as.prog.Code {
			println(as.prog.describeCode(uint32(i)))
		}
		for _, k := range as.prog.LabelNames() {
			println(text.BULLET+k, "@"+strconv.Itoa(int(as.prog.Labels[k])))
		}
	}
	return as.prog, nil
}

func (as *assembler) throw(errorId string, tok *token.Token, args ...any) {
	as.Ers = append(as.Ers, report.CreateErr(errorId, tok, args...))
}

// A label names the location of its own line, which executes as a no-op.
func (as *assembler) resolveLabels() {
	for i := range as.prog.Tokens {
		tok := &as.prog.Tokens[i]
		if tok.Type != token.LABEL {
			continue
		}
		name := tok.LabelName()
		if !isIdentifier(name) {
			as.throw("label/name", tok, tok.Literal)
			continue
		}
		if line, ok := as.labelLines[name]; ok {
			as.throw("label/dup", tok, name, line)
			continue
		}
		as.labelLines[name] = tok.Line
		as.prog.Labels[name] = uint32(i)
	}
}

func (as *assembler) assemble(tok *token.Token) *Operation {
	switch tok.Type {
	case token.LABEL, token.ILLEGAL: // An illegal token has already been reported; it still takes up a slot so the locations stay right.
		return makeOp(labl)
	}
	mnemonic, args := tok.Fields()
	info, ok := OPCODES[mnemonic]
	if !ok {
		as.throw("parse/opcode", tok, mnemonic)
		return makeOp(labl)
	}
	switch info.arg {
	case argNone:
		if len(args) != 0 {
			as.throw("parse/args", tok, mnemonic, "no arguments", len(args))
		}
		return makeOp(info.oc)
	case argLabels:
		if len(args) == 0 {
			as.throw("parse/args", tok, mnemonic, "at least one argument", 0)
			return makeOp(info.oc)
		}
		locs := make([]uint32, len(args))
		for i, arg := range args {
			locs[i] = as.label(tok, arg)
		}
		return makeOp(info.oc, locs...)
	}
	if len(args) != 1 {
		as.throw("parse/args", tok, mnemonic, "one argument", len(args))
		return makeOp(labl)
	}
	switch info.arg {
	case argConst:
		lit, ok := parseLiteral(args[0])
		if !ok {
			as.throw("parse/const", tok, args[0])
			return makeOp(labl)
		}
		as.prog.Consts = append(as.prog.Consts, lit)
		return makeOp(info.oc, uint32(len(as.prog.Consts)-1))
	case argEnv:
		n, ok := parsePositive(strings.TrimPrefix(args[0], "$"))
		if !ok || !strings.HasPrefix(args[0], "$") {
			as.throw("parse/access", tok, args[0])
			return makeOp(labl)
		}
		return makeOp(info.oc, n)
	case argIndex:
		n, ok := parsePositive(args[0])
		if !ok {
			as.throw("parse/focus", tok, args[0])
			return makeOp(labl)
		}
		return makeOp(info.oc, n)
	case argLabel:
		return makeOp(info.oc, as.label(tok, args[0]))
	}
	panic("unhandled argument kind")
}

func (as *assembler) label(tok *token.Token, name string) uint32 {
	loc, ok := as.prog.Labels[name]
	if !ok {
		as.throw("label/undef", tok, name)
	}
	return loc
}

// Literals are integers, in any notation Go accepts, or booleans.
func parseLiteral(s string) (values.Value, bool) {
	switch s {
	case "True", "true":
		return values.TRUE, true
	case "False", "false":
		return values.FALSE, true
	}
	i, err := strconv.ParseInt(s, 0, strconv.IntSize)
	if err != nil {
		return values.Value{}, false
	}
	return values.Int(int(i)), true
}

func parsePositive(s string) (uint32, bool) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint32(n), true
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, ch := range s {
		if ch == '_' || unicode.IsLetter(ch) || (i > 0 && unicode.IsDigit(ch)) {
			continue
		}
		return false
	}
	return true
}
