package lexer

import (
	"strings"
	"unicode"

	"secd/source/report"
	"secd/source/settings"
	"secd/source/text"
	"secd/source/token"
)

// The lexer cuts a program into statements. A statement ends at a newline or a semicolon;
// a line whose first non-blank characters are '#' is a comment, as is everything after a '##'.
type lexer struct {
	input  string
	source string
	Ers    report.Errors
}

func NewLexer(source, input string) *lexer {
	return &lexer{input: input, source: source, Ers: report.Errors{}}
}

func (l *lexer) Tokens() []token.Token {
	toks := []token.Token{}
	for i, line := range strings.Split(l.input, "\n") {
		lineNo := i + 1
		if pos := strings.Index(line, "##"); pos >= 0 {
			line = line[:pos]
		}
		for _, stmt := range strings.Split(line, ";") {
			stmt = strings.TrimSpace(stmt)
			if stmt == "" || stmt[0] == '#' {
				continue
			}
			toks = append(toks, l.makeToken(stmt, lineNo))
		}
	}
	if settings.SHOW_LEXER {
		for _, tok := range toks {
			println(text.BULLET+string(tok.Type), tok.Line, tok.Literal)
		}
	}
	return toks
}

func (l *lexer) makeToken(stmt string, lineNo int) token.Token {
	tok := token.Token{Type: token.OP, Literal: stmt, Line: lineNo, Source: l.source}
	for _, ch := range stmt {
		if ch != '\t' && !unicode.IsGraphic(ch) {
			tok.Type = token.ILLEGAL
			l.Ers = append(l.Ers, report.CreateErr("lex/char", &tok, ch))
			return tok
		}
	}
	if strings.HasSuffix(stmt, ":") {
		tok.Type = token.LABEL
	}
	return tok
}
