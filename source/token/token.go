package token

import "strings"

type TokenType string

const (
	ILLEGAL = "ILLEGAL"
	LABEL   = "LABEL" // main:
	OP      = "OP"    // access $1
)

// A token is one statement of a program, after comments and separators have been stripped.
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Source  string
}

// The opcode and arguments of an OP token.
func (tok *Token) Fields() (string, []string) {
	f := strings.Fields(tok.Literal)
	if len(f) == 0 {
		return "", nil
	}
	return f[0], f[1:]
}

// The name of a LABEL token, without its colon.
func (tok *Token) LabelName() string {
	return strings.TrimSpace(strings.TrimSuffix(tok.Literal, ":"))
}
