package lexer

import (
	"testing"

	"secd/source/token"
)

func TestLexer(t *testing.T) {
	input := "# a comment\nmain:   ## and another\n\tconst 1 ; access $2;;\n\n   halt  \n"
	tests := []struct {
		expectedType    token.TokenType
		expectedLiteral string
		expectedLine    int
	}{
		{token.LABEL, "main:", 2},
		{token.OP, "const 1", 3},
		{token.OP, "access $2", 3},
		{token.OP, "halt", 5},
	}
	l := NewLexer("test", input)
	toks := l.Tokens()
	if len(toks) != len(tests) {
		t.Fatalf("expected %d tokens, got %d", len(tests), len(toks))
	}
	for i, tt := range tests {
		tok := toks[i]
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q", i, tt.expectedType, tok.Type)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		}
		if tok.Line != tt.expectedLine {
			t.Fatalf("tests[%d] - line wrong. expected=%d, got=%d", i, tt.expectedLine, tok.Line)
		}
		if tok.Source != "test" {
			t.Fatalf("tests[%d] - source wrong. got=%q", i, tok.Source)
		}
	}
	if len(l.Ers) != 0 {
		t.Fatalf("unexpected errors: %v", l.Ers)
	}
}

func TestIllegalCharacter(t *testing.T) {
	l := NewLexer("test", "main:\nconst \x07\nhalt")
	toks := l.Tokens()
	if len(toks) != 3 || toks[1].Type != token.ILLEGAL {
		t.Fatalf("expected the second of three tokens to be illegal, got %v", toks)
	}
	if len(l.Ers) != 1 || l.Ers[0].ErrorId != "lex/char" {
		t.Fatalf("expected one lex/char error, got %v", l.Ers)
	}
}

func TestFields(t *testing.T) {
	tok := token.Token{Type: token.OP, Literal: "closures  f   g"}
	op, args := tok.Fields()
	if op != "closures" || len(args) != 2 || args[0] != "f" || args[1] != "g" {
		t.Fatalf("bad fields: %q %v", op, args)
	}
	label := token.Token{Type: token.LABEL, Literal: "loop :"}
	if label.LabelName() != "loop" {
		t.Fatalf("bad label name: %q", label.LabelName())
	}
}
