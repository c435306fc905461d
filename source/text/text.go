package text

// Text utilities for rendering machine states, error reports and the console's prompts.

import (
	"strconv"
	"strings"

	"secd/source/token"
)

const (
	VERSION        = "0.1.0"
	BULLET         = "  ▪ "
	BULLET_SPACING = "    " // I.e. whitespace the same width as BULLET.
	PROMPT         = "→ "
	CLEAR_SCREEN   = "\033[H\033[J"
	RULE           = "================================"
)

var (
	RESET     = "\033[0m"
	UNDERLINE = "\033[3m"
	RED       = "\033[31m"
	GREEN     = "\033[32m"
	YELLOW    = "\033[33m"
	BLUE      = "\033[34m"
	PURPLE    = "\033[35m"
	CYAN      = "\033[36m"
	GRAY      = "\033[37m"
	WHITE     = "\033[97m"
)

// Turns off the ANSI colour codes for the rest of the run, e.g. when output goes to a file.
func Monochrome() {
	RESET, UNDERLINE, RED, GREEN, YELLOW, BLUE, PURPLE, CYAN, GRAY, WHITE = "", "", "", "", "", "", "", "", "", ""
}

func Emph(s string) string {
	return "'" + s + "'"
}

func Cyan(s string) string {
	return CYAN + s + RESET
}

func Red(s string) string {
	return RED + s + RESET
}

func Green(s string) string {
	return GREEN + s + RESET
}

func Yellow(s string) string {
	return YELLOW + s + RESET
}

func Gray(s string) string {
	return GRAY + s + RESET
}

func Logo() string {
	titleText := " SECD machine, version " + VERSION + " "
	leftMargin := "  "
	bar := strings.Repeat("═", len([]rune(titleText)))
	return "\n" +
		leftMargin + "╔" + bar + "╗\n" +
		leftMargin + "║" + titleText + "║\n" +
		leftMargin + "╚" + bar + "╝\n\n"
}

const HELP = "\nUsage: secd [-i] [-max n] [-config file] [-dump file] [-mono]\n" +
	"            [-example name | -list | <file>]\n\n" +
	"With no file and no example, the built-in example 'add' is run.\n\n"

const CONSOLE_HELP = "\nConsole commands are:\n\n" +
	BULLET + "n or <return>  step forward\n" +
	BULLET + "p              step back through the history\n" +
	BULLET + "d              show what the last step changed\n" +
	BULLET + "r              run to the end\n" +
	BULLET + "e              explain the error that stopped the run\n" +
	BULLET + "h              show this help\n" +
	BULLET + "q              quit\n\n"

// Describes the position of a token for the purposes of error messages.
func DescribePos(tok *token.Token) string {
	if tok == nil || tok.Source == "" {
		return ""
	}
	if tok.Line > 0 {
		return " at line " + strconv.Itoa(tok.Line) + " of " + Emph(tok.Source)
	}
	return " in " + Emph(tok.Source)
}

func ErrorHeader() string {
	return Red("Error") + ": "
}

// Word-wraps s between the given margins. Existing newlines are kept.
func Pretty(s string, lMargin, rMargin int) string {
	width := rMargin - lMargin
	pad := strings.Repeat(" ", lMargin)
	var out strings.Builder
	for _, para := range strings.Split(s, "\n") {
		line := ""
		for _, word := range strings.Fields(para) {
			if line != "" && len(line)+1+len(word) > width {
				out.WriteString(pad + line + "\n")
				line = ""
			}
			if line == "" {
				line = word
			} else {
				line = line + " " + word
			}
		}
		out.WriteString(pad + line + "\n")
	}
	return out.String()
}
