// All this does is contain in one place the constants controlling which bits of the inner workings of the
// lexer/assembler/machine are displayed to me for debugging purposes. In a release they must all be set to
// false, except SHOW_TESTS which may as well be left as it is.

package settings

const (
	// These do what it sounds like.
	SHOW_LEXER     = false
	SHOW_ASSEMBLER = false // Prints the assembled operations and the label table.
	SHOW_RUNTIME   = false // Prints each operation as the step engine executes it.

	SHOW_TESTS = true // Says whether the tests should say what is being tested, useful if one of them crashes and we don't know which.
)

const (
	MAX_STEPS       = 1000 // The default step budget.
	ERROR_THRESHOLD = 8    // The assembler gives up after this many errors.
	MAIN_LABEL      = "main"
	DEFAULT_EXAMPLE = "add"
)
