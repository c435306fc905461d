package hub

import (
	"strconv"

	"github.com/lmorg/readline"

	"secd/source/text"
	"secd/source/trace"
)

// StartHub runs the interactive console until the user quits or input ends, and then reports
// the outcome.
func StartHub(hub *Hub) trace.Outcome {
	rline := readline.NewInstance()
	hub.WriteString(text.Logo())
	for {
		hub.Show()
		rline.SetPrompt(makePrompt(hub))
		line, err := rline.Readline()
		if err != nil { // Ctrl-C, Ctrl-D or the end of the input.
			break
		}
		if hub.Do(line) {
			break
		}
	}
	return hub.Finish()
}

func makePrompt(hub *Hub) string {
	promptText := "step " + strconv.Itoa(hub.trace.Cursor()) + "/" + strconv.Itoa(hub.trace.Steps()) + " " + text.PROMPT
	switch hub.trace.Status() {
	case trace.FAILED, trace.ABORTED:
		promptText = text.Red(promptText)
	case trace.HALTED:
		promptText = text.Green(promptText)
	}
	return promptText
}
