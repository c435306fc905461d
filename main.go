//
// SECD machine version 0.1.0
//
// A step-by-step interpreter for an SECD-style abstract machine, with an interactive console for
// moving forwards and backwards through the states of a run.
//

package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"secd/source/examples"
	"secd/source/hub"
	"secd/source/report"
	"secd/source/settings"
	"secd/source/text"
	"secd/source/trace"
	"secd/source/vm"
)

const (
	EXIT_HALTED  = 0
	EXIT_ERROR   = 1
	EXIT_ABORTED = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("secd", flag.ContinueOnError)
	flags.SetOutput(stderr)
	interactive := flags.Bool("i", false, "interactive mode")
	maxSteps := flags.Int("max", settings.MAX_STEPS, "the step budget")
	configPath := flags.String("config", "", "a YAML configuration file")
	example := flags.String("example", "", "run the named built-in example")
	list := flags.Bool("list", false, "list the built-in examples")
	dumpPath := flags.String("dump", "", "write the trace to this file as JSON")
	mono := flags.Bool("mono", false, "don't use colour")
	flags.Usage = func() {
		fmt.Fprint(stderr, text.HELP)
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		return EXIT_ERROR
	}

	cfg, err := settings.Load(*configPath)
	if err != nil {
		fmt.Fprintln(stderr, text.ErrorHeader()+err.Error())
		return EXIT_ERROR
	}
	flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "i":
			cfg.Interactive = *interactive
		case "max":
			cfg.MaxSteps = *maxSteps
		case "mono":
			cfg.Colour = !*mono
		}
	})
	configureLogging(cfg.LogLevel, stderr)
	log.Debug().Str("config", *configPath).Int("max_steps", cfg.MaxSteps).Bool("interactive", cfg.Interactive).Msg("configured")
	if !cfg.Colour {
		text.Monochrome()
	}

	if *list {
		for _, name := range examples.Names() {
			fmt.Fprintln(stdout, text.BULLET+name+" : "+examples.Summary(name))
		}
		return EXIT_HALTED
	}

	source, input, err := loadProgram(flags.Args(), *example)
	if err != nil {
		fmt.Fprintln(stderr, text.ErrorHeader()+err.Error())
		return EXIT_ERROR
	}
	prog, ers := vm.Assemble(source, input)
	if len(ers) > 0 {
		fmt.Fprint(stderr, report.GetList(ers))
		return EXIT_ERROR
	}

	hb := hub.New(stdout, vm.New(prog), cfg)
	var outcome trace.Outcome
	if cfg.Interactive {
		outcome = hub.StartHub(hb)
	} else {
		outcome = hb.RunBatch()
	}
	if *dumpPath != "" {
		if err := dumpTrace(hb.Trace(), *dumpPath); err != nil {
			fmt.Fprintln(stderr, text.ErrorHeader()+err.Error())
			return EXIT_ERROR
		}
	}
	switch outcome.Status {
	case trace.HALTED:
		return EXIT_HALTED
	case trace.ABORTED:
		return EXIT_ABORTED
	}
	return EXIT_ERROR
}

// The program comes from the file named on the command line, or else from a built-in example.
func loadProgram(args []string, example string) (string, string, error) {
	if len(args) > 1 {
		return "", "", fmt.Errorf("expected at most one program file, got %d", len(args))
	}
	if len(args) == 1 {
		if example != "" {
			return "", "", fmt.Errorf("can't run both a file and an example")
		}
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", err
		}
		return args[0], string(data), nil
	}
	if example == "" {
		example = settings.DEFAULT_EXAMPLE
	}
	input, ok := examples.Get(example)
	if !ok {
		return "", "", fmt.Errorf("there is no example called %s, try -list", text.Emph(example))
	}
	return "example " + example, input, nil
}

func configureLogging(level string, w io.Writer) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.WarnLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: w})
}

func dumpTrace(tr *trace.Trace, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return tr.WriteJSON(f)
}
