// Command nfa2dfa converts a nondeterministic finite automaton into an
// equivalent deterministic one using subset construction.
//
//	nfa2dfa -states q0,q1,q2 -symbols a,b -start q0 -accept q2 \
//	        -transitions 'q0,a->q0 q1;q1,b->q2'
//	nfa2dfa -format dot automaton.yaml
//	nfa2dfa -interactive
//
// YAML files given as arguments are converted concurrently.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	automaton "github.com/geange/powerset"
	"github.com/geange/powerset/batch"
	"github.com/geange/powerset/internal/logger"
)

var errUsage = errors.New("usage")

type config struct {
	input       automaton.TextInput
	files       []string
	strict      bool
	order       automaton.Order
	format      string
	interactive bool
	workers     int
	workLimit   int
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "nfa2dfa:", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, logOpts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	logOpts, err = logger.FromEnv(logOpts)
	if err != nil {
		return err
	}
	logOpts.Output = stderr
	log := logger.Configure(logOpts)

	policy := automaton.Lenient
	if cfg.strict {
		policy = automaton.Strict
	}

	if len(cfg.files) > 0 {
		return convertFiles(ctx, cfg, policy, log, stdout)
	}

	if cfg.interactive {
		in, err := promptInput(cfg.input)
		if err != nil {
			return err
		}
		cfg.input = in
	}

	nfa, warnings, err := automaton.ParseText(cfg.input, policy)
	if err != nil {
		return err
	}
	logWarnings(ctx, log, "", warnings)

	dfa, err := automaton.Determinize(nfa,
		automaton.WithContext(ctx),
		automaton.WithOrder(cfg.order),
		automaton.WithWorkLimit(cfg.workLimit),
		automaton.WithLogger(log))
	if err != nil {
		return err
	}

	return render(stdout, cfg.format, dfa)
}

func parseFlags(args []string, stderr io.Writer) (*config, logger.Options, error) {
	fs := flag.NewFlagSet("nfa2dfa", flag.ContinueOnError)
	fs.SetOutput(stderr)

	cfg := &config{}
	var (
		transitions string
		order       string
		logLevel    string
		logJSON     bool
	)

	fs.StringVar(&cfg.input.States, "states", "q0,q1,q2", "NFA states, comma separated")
	fs.StringVar(&cfg.input.Symbols, "symbols", "a,b", "input symbols, comma separated")
	fs.StringVar(&cfg.input.Start, "start", "q0", "start state")
	fs.StringVar(&cfg.input.Accept, "accept", "q2", "accept states, comma separated")
	fs.StringVar(&transitions, "transitions", "q0,a->q0 q1;q1,b->q2",
		`transition rules "STATE,SYMBOL->TARGET TARGET", separated by ';' or newlines`)
	fs.BoolVar(&cfg.strict, "strict", false, "reject malformed rules and undeclared states or symbols")
	fs.StringVar(&order, "order", "fifo", "worklist order: fifo or lifo")
	fs.StringVar(&cfg.format, "format", "text", "output format: text, dot or yaml")
	fs.BoolVar(&cfg.interactive, "interactive", false, "prompt for the automaton")
	fs.IntVar(&cfg.workers, "workers", 0, "concurrent conversions when several files are given (0: GOMAXPROCS)")
	fs.IntVar(&cfg.workLimit, "max-states", 0, "fail if the DFA would have more states (0: no limit)")
	fs.StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	fs.BoolVar(&logJSON, "log-json", false, "log as JSON")

	if err := fs.Parse(args); err != nil {
		return nil, logger.Options{}, err
	}

	cfg.input.Transitions = strings.ReplaceAll(transitions, ";", "\n")
	cfg.files = fs.Args()

	switch strings.ToLower(order) {
	case "fifo":
		cfg.order = automaton.FIFO
	case "lifo":
		cfg.order = automaton.LIFO
	default:
		return nil, logger.Options{}, fmt.Errorf("%w: unknown order %q", errUsage, order)
	}

	switch cfg.format {
	case "text", "dot", "yaml":
	default:
		return nil, logger.Options{}, fmt.Errorf("%w: unknown format %q", errUsage, cfg.format)
	}

	level, err := logger.ParseLevel(logLevel)
	if err != nil {
		return nil, logger.Options{}, err
	}

	return cfg, logger.Options{Subsystem: "nfa2dfa", JSON: logJSON, MinLevel: level}, nil
}

func convertFiles(ctx context.Context, cfg *config, policy automaton.ParsePolicy, log *slog.Logger, stdout io.Writer) error {
	nfas := make([]*automaton.NFA, len(cfg.files))
	for i, name := range cfg.files {
		nfa, err := loadFile(ctx, name, policy, log)
		if err != nil {
			return err
		}
		nfas[i] = nfa
	}

	conv := batch.New(batch.Options{
		Workers:   cfg.workers,
		Order:     cfg.order,
		WorkLimit: cfg.workLimit,
		Logger:    log,
	})
	defer conv.Close()

	dfas, err := conv.ConvertAll(ctx, nfas)
	if err != nil {
		return err
	}

	for i, dfa := range dfas {
		if len(dfas) > 1 {
			if i > 0 {
				fmt.Fprintln(stdout)
			}
			fmt.Fprintf(stdout, "# %s\n", cfg.files[i])
		}
		if err := render(stdout, cfg.format, dfa); err != nil {
			return err
		}
	}
	return nil
}

func loadFile(ctx context.Context, name string, policy automaton.ParsePolicy, log *slog.Logger) (*automaton.NFA, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	nfa, warnings, err := automaton.LoadYAML(f, policy)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	logWarnings(ctx, log, name, warnings)
	return nfa, nil
}

func logWarnings(ctx context.Context, log *slog.Logger, source string, warnings []*automaton.ParseError) {
	for _, w := range warnings {
		log.WarnContext(ctx, "skipped transition", "source", source, "line", w.Line, "text", w.Text, "error", w.Err)
	}
}

func render(w io.Writer, format string, dfa *automaton.DFA) error {
	switch format {
	case "dot":
		return automaton.WriteDOT(w, dfa)
	case "yaml":
		out, err := automaton.MarshalDFAYAML(dfa)
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	default:
		return automaton.Format(w, dfa)
	}
}
