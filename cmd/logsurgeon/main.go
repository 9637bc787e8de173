// Command logsurgeon tokenizes one or more log files against a YAML
// schema and prints either the raw token stream (--lexer) or the
// assembled log events.
package main

import (
	"fmt"
	"os"

	"github.com/projectdiscovery/goflags"
	"github.com/projectdiscovery/gologger"

	"github.com/Toplogic-Inc/log-surgeon-go/event"
	"github.com/Toplogic-Inc/log-surgeon-go/lexer"
	"github.com/Toplogic-Inc/log-surgeon-go/lserr"
	"github.com/Toplogic-Inc/log-surgeon-go/schema"
	"github.com/Toplogic-Inc/log-surgeon-go/streamio"
)

type options struct {
	schemaPath string
	inputPath  string
	lexerOnly  bool
}

func parseFlags() *options {
	opts := &options{}
	flagSet := goflags.NewFlagSet()
	flagSet.SetDescription(`Schema-driven structured log tokenizer and event assembler.`)

	flagSet.CreateGroup("input", "Input",
		flagSet.StringVarP(&opts.schemaPath, "schema", "s", "", "YAML schema file describing timestamp/variable patterns and delimiters"),
		flagSet.StringVarP(&opts.inputPath, "input", "i", "", "log file or directory of log files to tokenize"),
	)
	flagSet.CreateGroup("output", "Output",
		flagSet.BoolVarP(&opts.lexerOnly, "lexer", "l", false, "print the raw token stream instead of assembled events"),
	)

	if err := flagSet.Parse(); err != nil {
		gologger.Fatal().Msgf("could not read flags: %s\n", err)
	}

	if positional := flagSet.Args(); len(positional) > 0 {
		if opts.schemaPath == "" && len(positional) > 0 {
			opts.schemaPath = positional[0]
		}
		if opts.inputPath == "" && len(positional) > 1 {
			opts.inputPath = positional[1]
		}
	}

	if opts.schemaPath == "" || opts.inputPath == "" {
		gologger.Fatal().Msgf("usage: logsurgeon [--lexer] <schema-path> <input-path>\n")
	}

	return opts
}

func main() {
	opts := parseFlags()

	cfg, err := schema.Load(opts.schemaPath)
	if err != nil {
		fail(err)
	}

	files, err := (streamio.DirWalker{}).ListInputFiles(opts.inputPath)
	if err != nil {
		gologger.Fatal().Msgf("could not list input path %q: %s\n", opts.inputPath, err)
	}

	l := lexer.New(cfg)
	for _, path := range files {
		if err := processFile(l, cfg, path, opts.lexerOnly); err != nil {
			fail(err)
		}
	}
}

func processFile(l *lexer.Lexer, cfg *schema.Config, path string, lexerOnly bool) error {
	fs, err := streamio.OpenFile(path)
	if err != nil {
		return lserr.Wrap(lserr.IOError, err, "opening input file %q", path)
	}
	defer fs.Close()

	l.SetInputStream(fs)

	if lexerOnly {
		return printTokens(l, cfg)
	}
	return printEvents(l, cfg)
}

func printTokens(l *lexer.Lexer, cfg *schema.Config) error {
	for {
		tok, err := l.NextToken()
		if err != nil {
			return err
		}
		if tok == nil {
			return nil
		}
		fmt.Printf("%d: %s %q\n", tok.Line, annotatedKind(cfg, *tok), tok.Text)
	}
}

func printEvents(l *lexer.Lexer, cfg *schema.Config) error {
	events, err := event.Collect(l.NextToken)
	if err != nil {
		return err
	}
	for _, ev := range events {
		fmt.Printf("event lines %d-%d (has_timestamp=%v):\n", ev.FirstLine, ev.LastLine, ev.HasTimestamp)
		for _, tok := range ev.Tokens {
			fmt.Printf("  %s %q\n", annotatedKind(cfg, tok), tok.Text)
		}
	}
	return nil
}

func annotatedKind(cfg *schema.Config, tok lexer.Token) string {
	switch tok.Kind {
	case lexer.KindTimestamp:
		return fmt.Sprintf("Timestamp(%s)", cfg.TSName(tok.ID))
	case lexer.KindVariable:
		return fmt.Sprintf("Variable(%s)", cfg.VarName(tok.ID))
	default:
		return tok.Kind.String()
	}
}

func fail(err error) {
	gologger.Error().Msgf("%s", err)
	os.Exit(1)
}
