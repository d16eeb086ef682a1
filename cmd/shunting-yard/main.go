package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spicery/shunting-yard/pkg/display"
	"github.com/spicery/shunting-yard/pkg/shuntingyard"
	"github.com/spicery/shunting-yard/pkg/tokenizer"
)

const (
	version = "0.1.0"
	usage   = `shunting-yard - Convert infix expressions to Reverse Polish Notation

Usage:
  shunting-yard [options]

Options:
  -h, --help            Show this help message
  -v, --version         Show version information
  --input <file>        Input file, one expression per line (defaults to stdin)
  --output <file>       Output file (defaults to stdout)
  --grammar <file>      YAML grammar file (defaults to the built-in grammar)
  --make-grammar        Print the built-in grammar as YAML and exit
  --tokens              Only tokenize, do not convert
  --format <name>       Output format: text, json, table or rpn (default text)
  --style <name>        Table style: LIGHT, DOUBLE, BOLD, ROUNDED, SIMPLE
  --trace               Log conversion steps to stderr
  --exit0               Exit with code 0 even on errors (suppress stderr)

Examples:
  echo 'V1 + V2 * sin(10)' | shunting-yard
  shunting-yard --input formulas.txt --format json
  shunting-yard --grammar custom.yaml --format table --input formulas.txt
  shunting-yard --make-grammar > custom.yaml

Blank lines are skipped. Each result is followed by an empty line in text
and table formats.
`
)

type options struct {
	showHelp, showVersion, exit0, makeGrammar, tokensOnly, trace bool
	inputFile, outputFile, grammarFile, format, style            string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var opts options
	fs := flag.NewFlagSet("shunting-yard", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.BoolVar(&opts.showHelp, "h", false, "Show help")
	fs.BoolVar(&opts.showHelp, "help", false, "Show help")
	fs.BoolVar(&opts.showVersion, "v", false, "Show version")
	fs.BoolVar(&opts.showVersion, "version", false, "Show version")
	fs.BoolVar(&opts.exit0, "exit0", false, "Exit with code 0 even on errors")
	fs.BoolVar(&opts.makeGrammar, "make-grammar", false, "Print the built-in grammar")
	fs.BoolVar(&opts.tokensOnly, "tokens", false, "Only tokenize")
	fs.BoolVar(&opts.trace, "trace", false, "Log conversion steps")
	fs.StringVar(&opts.inputFile, "input", "", "Input file (defaults to stdin)")
	fs.StringVar(&opts.outputFile, "output", "", "Output file (defaults to stdout)")
	fs.StringVar(&opts.grammarFile, "grammar", "", "YAML grammar file (optional)")
	fs.StringVar(&opts.format, "format", "text", "Output format")
	fs.StringVar(&opts.style, "style", "LIGHT", "Table style")

	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
	}

	if err := fs.Parse(args); err != nil {
		return 1
	}

	if opts.showHelp {
		fs.Usage()
		return 0
	}

	if opts.showVersion {
		fmt.Fprintf(stdout, "shunting-yard version %s\n", version)
		return 0
	}

	if opts.makeGrammar {
		data, err := shuntingyard.DefaultGrammar().Marshal()
		if err != nil {
			fmt.Fprintf(stderr, "Error generating default grammar: %v\n", err)
			return 1
		}
		fmt.Fprint(stdout, string(data))
		return 0
	}

	// Reject any positional arguments
	if len(fs.Args()) > 0 {
		fmt.Fprintf(stderr, "Error: Unexpected positional arguments. Use --input and --output flags instead.\n\n")
		fs.Usage()
		return 1
	}

	switch opts.format {
	case "text", "json", "table", "rpn":
	default:
		fmt.Fprintf(stderr, "Error: unknown format '%s'\n", opts.format)
		return 1
	}

	// Build the converter
	var convOpts []shuntingyard.Option
	if opts.trace {
		logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		convOpts = append(convOpts, shuntingyard.WithLogger(logger))
	}
	grammar := shuntingyard.DefaultGrammar()
	if opts.grammarFile != "" {
		g, err := shuntingyard.LoadGrammarFile(opts.grammarFile)
		if err != nil {
			fmt.Fprintf(stderr, "Error loading grammar file '%s': %v\n", opts.grammarFile, err)
			return 1
		}
		grammar = g
	}
	converter, err := grammar.Converter(convOpts...)
	if err != nil {
		fmt.Fprintf(stderr, "Error applying grammar: %v\n", err)
		return 1
	}
	tk := converter.Tokenizer()

	// Read input
	var input io.Reader = stdin
	if opts.inputFile != "" {
		file, err := os.Open(opts.inputFile)
		if err != nil {
			fmt.Fprintf(stderr, "Error reading file '%s': %v\n", opts.inputFile, err)
			return 1
		}
		defer file.Close()
		input = file
	}

	// Prepare output destination
	var output io.Writer = stdout
	if opts.outputFile != "" {
		file, err := os.Create(opts.outputFile)
		if err != nil {
			fmt.Fprintf(stderr, "Error creating output file '%s': %v\n", opts.outputFile, err)
			return 1
		}
		defer file.Close()
		output = file
	}

	failed := false
	scanner := bufio.NewScanner(input)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var tokens []tokenizer.Token
		if opts.tokensOnly {
			tokens, err = tk.Tokenize(line)
		} else {
			tokens, err = converter.Convert(line)
		}
		if err != nil {
			failed = true
			if !opts.exit0 {
				fmt.Fprintf(stderr, "Error: %v\n", err)
			}
			continue
		}

		if err := write(output, tokens, opts); err != nil {
			fmt.Fprintf(stderr, "Error writing output: %v\n", err)
			return 1
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(stderr, "Error reading input: %v\n", err)
		return 1
	}

	if failed && !opts.exit0 {
		return 1
	}
	return 0
}

func write(w io.Writer, tokens []tokenizer.Token, opts options) error {
	switch opts.format {
	case "json":
		return display.WriteJSONLines(w, tokens)
	case "table":
		display.WriteTable(w, tokens, opts.style)
		_, err := fmt.Fprintln(w)
		return err
	case "rpn":
		_, err := fmt.Fprintln(w, display.Expression(tokens))
		return err
	default:
		_, err := fmt.Fprintf(w, "%s\n\n", display.Dump(tokens))
		return err
	}
}
