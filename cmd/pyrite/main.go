package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"

	"github.com/pyrite-lang/pyrite/internal/parse"
	"github.com/pyrite-lang/pyrite/internal/sourcecode"
	"github.com/pyrite-lang/pyrite/internal/utils"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

var (
	traceEnabled bool
	jsonOutput   bool
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "pyrite",
		Short:         "pyrite parses Python source files into syntax trees",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&traceEnabled, "trace", false, "log grammar rule activity to stderr")

	parseCmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "parse a file and print its syntax tree",
		Args:  cobra.ExactArgs(1),
		RunE:  runParse,
	}
	parseCmd.Flags().BoolVar(&jsonOutput, "json", false, "print the tree as JSON with spans and positions")

	tokensCmd := &cobra.Command{
		Use:   "tokens <file>",
		Short: "print the token stream of a file",
		Args:  cobra.ExactArgs(1),
		RunE:  runTokens,
	}

	root.AddCommand(parseCmd, tokensCmd)
	return root
}

func readSource(arg string) (*sourcecode.File, error) {
	if arg == "-" {
		code, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return sourcecode.NewFile("<stdin>", string(code)), nil
	}

	code, err := os.ReadFile(arg)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", arg, err)
	}
	return sourcecode.NewFile(arg, string(code)), nil
}

func parseOptions() []parse.Options {
	if !traceEnabled {
		return nil
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.TraceLevel)
	return []parse.Options{{TraceLogger: &logger}}
}

func runParse(cmd *cobra.Command, args []string) error {
	file, err := readSource(args[0])
	if err != nil {
		return err
	}

	mod, err := parse.Parse(file.Code, parseOptions()...)
	if err != nil {
		printParsingError(cmd.ErrOrStderr(), file, err)
		return err
	}

	if jsonOutput {
		marshaled := utils.Must(json.Marshal(parse.DumpJSON(mod)))
		cmd.OutOrStdout().Write(pretty.Pretty(marshaled))
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), parse.Dump(mod))
	return nil
}

func runTokens(cmd *cobra.Command, args []string) error {
	file, err := readSource(args[0])
	if err != nil {
		return err
	}

	tokens, err := parse.Tokenize(file.Code)
	if err != nil {
		printParsingError(cmd.ErrOrStderr(), file, err)
		return err
	}

	lines := utils.MapSlice(tokens, func(t parse.Token) string {
		if t.Raw == "" {
			return fmt.Sprintf("%d:%d\t%s", t.Line, t.Column, t.Type)
		}
		return fmt.Sprintf("%d:%d\t%s\t%q", t.Line, t.Column, t.Type, t.Raw)
	})
	fmt.Fprintln(cmd.OutOrStdout(), strings.Join(lines, "\n"))
	return nil
}

// printParsingError prints a single-line location message followed by the
// offending source line with a caret under the error position.
func printParsingError(w io.Writer, file *sourcecode.File, err error) {
	parsingErr, ok := err.(*parse.ParsingError)
	if !ok {
		fmt.Fprintln(w, err)
		return
	}

	output := termenv.NewOutput(w)
	errorStyle := output.String().Foreground(output.Color("1")).Bold()

	file.FormatLocation(w, parsingErr.Position.Line, parsingErr.Position.Column)
	fmt.Fprintf(w, " %s %s\n", errorStyle.Styled(parsingErr.Kind.String()+":"), parsingErr.Message)

	offset := file.OffsetOf(parsingErr.Position.Line, parsingErr.Position.Column)
	before, after := file.LineCut(offset)
	fmt.Fprintf(w, "  %s%s\n", before, after)
	fmt.Fprintf(w, "  %s%s\n", strings.Repeat(" ", len(before)), errorStyle.Styled("^"))
}
