package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/cwbudde/go-es5/internal/ast"
	"github.com/cwbudde/go-es5/internal/errors"
	"github.com/cwbudde/go-es5/internal/interp"
	"github.com/cwbudde/go-es5/internal/parser"
	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"
)

var (
	evalExpr string
	dumpAST  bool
	trace    bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run an ECMAScript file or expression",
	Long: `Execute an ECMAScript 5.1 program from a file or inline source.

Examples:
  # Run a script file
  es5 run script.js

  # Evaluate inline source
  es5 run -e "print('Hello, World!');"

  # Run with an AST dump (for debugging)
  es5 run --dump-ast script.js

  # Trace every statement and expression as it executes
  es5 run --trace script.js`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline source instead of reading from a file")
	runCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "dump the parsed AST before running")
	runCmd.Flags().BoolVar(&trace, "trace", false, "trace every statement/expression visited during execution")
}

func runScript(_ *cobra.Command, args []string) error {
	source, filename, err := readSource(args)
	if err != nil {
		return err
	}

	p := parser.New(source, filename)
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		fmt.Fprintln(os.Stderr, errors.FormatErrors(errs, true))
		return fmt.Errorf("parsing failed with %d error(s)", len(errs))
	}

	if dumpAST {
		if err := dumpProgram(program); err != nil {
			return fmt.Errorf("failed to dump AST: %w", err)
		}
	}

	in := interp.New()
	in.Trace = trace
	if _, err := in.RunProgram(program); err != nil {
		if thrown, ok := err.(*interp.ThrownError); ok {
			fmt.Fprintln(os.Stderr, thrown.Message)
			return fmt.Errorf("execution failed")
		}
		return err
	}
	return nil
}

// dumpProgram prints --dump-ast's two views of the parsed tree: the
// structured YAML form `ast.DumpYAML` produces, and a pretty-printed
// compact JSON rendering of the same node tree for side-by-side
// comparison on long dumps.
func dumpProgram(program *ast.Program) error {
	yamlOut, err := ast.DumpYAML(program)
	if err != nil {
		return err
	}
	fmt.Println("AST (YAML):")
	fmt.Println(yamlOut)

	jsonOut, err := json.Marshal(ast.DumpTree(program))
	if err != nil {
		return err
	}
	fmt.Println("AST (JSON):")
	os.Stdout.Write(pretty.Pretty(jsonOut))
	fmt.Println()
	return nil
}

func readSource(args []string) (source, filename string, err error) {
	if evalExpr != "" {
		return evalExpr, "<eval>", nil
	}
	if len(args) == 1 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return string(content), args[0], nil
	}
	return "", "", fmt.Errorf("either provide a file path or use -e for inline source")
}
