package cmd

import (
	"fmt"
	"os"

	"github.com/go-cminus/cminus/internal/ast"
	"github.com/go-cminus/cminus/internal/codegen"
	"github.com/go-cminus/cminus/internal/semantic"
	"github.com/spf13/cobra"
)

var (
	outputFile     string
	compileVerbose bool
	demoName       string
)

var compileCmd = &cobra.Command{
	Use:   "compile",
	Short: "Run semantic analysis and code generation over a built-in sample program",
	Long: `compile runs both compiler passes over a hand-built sample program
(there is no lexer/parser front end): the analyzer and type checker first,
then the code generator if no diagnostics were reported.

Examples:
  # Print the generated instruction listing for the "sum" sample
  cminus compile

  # Run the intentionally-broken sample and see its diagnostics
  cminus compile --demo broken

  # Write the listing to a file instead
  cminus compile -o out.tm`,
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)

	compileCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file (default: stdout)")
	compileCmd.Flags().BoolVarP(&compileVerbose, "verbose", "v", false, "verbose output")
	compileCmd.Flags().StringVar(&demoName, "demo", "sum", "sample program to compile: sum|broken")
}

func runCompile(_ *cobra.Command, _ []string) error {
	var program *ast.Node
	switch demoName {
	case "broken":
		program = ast.DemoBroken()
	case "sum":
		program = ast.Demo()
	default:
		return fmt.Errorf("unknown --demo %q: want sum or broken", demoName)
	}

	if compileVerbose {
		fmt.Fprintln(os.Stderr, "Running semantic analysis...")
	}

	analyzer, _ := semantic.Analyze(program)
	reporter := analyzer.Reporter

	if reporter.HasErrors() {
		fmt.Fprint(os.Stderr, reporter.Format())
		return fmt.Errorf("semantic analysis failed with %d error(s)", len(reporter.Errors()))
	}

	if compileVerbose {
		fmt.Fprintln(os.Stderr, "Generating code...")
	}

	gen := codegen.NewGenerator(analyzer.Root)
	if !gen.Generate(program) {
		return fmt.Errorf("code generation failed: no main function")
	}

	listing := gen.Emit.String() + "\n"

	if outputFile == "" {
		fmt.Print(listing)
		return nil
	}
	return os.WriteFile(outputFile, []byte(listing), 0o644)
}
