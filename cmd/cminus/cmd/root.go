package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags).
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "cminus",
	Short: "C-Minus semantic analyzer and code generator",
	Long: `cminus runs the semantic analysis and code generation stages of a
C-Minus compiler: a symbol-table-driven analyzer and type checker, followed
by a code generator targeting a small register/memory abstract machine.

There is no lexer or parser here — programs are assembled with the fluent
builder in internal/ast and fed straight into the two compiler passes.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}
