// Command cminus drives semantic analysis and code generation over a
// built-in demo program, exercising the full pipeline described in
// spec.md without a parser front end.
package main

import (
	"fmt"
	"os"

	"github.com/go-cminus/cminus/cmd/cminus/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
