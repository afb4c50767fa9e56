package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "es5",
	Short: "An ECMAScript 5.1 interpreter",
	Long: `es5 is a tree-walking interpreter for the core of ECMAScript 5.1:
expressions, statements, the object model, and the built-in globals
(Object, Function, Array, String, Number, Boolean, Error, Math).

It does not implement a module system, RegExp, Date, or JSON; see
DESIGN.md for the full list of what this interpreter covers.`,
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
}
