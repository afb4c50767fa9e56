// Command es5 is a CLI front end for the ECMAScript 5.1 tree-walking
// interpreter in package interp.
package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/go-es5/cmd/es5/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
