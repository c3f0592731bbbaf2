package main

import (
	"fmt"
	"io"
	"os"

	"github.com/chazu/calc/pkg/engine"
)

// runScriptFile runs the session script at path, writes one line per frame
// to w and returns the process exit code.
func runScriptFile(w io.Writer, eng *engine.Engine, path string) int {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(w, "error: %v\n", err)
		return 1
	}

	sess, evalErrs, err := eng.Run(string(source))
	if err != nil {
		fmt.Fprintf(w, "error: %v\n", err)
		return 1
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			fmt.Fprintf(w, "%s: %s\n", path, e.Error())
		}
		return 1
	}

	for _, f := range sess.Frames {
		fmt.Fprintf(w, "%-9s %s\n", f.Input, f.Display)
	}
	return 0
}
