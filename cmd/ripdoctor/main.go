// Command ripdoctor analyzes ripped media containers for damage and
// optionally repairs them.
//
// The process exit status equals the analysis report's issue count, so
// scripts can gate on health directly. Fatal input errors (missing or
// unreadable file) exit with code 64 before any probe runs.
package main

import (
	"fmt"
	"os"
)

const exitFatal = 64

func main() {
	code, err := execute(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "ripdoctor:", err)
	}
	os.Exit(code)
}

func execute(args []string) (int, error) {
	var exitCode int
	cmd := newRootCommand(&exitCode)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		if exitCode == 0 {
			exitCode = exitFatal
		}
		return exitCode, err
	}
	return exitCode, nil
}
