// Command pasportctl is the headless companion to the Pasport GUI: it
// manages cards, slot images, and PDF exports in the same database
// from scripts and the shell.
package main

import (
	"fmt"
	"os"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
