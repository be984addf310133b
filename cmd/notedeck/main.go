package main

import (
	"os"
)

func main() {
	root := newRootCommand(defaultCommandWiring(os.Stdin, os.Stdout, os.Stderr))
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
