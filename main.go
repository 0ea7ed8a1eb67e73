// Package main is the entry point for the modepack CLI.
package main

import "modepack.dev/pkg/modepack/cmd"

func main() {
	cmd.Execute()
}
