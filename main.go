// Package main is the entry point for catalognav, the data catalog navigator.
package main

import (
	"catalognav/cli/cmd"
)

func main() {
	cmd.Execute()
}
