// Package main is the entry point for the qmerge application
package main

import (
	"github.com/ethpandaops/qmerge/cmd"
)

func main() {
	cmd.Execute()
}
