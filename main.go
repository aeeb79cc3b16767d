// Package main is the entry point for fusekictl, a command-line client for
// Apache Jena Fuseki servers.
package main

import (
	"os"

	"fuseki-manager/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
