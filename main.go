// Package main is the entry point for the compaug CLI.
package main

import "compaug.dev/pkg/compaug/cmd"

func main() {
	cmd.Execute()
}
