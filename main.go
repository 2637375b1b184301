// Package main is the entry point for the meowcode CLI.
package main

import "meowcode.dev/pkg/meowcode/cmd"

func main() {
	cmd.Execute()
}
