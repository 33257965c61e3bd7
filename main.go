package main

import "github.com/xll-gen/blob2c/cmd"

// main is the entry point of the blob2c CLI.
// It executes the root command which parses flags and converts the input file.
func main() {
	cmd.Execute()
}
