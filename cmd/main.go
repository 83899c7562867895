package main

import "github.com/valutatrade/hubrun/cmd/cli"

func main() {
	cli.Execute()
}
