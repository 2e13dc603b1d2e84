package main

import "declex/internal/cli"

func main() {
	cli.Execute()
}
