package main

import "rematierra/internal/cli"

func main() {
	cli.Execute()
}
