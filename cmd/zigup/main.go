package main

import "zigup/internal/cli"

func main() {
	cli.Execute()
}
