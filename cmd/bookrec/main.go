package main

import "bookrec/internal/cli"

func main() {
	cli.Execute()
}
