package main

import "github.com/rcallahan/memphis-shows/internal/cli"

func main() {
	cli.Execute()
}
