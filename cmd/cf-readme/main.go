package main

import "github.com/pfrederiksen/cf-readme/internal/cli"

func main() {
	cli.Execute()
}
