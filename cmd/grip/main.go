package main

import "github.com/wozhendeai/grip/internal/cli"

func main() {
	cli.Execute()
}
