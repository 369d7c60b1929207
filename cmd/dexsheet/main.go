package main

import "dexsheet/internal/cli"

func main() {
	cli.Execute()
}
