package main

import "github.com/tumbleweed-games/mostwanted/internal/cli"

func main() {
	cli.Execute()
}
