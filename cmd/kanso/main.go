package main

import "github.com/comitanigiacomo/kanso-habits/internal/cli"

func main() {
	cli.Execute()
}
