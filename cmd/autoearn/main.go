package main

import "github.com/autoearnpro/autoearnpro/cmd/autoearn/cli"

func main() {
	cli.Execute()
}
