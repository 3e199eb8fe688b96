package main

import (
	"github.com/funvibe/purelift/pkg/cli"
)

func main() {
	cli.Entry()
}
