package main

import (
	"github.com/Dima4663737373/MicroSlither.io/internal/cli"
)

func main() {
	cli.Execute()
}
