package main

import (
	"github.com/kmf229/op-net-rate/internal/cli"
)

func main() {
	cli.Execute()
}
