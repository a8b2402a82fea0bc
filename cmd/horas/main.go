package main

import (
	"github.com/dori/horas/cmd/horas/arg"
)

func main() {
	arg.Execute()
}
