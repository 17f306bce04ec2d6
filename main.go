package main

import (
	"github.com/phytec-labs/elements/cmd"
)

func main() {
	cmd.Execute()
}
