package main

import "github.com/leandrodaf/maestro/cmd"

func main() {
	cmd.Execute()
}
