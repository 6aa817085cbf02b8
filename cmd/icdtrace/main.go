package main

import "github.com/OpenTraceLab/icdtrace/cmd/icdtrace/cmd"

func main() {
	cmd.Execute()
}
