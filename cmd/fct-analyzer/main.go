package main

import "github.com/packagewjx/fct-analyzer/cmd"

func main() {
	cmd.Execute()
}
