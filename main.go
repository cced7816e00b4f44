package main

import "github.com/agentic-research/cherry/cmd"

func main() {
	cmd.Execute()
}
