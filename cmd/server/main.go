package main

import "github.com/eslsoft/vocduel/cmd"

func main() {
	cmd.Execute()
}
