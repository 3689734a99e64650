package main

import "github.com/gridle-game/gridle/cmd"

func main() {
	cmd.Execute()
}
