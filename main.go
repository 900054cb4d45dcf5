package main

import "alias-resolver/cmd/alias-resolver/commands"

func main() {
	commands.Execute()
}
