package main

import "threadboard/cmd/forumctl/commands"

func main() {
	commands.Execute()
}
