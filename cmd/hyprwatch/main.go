package main

import "github.com/bryanchriswhite/hyprwatch/cmd/hyprwatch/commands"

func main() {
	commands.Execute()
}
