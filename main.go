package main

import "github.com/argotchat/argot/cmd"

func main() {
	cmd.Execute()
}
