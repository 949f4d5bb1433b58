package main

import "spyglass/cmd"

func main() {
	cmd.Execute()
}
