package main

import "cdntk/cmd"

func main() {
	cmd.Execute()
}
