package main

import "modlive/cmd"

func main() {
	cmd.Execute()
}
