package main

import "rconv/cmd/rconv/cmd"

func main() {
	cmd.Execute()
}
