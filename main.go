package main

import "github.com/fillscan/fillscan/cmd"

func main() {
	cmd.Execute()
}
