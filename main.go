package main

import "tinyed/cmd"

func main() {
	cmd.Execute()
}
