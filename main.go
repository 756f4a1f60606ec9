package main

import "thoreinstein.com/tally/cmd"

func main() {
	cmd.Execute()
}
