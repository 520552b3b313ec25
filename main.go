package main

import "spacebook/cmd"

func main() {
	cmd.Execute()
}
