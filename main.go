package main

import "agricert/cmd"

func main() {
	cmd.Execute()
}
