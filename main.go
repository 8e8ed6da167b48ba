package main

import "hivecadlanding/cmd"

func main() {
	cmd.Execute()
}
