package main

import "github.com/moffa90/go-srec/cmd/srec/cmd"

func main() {
	cmd.Execute()
}
