package main

import "github.com/brogergvhs/manhuafast/cmd"

func main() {
	cmd.Execute()
}
