package main

import "github.com/notargets/gocrack/cmd"

func main() {
	cmd.Execute()
}
