package main

import "github.com/go-ece/ece/cmd"

func main() {
	cmd.Execute()
}
