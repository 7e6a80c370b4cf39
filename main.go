package main

import "github.com/tintd/tintd/internal/cmd"

func main() {
	cmd.Execute()
}
