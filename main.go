package main

import (
	"ditto/cmd"
)

func main() {
	cmd.Execute()
}
