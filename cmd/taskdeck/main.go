package main

import "taskdeck/internal/cli"

func main() {
	cli.Execute()
}
