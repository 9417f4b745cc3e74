package main

import "lms-packages/internal/cli"

func main() {
	cli.Execute()
}
