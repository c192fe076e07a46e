package main

import "skill-match/internal/cli"

func main() {
	cli.Execute()
}
