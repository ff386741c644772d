package main

import "scm-gateway/internal/cli"

func main() {
	cli.Execute()
}
