package main

import "github.com/judgenot0/judge-checker/cli"

func main() {
	cli.Execute()
}
