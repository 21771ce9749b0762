package main

import "svbase/internal/cli"

func main() {
	cli.Execute()
}
