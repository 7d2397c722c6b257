package main

import "github.com/cmmoran/classdiagramgen/cmd"

func main() {
	cmd.Execute()
}
