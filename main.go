package main

import "github.com/inkfell/inkfell/cmd"

func main() {
	cmd.Execute()
}
