package main

import "github.com/josephlewis42/kbuild/cmd"

func main() {
	cmd.Execute()
}
