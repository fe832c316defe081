package main

import "github.com/zinc-sig/specter/cmd"

func main() {
	cmd.Execute()
}
