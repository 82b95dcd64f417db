package main

import "github.com/mmcdole/purse/internal/cli"

func main() {
	cli.Execute()
}
