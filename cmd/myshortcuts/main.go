package main

import "github.com/MrSnakeDoc/myshortcuts/internal/cli"

func main() {
	cli.Execute()
}
