package main

import "github.com/Odiin2024/flashboss-site/internal/cmd"

func main() {
	cmd.Execute()
}
