// cmd/assistant/main.go
package main

import (
	"os"

	"craft-assistant/cmd/assistant/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
