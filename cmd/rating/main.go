package main

import (
	"os"

	"github.com/wonny/quickrate/cmd/rating/commands"
)

// main is the entry point for the rating CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/rating [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
