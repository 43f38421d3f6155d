package main

import (
	"os"

	"github.com/mgajewskik/claude/internal/config"
	"github.com/mgajewskik/claude/internal/hooks"
)

func main() {
	hooks.Run("format-gate", func(input hooks.HookInput) int {
		return hooks.FormatGate(input, config.LoadOrDefault(), os.Stdout, os.Stderr)
	})
}
