package main

import (
	"os"

	"github.com/mgajewskik/claude/internal/config"
	"github.com/mgajewskik/claude/internal/hooks"
)

func main() {
	if hooks.IsHookDisabled("notify-bridge") {
		os.Exit(0)
	}
	os.Exit(hooks.NotifyBridge(hooks.HostOS(), config.LoadOrDefault(), os.Stderr))
}
