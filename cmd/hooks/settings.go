package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

type hookRegistration struct {
	event   string
	matcher string
	command string
}

var registrations = []hookRegistration{
	{event: "PostToolUse", matcher: "Write|Edit|MultiEdit", command: "format-gate"},
	{event: "Notification", matcher: "", command: "notify-bridge"},
	{event: "Stop", matcher: "", command: "notify-bridge"},
}

// registerHooks merges the hook registrations into the settings file,
// creating it if needed. Unrelated settings are preserved, and an event that
// already carries the command is left alone, so running init twice does not
// duplicate entries. Returns whether the file was written.
func registerHooks(settingsPath string) (bool, error) {
	settings := map[string]any{}
	if data, err := os.ReadFile(settingsPath); err == nil {
		if err := json.Unmarshal(data, &settings); err != nil {
			return false, fmt.Errorf("parsing %s: %w", settingsPath, err)
		}
	}

	hooksVal, _ := settings["hooks"].(map[string]any)
	if hooksVal == nil {
		hooksVal = map[string]any{}
	}

	changed := false
	for _, r := range registrations {
		entries, _ := hooksVal[r.event].([]any)
		if hasCommand(entries, r.command) {
			continue
		}
		entry := map[string]any{
			"matcher": r.matcher,
			"hooks": []any{
				map[string]any{"type": "command", "command": r.command},
			},
		}
		hooksVal[r.event] = append(entries, entry)
		changed = true
	}
	if !changed {
		return false, nil
	}

	settings["hooks"] = hooksVal
	if err := os.MkdirAll(filepath.Dir(settingsPath), 0755); err != nil {
		return false, err
	}
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return false, err
	}
	return true, os.WriteFile(settingsPath, append(data, '\n'), 0644)
}

func hasCommand(entries []any, command string) bool {
	for _, e := range entries {
		m, ok := e.(map[string]any)
		if !ok {
			continue
		}
		inner, _ := m["hooks"].([]any)
		for _, h := range inner {
			if hm, ok := h.(map[string]any); ok && hm["command"] == command {
				return true
			}
		}
	}
	return false
}
