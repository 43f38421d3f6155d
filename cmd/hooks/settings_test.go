package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func readSettings(t *testing.T, path string) map[string]interface{} {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	return m
}

func eventCommands(t *testing.T, settings map[string]interface{}, event string) []string {
	t.Helper()
	hooksVal, _ := settings["hooks"].(map[string]interface{})
	entries, _ := hooksVal[event].([]interface{})
	var commands []string
	for _, e := range entries {
		m, _ := e.(map[string]interface{})
		inner, _ := m["hooks"].([]interface{})
		for _, h := range inner {
			if hm, ok := h.(map[string]interface{}); ok {
				if c, ok := hm["command"].(string); ok {
					commands = append(commands, c)
				}
			}
		}
	}
	return commands
}

func TestRegisterHooks_FreshFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".claude", "settings.json")

	changed, err := registerHooks(path)
	if err != nil {
		t.Fatal(err)
	}
	if !changed {
		t.Error("expected fresh file to be written")
	}

	settings := readSettings(t, path)
	if got := eventCommands(t, settings, "PostToolUse"); len(got) != 1 || got[0] != "format-gate" {
		t.Errorf("PostToolUse commands = %v, want [format-gate]", got)
	}
	for _, event := range []string{"Notification", "Stop"} {
		if got := eventCommands(t, settings, event); len(got) != 1 || got[0] != "notify-bridge" {
			t.Errorf("%s commands = %v, want [notify-bridge]", event, got)
		}
	}
}

func TestRegisterHooks_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".claude", "settings.json")

	if _, err := registerHooks(path); err != nil {
		t.Fatal(err)
	}
	changed, err := registerHooks(path)
	if err != nil {
		t.Fatal(err)
	}
	if changed {
		t.Error("second run should not rewrite the file")
	}

	settings := readSettings(t, path)
	if got := eventCommands(t, settings, "PostToolUse"); len(got) != 1 {
		t.Errorf("expected no duplicate registrations, got %v", got)
	}
}

func TestRegisterHooks_PreservesExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")
	existing := `{
		"model": "opus",
		"hooks": {
			"PostToolUse": [
				{"matcher": "Bash", "hooks": [{"type": "command", "command": "audit"}]}
			]
		}
	}`
	if err := os.WriteFile(path, []byte(existing), 0644); err != nil {
		t.Fatal(err)
	}

	changed, err := registerHooks(path)
	if err != nil {
		t.Fatal(err)
	}
	if !changed {
		t.Error("expected new registrations to be added")
	}

	settings := readSettings(t, path)
	if settings["model"] != "opus" {
		t.Errorf("unrelated settings were clobbered: %v", settings["model"])
	}
	got := eventCommands(t, settings, "PostToolUse")
	if len(got) != 2 || got[0] != "audit" || got[1] != "format-gate" {
		t.Errorf("PostToolUse commands = %v, want [audit format-gate]", got)
	}
}

func TestRegisterHooks_MalformedSettings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")
	if err := os.WriteFile(path, []byte("{broken"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := registerHooks(path); err == nil {
		t.Error("expected an error for a malformed settings file")
	}
}

func TestRunInit(t *testing.T) {
	dir := t.TempDir()

	if err := runInit(dir, false); err != nil {
		t.Fatal(err)
	}

	configPath := filepath.Join(dir, ".hooks", "config.yaml")
	if _, err := os.Stat(configPath); err != nil {
		t.Errorf("config not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, ".claude", "settings.json")); err != nil {
		t.Errorf("settings not written: %v", err)
	}

	// Re-running must keep the existing config.
	if err := os.WriteFile(configPath, []byte("version: 1\n# edited\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := runInit(dir, false); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(configPath)
	if string(data) != "version: 1\n# edited\n" {
		t.Error("init overwrote an existing config without --force")
	}
}

func TestDoctorProbes(t *testing.T) {
	linux := doctorProbes("linux")
	var hasNotifySend, hasDunstify bool
	for _, p := range linux {
		if p.binary == "notify-send" {
			hasNotifySend = true
		}
		if p.binary == "dunstify" {
			hasDunstify = true
		}
	}
	if !hasNotifySend || !hasDunstify {
		t.Errorf("linux probes missing notification backends: %v", linux)
	}

	for _, p := range doctorProbes("darwin") {
		if p.binary == "notify-send" {
			t.Error("darwin probes should not include notify-send")
		}
	}
}
