package main

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

//go:embed config_default.yaml
var defaultConfigYAML []byte

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Seed a repo with .hooks/config.yaml and .claude/settings.json",
		Args:  cobra.MaximumNArgs(1),
		Long: `Initialize a repository for the hooks. Path defaults to the current
directory. An existing .hooks/config.yaml is kept unless --force is given;
existing .claude/settings.json entries are merged, never clobbered.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			target := "."
			if len(args) > 0 {
				target = args[0]
			}
			absTarget, err := filepath.Abs(target)
			if err != nil {
				return fmt.Errorf("init: %w", err)
			}
			return runInit(absTarget, force)
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing .hooks/config.yaml")
	return cmd
}

func runInit(target string, force bool) error {
	hooksDir := filepath.Join(target, ".hooks")
	if err := os.MkdirAll(hooksDir, 0755); err != nil {
		return err
	}

	configPath := filepath.Join(hooksDir, "config.yaml")
	if _, err := os.Stat(configPath); err == nil && !force {
		fmt.Println("kept existing", configPath)
	} else {
		if err := os.WriteFile(configPath, defaultConfigYAML, 0644); err != nil {
			return err
		}
		fmt.Println("wrote", configPath)
	}

	settingsPath := filepath.Join(target, ".claude", "settings.json")
	changed, err := registerHooks(settingsPath)
	if err != nil {
		return fmt.Errorf("registering hooks: %w", err)
	}
	if changed {
		fmt.Println("wrote", settingsPath)
	} else {
		fmt.Println("hooks already registered in", settingsPath)
	}
	return nil
}
