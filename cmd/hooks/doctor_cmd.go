package main

import (
	"fmt"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/mgajewskik/claude/internal/hooks"
)

type toolProbe struct {
	binary   string
	purpose  string
	required bool
}

func doctorProbes(osName string) []toolProbe {
	probes := []toolProbe{
		{"jq", "JSON formatting", true},
		{"terraform", "Terraform formatting", true},
		{"black", "Python formatting", true},
		{"ruff", "Python linting", true},
		{"goimports", "Go formatting", true},
		{"shfmt", "shell formatting", true},
		{"shellcheck", "shell analysis", false},
	}
	switch osName {
	case "darwin":
		probes = append(probes,
			toolProbe{"osascript", "notifications", false})
	case "linux":
		probes = append(probes,
			toolProbe{"notify-send", "notifications (libnotify)", false},
			toolProbe{"dunstify", "notifications (dunst)", false})
	}
	return probes
}

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that the delegated external tools are installed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var missing int
			for _, p := range doctorProbes(hooks.HostOS()) {
				if _, err := exec.LookPath(p.binary); err == nil {
					fmt.Printf("✓ %s (%s)\n", p.binary, p.purpose)
				} else if p.required {
					fmt.Printf("✗ %s not found (%s)\n", p.binary, p.purpose)
					missing++
				} else {
					fmt.Printf("⚠ %s not found (%s, optional)\n", p.binary, p.purpose)
				}
			}
			if missing > 0 {
				return fmt.Errorf("%d required tool(s) missing", missing)
			}
			return nil
		},
	}
}
