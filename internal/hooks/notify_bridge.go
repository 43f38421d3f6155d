package hooks

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v4/host"

	"github.com/mgajewskik/claude/internal/config"
)

const (
	defaultNotifyTitle   = "Claude Code"
	defaultNotifyMessage = "Waiting for input"
)

// notifyBackend is one way of getting a desktop notification on screen.
type notifyBackend struct {
	binary string
	pkg    string // package that ships the binary, named in errors
	send   func(title, message string) error
}

var darwinBackends = []notifyBackend{
	{binary: "osascript", pkg: "macOS built-in", send: sendOsascript},
}

var linuxBackends = []notifyBackend{
	{binary: "notify-send", pkg: "libnotify", send: sendNotifySend},
	{binary: "dunstify", pkg: "dunst", send: sendDunstify},
}

// HostOS returns the kernel name of the running system.
func HostOS() string {
	info, err := host.Info()
	if err != nil || info.OS == "" {
		return runtime.GOOS
	}
	return info.OS
}

// NotifyBridge displays a desktop notification through the first available
// backend for osName. Backends are probed in order; nothing is retried.
// A missing backend or an unknown OS is an environment error: one line on
// stderr and exit code 1.
func NotifyBridge(osName string, cfg *config.Config, stderr io.Writer) int {
	title := cfg.Notify.Title
	if title == "" {
		title = defaultNotifyTitle
	}
	body := cfg.Notify.Message
	if body == "" {
		body = defaultNotifyMessage
	}
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "unknown directory"
	}
	message := fmt.Sprintf("%s in %s", body, cwd)

	var backends []notifyBackend
	switch strings.ToLower(osName) {
	case "darwin":
		backends = darwinBackends
	case "linux":
		backends = linuxBackends
	default:
		fmt.Fprintf(stderr, "notify-bridge: unsupported OS: %s\n", osName)
		return 1
	}

	for _, b := range backends {
		if _, err := exec.LookPath(b.binary); err != nil {
			continue
		}
		if err := b.send(title, message); err != nil {
			fmt.Fprintf(stderr, "notify-bridge: %s: %v\n", b.binary, err)
			return 1
		}
		return 0
	}

	missing := make([]string, len(backends))
	for i, b := range backends {
		missing[i] = fmt.Sprintf("%s (%s)", b.binary, b.pkg)
	}
	fmt.Fprintf(stderr, "notify-bridge: no notification backend found, install %s\n", strings.Join(missing, " or "))
	return 1
}

func sendOsascript(title, message string) error {
	script := fmt.Sprintf("display notification %q with title %q", message, title)
	return exec.Command("osascript", "-e", script).Run()
}

func sendNotifySend(title, message string) error {
	return exec.Command("notify-send", title, message).Run()
}

func sendDunstify(title, message string) error {
	return exec.Command("dunstify", title, message).Run()
}
