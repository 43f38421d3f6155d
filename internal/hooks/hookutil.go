package hooks

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tidwall/gjson"
)

// HookInput is the JSON payload piped to hooks via stdin.
// tool_input and tool_response are kept raw: hooks extract the one or two
// fields they care about and pass everything else through unread.
type HookInput struct {
	SessionID      string          `json:"session_id"`
	TranscriptPath string          `json:"transcript_path"`
	Cwd            string          `json:"cwd"`
	HookEventName  string          `json:"hook_event_name"`
	ToolName       string          `json:"tool_name"`
	ToolInput      json.RawMessage `json:"tool_input"`
	ToolResponse   json.RawMessage `json:"tool_response"`
}

// FilePath extracts the "file_path" field from tool_input (Write/Edit tools).
func (h *HookInput) FilePath() string {
	return gjson.GetBytes(h.ToolInput, "file_path").String()
}

// Command extracts the "command" field from tool_input (Bash tool).
func (h *HookInput) Command() string {
	return gjson.GetBytes(h.ToolInput, "command").String()
}

// ReadInput reads and parses HookInput from the given reader.
func ReadInput(r io.Reader) (HookInput, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return HookInput{}, fmt.Errorf("reading stdin: %w", err)
	}
	var input HookInput
	if err := json.Unmarshal(data, &input); err != nil {
		return HookInput{}, fmt.Errorf("parsing input: %w", err)
	}
	return input, nil
}

// IsHookDisabled returns true if name is listed in HOOK_DISABLED (comma-separated, trimmed).
func IsHookDisabled(name string) bool {
	v := os.Getenv("HOOK_DISABLED")
	if v == "" {
		return false
	}
	for _, s := range strings.Split(v, ",") {
		if strings.TrimSpace(s) == name {
			return true
		}
	}
	return false
}

// Run is the standard entrypoint for a hook binary that consumes a stdin
// payload. It reads stdin, calls the hook function, and exits with its code.
// Unreadable or malformed input is a no-op, never an error.
func Run(name string, hookFn func(HookInput) int) {
	if IsHookDisabled(name) {
		os.Exit(0)
	}
	input, err := ReadInput(os.Stdin)
	if err != nil {
		os.Exit(0)
	}
	os.Exit(hookFn(input))
}
