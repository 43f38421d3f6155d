package hooks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/mgajewskik/claude/internal/config"
)

const formatTimeout = 30 * time.Second

// ToolRule maps a set of file extensions to a formatting procedure.
type ToolRule struct {
	Extensions []string
	Label      string
	run        func(ctx context.Context, cfg *config.Config, path string) error
}

var formatRules = []ToolRule{
	{Extensions: []string{"json"}, Label: "JSON", run: formatJSON},
	{Extensions: []string{"tf", "hcl"}, Label: "Terraform", run: formatTerraform},
	{Extensions: []string{"py"}, Label: "Python", run: formatPython},
	{Extensions: []string{"go"}, Label: "Go", run: formatGo},
	{Extensions: []string{"sh", "bash"}, Label: "Shell", run: formatShell},
}

func ruleFor(ext string) *ToolRule {
	for i := range formatRules {
		for _, e := range formatRules[i].Extensions {
			if e == ext {
				return &formatRules[i]
			}
		}
	}
	return nil
}

// toolError carries a failing tool's name and captured output into the
// diagnostic block. A binary missing from PATH fails the same way: its
// invocation error is the output.
type toolError struct {
	tool   string
	output string
}

func (e *toolError) Error() string {
	return fmt.Sprintf("%s: %s", e.tool, e.output)
}

// DiagnosticReport is the stderr block emitted when a tool fails, addressed
// to the agent that triggered the write.
type DiagnosticReport struct {
	Tool   string
	File   string
	Output string
}

func (r DiagnosticReport) Write(w io.Writer) {
	fmt.Fprintln(w, "BLOCKING: formatting failed and the file needs manual fixes")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Tool: %s\n", r.Tool)
	fmt.Fprintf(w, "  File: %s\n", r.File)
	if r.Output != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, r.Output)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Next steps:")
	fmt.Fprintln(w, "    1. Read the tool output above")
	fmt.Fprintln(w, "    2. Edit the file to resolve every reported issue")
	fmt.Fprintf(w, "    3. Run the tool on %s again to confirm it passes\n", r.File)
	fmt.Fprintln(w, "    4. Continue with the original task")
}

// FormatGate is a PostToolUse hook that formats the file named by the
// payload. A missing file_path, a path that is not a regular file, or an
// extension with no rule are all no-ops. A failing tool produces a
// DiagnosticReport on stderr and exit code 2; success prints a single
// confirmation line.
func FormatGate(input HookInput, cfg *config.Config, stdout, stderr io.Writer) int {
	path := input.FilePath()
	if path == "" {
		return 0
	}
	if !filepath.IsAbs(path) && input.Cwd != "" {
		path = filepath.Join(input.Cwd, path)
	}
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return 0
	}

	name := filepath.Base(path)
	ext := ""
	if i := strings.LastIndex(name, "."); i >= 0 {
		ext = strings.ToLower(name[i+1:])
	}
	rule := ruleFor(ext)
	if rule == nil || cfg.ExtensionDisabled(ext) {
		return 0
	}

	ctx, cancel := context.WithTimeout(context.Background(), formatTimeout)
	defer cancel()

	if err := rule.run(ctx, cfg, path); err != nil {
		report := DiagnosticReport{Tool: rule.Label, File: path}
		var te *toolError
		if errors.As(err, &te) {
			report.Tool = te.tool
			report.Output = te.output
		} else {
			report.Output = err.Error()
		}
		report.Write(stderr)
		return 2
	}

	fmt.Fprintf(stdout, "✓ %s formatted: %s\n", rule.Label, name)
	return 0
}

// runTool executes one external tool and captures everything it prints.
func runTool(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf
	err := cmd.Run()
	out := strings.TrimSpace(buf.String())
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			out = fmt.Sprintf("%s timed out after %s", name, formatTimeout)
		} else if out == "" {
			out = err.Error()
		}
		return out, err
	}
	return out, nil
}

// formatJSON reprints the file through jq into a temporary sibling and only
// renames it over the original on success, so a file that fails to parse is
// left untouched.
func formatJSON(ctx context.Context, cfg *config.Config, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return &toolError{tool: "jq", output: err.Error()}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".fmt-*")
	if err != nil {
		return &toolError{tool: "jq", output: err.Error()}
	}
	defer os.Remove(tmp.Name())

	args := append(cfg.ToolArgs("jq", []string{"."}), path)
	cmd := exec.CommandContext(ctx, "jq", args...)
	var errBuf bytes.Buffer
	cmd.Stdout = tmp
	cmd.Stderr = &errBuf
	runErr := cmd.Run()
	closeErr := tmp.Close()
	if runErr != nil {
		out := strings.TrimSpace(errBuf.String())
		if out == "" {
			out = runErr.Error()
		}
		return &toolError{tool: "jq", output: out}
	}
	if closeErr != nil {
		return &toolError{tool: "jq", output: closeErr.Error()}
	}
	if err := os.Chmod(tmp.Name(), info.Mode().Perm()); err != nil {
		return &toolError{tool: "jq", output: err.Error()}
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return &toolError{tool: "jq", output: err.Error()}
	}
	return nil
}

func formatTerraform(ctx context.Context, cfg *config.Config, path string) error {
	args := append(cfg.ToolArgs("terraform", []string{"fmt"}), path)
	if out, err := runTool(ctx, "terraform", args...); err != nil {
		return &toolError{tool: "terraform fmt", output: out}
	}
	return nil
}

func formatGo(ctx context.Context, cfg *config.Config, path string) error {
	args := append(cfg.ToolArgs("goimports", []string{"-w"}), path)
	if out, err := runTool(ctx, "goimports", args...); err != nil {
		return &toolError{tool: "goimports", output: out}
	}
	return nil
}

// formatShell runs shfmt in place, then shellcheck read-only when it is on
// PATH. A system without shellcheck is not an error.
func formatShell(ctx context.Context, cfg *config.Config, path string) error {
	args := append(cfg.ToolArgs("shfmt", []string{"-w"}), path)
	if out, err := runTool(ctx, "shfmt", args...); err != nil {
		return &toolError{tool: "shfmt", output: out}
	}
	if _, err := exec.LookPath("shellcheck"); err != nil {
		return nil
	}
	args = append(cfg.ToolArgs("shellcheck", nil), path)
	if out, err := runTool(ctx, "shellcheck", args...); err != nil {
		return &toolError{tool: "shellcheck", output: out}
	}
	return nil
}

// formatPython runs black, then a ruff autofix pass whose exit status is
// ignored: whatever ruff could not fix shows up in the read-only re-check,
// and only those remaining diagnostics are reported.
func formatPython(ctx context.Context, cfg *config.Config, path string) error {
	args := append(cfg.ToolArgs("black", []string{"--quiet"}), path)
	if out, err := runTool(ctx, "black", args...); err != nil {
		return &toolError{tool: "black", output: out}
	}

	args = append(cfg.ToolArgs("ruff", []string{"check", "--fix"}), path)
	_, _ = runTool(ctx, "ruff", args...)

	cmd := exec.CommandContext(ctx, "ruff", "check", "--output-format=json", path)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()

	if diags := gjson.ParseBytes(stdout.Bytes()); diags.IsArray() && len(diags.Array()) > 0 {
		return &toolError{tool: "ruff", output: ruffDiagnostics(diags)}
	}
	if err != nil {
		out := strings.TrimSpace(stderr.String())
		if out == "" {
			out = err.Error()
		}
		return &toolError{tool: "ruff", output: out}
	}
	return nil
}

// ruffDiagnostics renders ruff's JSON output one diagnostic per line.
func ruffDiagnostics(diags gjson.Result) string {
	var b strings.Builder
	for _, d := range diags.Array() {
		fmt.Fprintf(&b, "%s:%d:%d %s %s\n",
			d.Get("filename").String(),
			d.Get("location.row").Int(),
			d.Get("location.column").Int(),
			d.Get("code").String(),
			d.Get("message").String())
	}
	return strings.TrimSpace(b.String())
}
