package cli

import (
	"fmt"
	"io"
	"strings"
)

// FlagCompletion describes a CLI flag for shell completion generation.
// All shell completion functions generate from this registry, so adding
// a new flag only requires appending to flagRegistry.
type FlagCompletion struct {
	Long      string   // long flag name without "--" (e.g., "help")
	Short     string   // short flag without "-" (e.g., "h")
	Help      string   // description text
	Values    []string // suggested completion values (nil = boolean/no suggestions)
	ValueName string   // label for the value in zsh (e.g., "number", "duration")
	IsRunner  bool     // true if values come from the runner list (dynamic)
}

// flagRegistry is the central list of all CLI flags for completion generation.
var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message"},
	{Long: "version", Short: "V", Help: "Show version information"},
	{Long: "count", Short: "n", Help: "Number of units to process", ValueName: "number"},
	{Long: "delay", Help: "Artificial per-unit delay", Values: []string{"50ms", "100ms", "200ms", "500ms", "1s"}, ValueName: "duration"},
	{Long: "runner", Help: "Runner strategy to execute", IsRunner: true, ValueName: "runner"},
	{Long: "workers", Help: "Worker count for the pooled runner", Values: []string{"2", "4", "8", "10", "16"}, ValueName: "number"},
	{Long: "timeout", Help: "Maximum execution time", Values: []string{"30s", "1m", "5m", "10m"}, ValueName: "duration"},
	{Long: "metrics-addr", Help: "Prometheus metrics listen address", ValueName: "address"},
	{Long: "tui", Help: "Run with the terminal UI"},
	{Long: "no-color", Help: "Disable colorized output"},
	{Long: "quiet", Short: "q", Help: "Quiet mode for scripts"},
	{Long: "verbose", Short: "v", Help: "Verbose diagnostics"},
	{Long: "completion", Help: "Generate completion script", Values: []string{"bash", "zsh", "fish"}, ValueName: "shell"},
}

// GenerateCompletion generates a shell completion script for the specified shell.
//
// Parameters:
//   - out: The writer to output the completion script.
//   - shell: The shell type ("bash", "zsh", "fish").
//   - runners: List of available runner strategy names, including "all".
//
// Returns:
//   - error: An error if the shell is not supported.
func GenerateCompletion(out io.Writer, shell string, runners []string) error {
	switch shell {
	case "bash":
		return generateBashCompletion(out, runners)
	case "zsh":
		return generateZshCompletion(out, runners)
	case "fish":
		return generateFishCompletion(out, runners)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish)", shell)
	}
}

// generateBashCompletion generates a Bash completion script.
func generateBashCompletion(out io.Writer, runners []string) error {
	var opts []string
	for _, f := range flagRegistry {
		if f.Long != "" {
			opts = append(opts, "--"+f.Long)
		}
		if f.Short != "" {
			opts = append(opts, "-"+f.Short)
		}
	}

	var caseBody strings.Builder
	for _, f := range flagRegistry {
		if f.IsRunner {
			caseBody.WriteString(fmt.Sprintf("        --%s)\n            COMPREPLY=( $(compgen -W \"${runners}\" -- \"${cur}\") )\n            return 0\n            ;;\n", f.Long))
			continue
		}
		if len(f.Values) == 0 {
			continue
		}
		caseBody.WriteString(fmt.Sprintf("        --%s)\n            COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n            return 0\n            ;;\n",
			f.Long, strings.Join(f.Values, " ")))
	}

	script := fmt.Sprintf(`# Bash completion script for sqrace
# Add this to your ~/.bashrc or ~/.bash_completion

_sqrace_completions() {
    local cur prev opts runners
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    # Main options
    opts="%s"

    # Available runner strategies
    runners="%s"

    case "${prev}" in
%s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _sqrace_completions sqrace
`, strings.Join(opts, " "), strings.Join(runners, " "), caseBody.String())

	_, err := fmt.Fprint(out, script)
	if err != nil {
		return fmt.Errorf("completion bash generation failed: %w", err)
	}
	return nil
}

// zshArgEntry renders one _arguments entry for the given flag.
func zshArgEntry(f FlagCompletion, runners []string) string {
	spec := "--" + f.Long
	if f.Long == "" {
		spec = "-" + f.Short
	} else if f.Short != "" {
		spec = fmt.Sprintf("'(-%s --%s)'{-%s,--%s}", f.Short, f.Long, f.Short, f.Long)
		if f.ValueName != "" {
			values := strings.Join(f.Values, " ")
			if f.IsRunner {
				values = strings.Join(runners, " ")
			}
			return fmt.Sprintf("    %s'[%s]:%s:(%s)'", spec, f.Help, f.ValueName, values)
		}
		return fmt.Sprintf("    %s'[%s]'", spec, f.Help)
	}
	if f.ValueName != "" {
		values := strings.Join(f.Values, " ")
		if f.IsRunner {
			values = strings.Join(runners, " ")
		}
		return fmt.Sprintf("    '%s[%s]:%s:(%s)'", spec, f.Help, f.ValueName, values)
	}
	return fmt.Sprintf("    '%s[%s]'", spec, f.Help)
}

// generateZshCompletion generates a Zsh completion script.
func generateZshCompletion(out io.Writer, runners []string) error {
	var args []string
	for _, f := range flagRegistry {
		args = append(args, zshArgEntry(f, runners))
	}

	script := fmt.Sprintf(`#compdef sqrace

# Zsh completion script for sqrace
# Add this to your ~/.zshrc or place in $fpath

_sqrace() {
    _arguments -s \
%s
}

_sqrace "$@"
`, strings.Join(args, " \\\n"))

	_, err := fmt.Fprint(out, script)
	if err != nil {
		return fmt.Errorf("completion zsh generation failed: %w", err)
	}
	return nil
}

// generateFishCompletion generates a Fish completion script.
func generateFishCompletion(out io.Writer, runners []string) error {
	var lines []string
	for _, f := range flagRegistry {
		var parts []string
		parts = append(parts, "complete -c sqrace")
		if f.Short != "" {
			parts = append(parts, "-s "+f.Short)
		}
		if f.Long != "" {
			parts = append(parts, "-l "+f.Long)
		}
		values := f.Values
		if f.IsRunner {
			values = runners
		}
		if len(values) > 0 {
			parts = append(parts, fmt.Sprintf("-x -a \"%s\"", strings.Join(values, " ")))
		} else if f.ValueName != "" {
			parts = append(parts, "-x")
		}
		parts = append(parts, fmt.Sprintf("-d \"%s\"", f.Help))
		lines = append(lines, strings.Join(parts, " "))
	}

	script := fmt.Sprintf(`# Fish completion script for sqrace
# Place in ~/.config/fish/completions/sqrace.fish

%s
`, strings.Join(lines, "\n"))

	_, err := fmt.Fprint(out, script)
	if err != nil {
		return fmt.Errorf("completion fish generation failed: %w", err)
	}
	return nil
}
