package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	flag "github.com/spf13/pflag"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash       Shell = "bash"
	ShellZsh        Shell = "zsh"
	ShellFish       Shell = "fish"
	ShellPowerShell Shell = "powershell"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long   string
	Short  string
	Desc   string
	Bool   bool
	Values []string // enum values
	Glob   string   // file glob
}

// commandDef describes a command for completion.
type commandDef struct {
	Name  string
	Desc  string
	Flags []flagDef
}

// flagValues and flagGlobs enrich flags read from the FlagSets.
var (
	flagValues = map[string][]string{
		"format":    {"fragment", "styled", "document", "pdf"},
		"page-size": {"letter", "a4", "legal"},
	}
	flagGlobs = map[string]string{
		"config": "*.yaml",
		"images": "*.yaml",
		"style":  "*.css",
	}
)

// extractFlags reads flag definitions from a FlagSet.
func extractFlags(fs *flag.FlagSet) []flagDef {
	var flags []flagDef
	fs.VisitAll(func(f *flag.Flag) {
		flags = append(flags, flagDef{
			Long:   f.Name,
			Short:  f.Shorthand,
			Desc:   f.Usage,
			Bool:   f.Value.Type() == "bool",
			Values: flagValues[f.Name],
			Glob:   flagGlobs[f.Name],
		})
	})
	return flags
}

// getCommands returns the command registry for completion.
// Flags come from the command FlagSets.
func getCommands() []commandDef {
	return []commandDef{
		{Name: "convert", Desc: "Generate HTML or PDF from marker text", Flags: extractFlags(newConvertFlagSet(&convertFlags{}))},
		{Name: "validate", Desc: "Check posts for missing sections and warnings", Flags: extractFlags(newValidateFlagSet(&validateFlags{}))},
		{Name: "sections", Desc: "List the section markers and their rules", Flags: extractFlags(newSectionsFlagSet(&sectionsFlags{}))},
		{Name: "compose", Desc: "Build marker text from a form file", Flags: extractFlags(newComposeFlagSet(&composeFlags{}))},
		{Name: "serve", Desc: "Run the preview server", Flags: extractFlags(newServeFlagSet(&serveFlags{}))},
		{Name: "doctor", Desc: "Check PDF export prerequisites", Flags: extractFlags(newDoctorFlagSet(&doctorFlags{}))},
		{Name: "completion", Desc: "Generate shell completion script"},
		{Name: "version", Desc: "Show version information"},
		{Name: "help", Desc: "Show help for a command"},
	}
}

// GenerateCompletion writes the completion script for shell to w.
func GenerateCompletion(w io.Writer, shell Shell) error {
	cmds := getCommands()
	var script string
	switch shell {
	case ShellBash:
		script = bashScript(cmds)
	case ShellZsh:
		script = zshScript(cmds)
	case ShellFish:
		script = fishScript(cmds)
	case ShellPowerShell:
		script = powerShellScript(cmds)
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish, powershell)", ErrUnsupportedShell, shell)
	}
	_, err := io.WriteString(w, script)
	return err
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

func commandNames(cmds []commandDef) string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return strings.Join(names, " ")
}

func longFlags(c commandDef) string {
	var out []string
	for _, f := range c.Flags {
		out = append(out, "--"+f.Long)
		if f.Short != "" {
			out = append(out, "-"+f.Short)
		}
	}
	return strings.Join(out, " ")
}

func bashScript(cmds []commandDef) string {
	var b strings.Builder
	b.WriteString("# bash completion for seopost\n")
	b.WriteString("_seopost_completions() {\n")
	b.WriteString("    local cur prev cmd\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("    cmd=\"${COMP_WORDS[1]}\"\n\n")
	fmt.Fprintf(&b, "    if [[ ${COMP_CWORD} -eq 1 ]]; then\n        COMPREPLY=($(compgen -W \"%s\" -- \"${cur}\"))\n        return\n    fi\n\n", commandNames(cmds))
	b.WriteString("    case \"${prev}\" in\n")
	for _, name := range enumFlags() {
		fmt.Fprintf(&b, "        --%s) COMPREPLY=($(compgen -W \"%s\" -- \"${cur}\")); return ;;\n", name, strings.Join(flagValues[name], " "))
	}
	b.WriteString("    esac\n\n")
	b.WriteString("    case \"${cmd}\" in\n")
	for _, c := range cmds {
		if len(c.Flags) == 0 {
			continue
		}
		fmt.Fprintf(&b, "        %s) COMPREPLY=($(compgen -W \"%s\" -- \"${cur}\") $(compgen -f -- \"${cur}\")) ;;\n", c.Name, longFlags(c))
	}
	b.WriteString("        completion) COMPREPLY=($(compgen -W \"bash zsh fish powershell\" -- \"${cur}\")) ;;\n")
	b.WriteString("    esac\n}\n")
	b.WriteString("complete -F _seopost_completions seopost\n")
	return b.String()
}

func zshScript(cmds []commandDef) string {
	var b strings.Builder
	b.WriteString("#compdef seopost\n\n")
	b.WriteString("_seopost() {\n")
	b.WriteString("    local -a commands\n    commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        '%s:%s'\n", c.Name, zshEscape(c.Desc))
	}
	b.WriteString("    )\n\n")
	b.WriteString("    if (( CURRENT == 2 )); then\n        _describe 'command' commands\n        return\n    fi\n\n")
	b.WriteString("    case \"${words[2]}\" in\n")
	for _, c := range cmds {
		if len(c.Flags) == 0 {
			continue
		}
		fmt.Fprintf(&b, "        %s)\n            _arguments \\\n", c.Name)
		for _, f := range c.Flags {
			fmt.Fprintf(&b, "                '--%s[%s]%s' \\\n", f.Long, zshEscape(f.Desc), zshAction(f))
		}
		b.WriteString("                '*:file:_files'\n            ;;\n")
	}
	b.WriteString("        completion) _values 'shell' bash zsh fish powershell ;;\n")
	b.WriteString("    esac\n}\n\n_seopost \"$@\"\n")
	return b.String()
}

func zshAction(f flagDef) string {
	switch {
	case f.Bool:
		return ""
	case len(f.Values) > 0:
		return ":value:(" + strings.Join(f.Values, " ") + ")"
	case f.Glob != "":
		return ":file:_files -g '" + f.Glob + "'"
	default:
		return ":value:"
	}
}

func zshEscape(s string) string {
	return strings.NewReplacer("'", "'\\''", "[", "\\[", "]", "\\]", ":", "\\:").Replace(s)
}

func fishScript(cmds []commandDef) string {
	var b strings.Builder
	b.WriteString("# fish completion for seopost\n")
	b.WriteString("function __fish_seopost_needs_command\n    set -l cmd (commandline -opc)\n    test (count $cmd) -eq 1\nend\n\n")
	b.WriteString("function __fish_seopost_using_command\n    set -l cmd (commandline -opc)\n    test (count $cmd) -gt 1; and test $cmd[2] = $argv[1]\nend\n\n")
	b.WriteString("complete -c seopost -f\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "complete -c seopost -n __fish_seopost_needs_command -a %s -d '%s'\n", c.Name, fishEscape(c.Desc))
	}
	for _, c := range cmds {
		for _, f := range c.Flags {
			fmt.Fprintf(&b, "complete -c seopost -n '__fish_seopost_using_command %s' -l %s", c.Name, f.Long)
			if f.Short != "" {
				fmt.Fprintf(&b, " -s %s", f.Short)
			}
			switch {
			case len(f.Values) > 0:
				fmt.Fprintf(&b, " -x -a '%s'", strings.Join(f.Values, " "))
			case !f.Bool:
				b.WriteString(" -r -F")
			}
			fmt.Fprintf(&b, " -d '%s'\n", fishEscape(f.Desc))
		}
	}
	b.WriteString("complete -c seopost -n '__fish_seopost_using_command completion' -a 'bash zsh fish powershell'\n")
	return b.String()
}

func fishEscape(s string) string {
	return strings.ReplaceAll(s, "'", "\\'")
}

func powerShellScript(cmds []commandDef) string {
	var b strings.Builder
	b.WriteString("# powershell completion for seopost\n")
	b.WriteString("Register-ArgumentCompleter -Native -CommandName seopost -ScriptBlock {\n")
	b.WriteString("    param($wordToComplete, $commandAst, $cursorPosition)\n")
	b.WriteString("    $words = $commandAst.CommandElements | ForEach-Object { $_.ToString() }\n")
	b.WriteString("    $flags = @{\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        '%s' = @(%s)\n", c.Name, psList(longFlagList(c)))
	}
	b.WriteString("    }\n")
	fmt.Fprintf(&b, "    $commands = @(%s)\n", psList(strings.Fields(commandNames(cmds))))
	b.WriteString("    if ($words.Count -le 1 -or ($words.Count -eq 2 -and $wordToComplete)) {\n")
	b.WriteString("        $candidates = $commands\n")
	b.WriteString("    } else {\n")
	b.WriteString("        $candidates = $flags[$words[1]]\n")
	b.WriteString("    }\n")
	b.WriteString("    $candidates | Where-Object { $_ -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("        [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)\n")
	b.WriteString("    }\n}\n")
	return b.String()
}

func longFlagList(c commandDef) []string {
	out := make([]string, len(c.Flags))
	for i, f := range c.Flags {
		out[i] = "--" + f.Long
	}
	return out
}

func psList(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = "'" + s + "'"
	}
	return strings.Join(quoted, ", ")
}

// enumFlags returns the names of flags with fixed values, sorted so the
// generated script is stable.
func enumFlags() []string {
	names := make([]string, 0, len(flagValues))
	for name := range flagValues {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: seopost completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w, "  powershell  PowerShell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    eval \"$(seopost completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh (before compinit):")
	fmt.Fprintln(w, "    eval \"$(seopost completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    seopost completion fish > ~/.config/fish/completions/seopost.fish")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  PowerShell:")
	fmt.Fprintln(w, "    seopost completion powershell | Out-String | Invoke-Expression")
}
