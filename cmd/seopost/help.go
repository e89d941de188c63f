package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: seopost <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert     Generate HTML or PDF from marker text")
	fmt.Fprintln(w, "  validate    Check posts for missing sections and warnings")
	fmt.Fprintln(w, "  sections    List the section markers and their rules")
	fmt.Fprintln(w, "  compose     Build marker text from a form file")
	fmt.Fprintln(w, "  serve       Run the preview server")
	fmt.Fprintln(w, "  doctor      Check PDF export prerequisites")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'seopost help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: seopost convert <input>... [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate HTML or PDF from marker text ({section1} ... {section12}).")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Post file (.txt, .md, .post), directory, or - for stdin")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory (stdin: default stdout)")
	fmt.Fprintln(w, "  -f, --format <s>          fragment, styled, document, pdf (default: document)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --slug                Name outputs after the post slug")
	fmt.Fprintln(w, "      --strict              Fail posts with missing sections or warnings")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Post:")
	fmt.Fprintln(w, "      --title <s>           Blog title (default: hero text)")
	fmt.Fprintln(w, "      --author <s>          Schema author name")
	fmt.Fprintln(w, "      --date <s>            Date: \"auto\", \"auto:FORMAT\", or literal")
	fmt.Fprintln(w, "                            Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D")
	fmt.Fprintln(w, "                            Presets (case-insensitive): iso, european, us, long")
	fmt.Fprintln(w, "      --featured <url>      Featured image URL")
	fmt.Fprintln(w, "      --images <file>       Image map YAML (keyword: url), repeatable")
	fmt.Fprintln(w, "      --no-schema           Omit the BlogPosting JSON-LD block")
	fmt.Fprintln(w, "      --no-images           Omit image placeholders")
	fmt.Fprintln(w, "      --faq-schema          Append a FAQPage JSON-LD block")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Style:")
	fmt.Fprintln(w, "      --style <name|path>   Style name or CSS file (default: default)")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom asset directory")
	fmt.Fprintln(w, "      --no-style            Disable the stylesheet")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "PDF:")
	fmt.Fprintln(w, "  -p, --page-size <s>       letter, a4, legal")
	fmt.Fprintln(w, "  -t, --timeout <d>         Page load timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output control:")
	fmt.Fprintln(w, "  -q, --quiet               Only print errors")
	fmt.Fprintln(w, "  -v, --verbose             Print debug output")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  seopost convert post.txt")
	fmt.Fprintln(w, "  seopost convert posts/ -o build/ --images images.yaml")
	fmt.Fprintln(w, "  cat post.txt | seopost convert - -f fragment")
	fmt.Fprintln(w, "  seopost convert post.txt -f pdf -p a4")
	fmt.Fprintln(w)
	printEnvVars(w)
}

// printValidateUsage prints usage for the validate command.
func printValidateUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: seopost validate <input>... [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Report missing required sections, word and item limits, and image gaps.")
	fmt.Fprintln(w, "Exits 5 when any post is invalid.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --images <file>       Check {img} keywords against an image map")
	fmt.Fprintln(w, "      --order               Also check section order")
	fmt.Fprintln(w, "      --json                Print reports as JSON")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only print invalid posts")
}

// printSectionsUsage prints usage for the sections command.
func printSectionsUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: seopost sections [--yaml]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List the twelve section markers with their wrappers and limits.")
}

// printComposeUsage prints usage for the compose command.
func printComposeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: seopost compose <form.yaml|-> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Build marker text from a form file:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  title: Brew Better Coffee")
	fmt.Fprintln(w, "  sections:")
	fmt.Fprintln(w, "    section1:")
	fmt.Fprintln(w, "      text: Brew Better Coffee at Home")
	fmt.Fprintln(w, "      images: [hero]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file (default: stdout)")
	fmt.Fprintln(w, "      --check               Validate the composed post on stderr")
}

// printServeUsage prints usage for the serve command.
func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: seopost serve [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run the preview server:")
	fmt.Fprintln(w, "  POST /api/parse, /api/generate, /api/compose")
	fmt.Fprintln(w, "  GET  /api/sections, /health, /metrics")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -a, --addr <host:port>    Listen address (default: 127.0.0.1:8080)")
	fmt.Fprintln(w, "      --strict              Answer 422 for invalid documents")
	fmt.Fprintln(w, "      --cors-origin <url>   Allowed CORS origin, repeatable")
	fmt.Fprintln(w, "      --style <name|path>   Style for styled and document output")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: seopost doctor [--json] [-c config]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check Chrome for PDF export, container settings, temp directory and config.")
}

func printEnvVars(w io.Writer) {
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  SEOPOST_CONFIG, SEOPOST_STYLE, SEOPOST_TIMEOUT, SEOPOST_OUTPUT_DIR,")
	fmt.Fprintln(w, "  SEOPOST_AUTHOR_NAME, SEOPOST_BLOG_DATE, SEOPOST_ADDR, SEOPOST_WORKERS,")
	fmt.Fprintln(w, "  SEOPOST_LOG_LEVEL, ROD_BROWSER_BIN, ROD_NO_SANDBOX")
}

// runHelp prints help for a command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	usage := map[string]func(io.Writer){
		"convert":    printConvertUsage,
		"validate":   printValidateUsage,
		"sections":   printSectionsUsage,
		"compose":    printComposeUsage,
		"serve":      printServeUsage,
		"doctor":     printDoctorUsage,
		"completion": printCompletionUsage,
	}
	switch args[0] {
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: seopost version")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: seopost help [command]")
	default:
		show, ok := usage[args[0]]
		if !ok {
			fmt.Fprintf(env.Stderr, "Unknown command: %s\n\n", args[0])
			printUsage(env.Stderr)
			return ExitUsage
		}
		show(env.Stdout)
	}
	return ExitSuccess
}
