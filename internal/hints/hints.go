// Package hints provides actionable hints for common failures and
// document problems. Hints are formatted as "\n  hint: <text>" for
// appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-seopost/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForBrowserConnect returns hints for browser connection errors.
func ForBrowserConnect() string {
	var hints []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != ""

	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use an installed Chrome")
	}
	hints = append(hints, "or choose --format document and print from a browser")

	return formatHints(hints)
}

// ForTimeout returns a hint about increasing the PDF timeout.
func ForTimeout() string {
	return format("for long posts, raise --timeout")
}

// ForConfigNotFound suggests --config or creating the user config file.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"
	for _, p := range searchedPaths {
		if strings.Contains(p, "go-seopost") {
			hint += " or create " + p
			break
		}
	}
	return format(hint)
}

// ForOutputDirectory returns hints for output write errors.
func ForOutputDirectory() string {
	return format("check the output directory exists and is writable")
}

// ForStyleNotFound lists the embedded styles.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForMissingSections suggests the markers to add for missing required ids.
func ForMissingSections(ids []string) string {
	if len(ids) == 0 {
		return ""
	}
	markers := make([]string, len(ids))
	for i, id := range ids {
		markers[i] = "{" + id + "}"
	}
	return format("add " + strings.Join(markers, ", "))
}

// ForNoMarkers explains the marker syntax.
func ForNoMarkers() string {
	return format("start each block with a marker line such as {section1}; run 'seopost sections' for the list")
}

// ForUnresolvedImages lists keywords with no URL mapping.
func ForUnresolvedImages(keywords []string) string {
	if len(keywords) == 0 {
		return ""
	}
	return format("no URL for " + strings.Join(keywords, ", ") + "; map them with --images file.yaml")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
