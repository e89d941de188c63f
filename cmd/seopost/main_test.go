package main

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	seopost "github.com/alnah/go-seopost"
	"github.com/alnah/go-seopost/internal/config"
)

func TestRun_Dispatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{name: "no args", args: nil, wantCode: ExitUsage, wantStderr: "Usage: seopost <command>"},
		{name: "version", args: []string{"version"}, wantCode: ExitSuccess, wantStdout: "seopost dev\n"},
		{name: "version flag", args: []string{"--version"}, wantCode: ExitSuccess, wantStdout: "seopost dev\n"},
		{name: "unknown command", args: []string{"publish"}, wantCode: ExitUsage, wantStderr: "Unknown command: publish"},
		{name: "help", args: []string{"help"}, wantCode: ExitSuccess, wantStdout: "Commands:"},
		{name: "help flag", args: []string{"--help"}, wantCode: ExitSuccess, wantStdout: "Commands:"},
		{name: "help convert", args: []string{"help", "convert"}, wantCode: ExitSuccess, wantStdout: "Usage: seopost convert"},
		{name: "help serve", args: []string{"help", "serve"}, wantCode: ExitSuccess, wantStdout: "Usage: seopost serve"},
		{name: "help help", args: []string{"help", "help"}, wantCode: ExitSuccess, wantStdout: "Usage: seopost help [command]"},
		{name: "help unknown", args: []string{"help", "publish"}, wantCode: ExitUsage, wantStderr: "Unknown command: publish"},
		{name: "command help flag", args: []string{"validate", "--help"}, wantCode: ExitSuccess, wantStdout: "Usage: seopost validate"},
		{name: "bad flag prints error", args: []string{"sections", "--bogus"}, wantCode: ExitUsage, wantStderr: "error: invalid usage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			te := newTestEnv("")
			if code := te.run(tt.args...); code != tt.wantCode {
				t.Errorf("exit = %d, want %d (stderr: %s)", code, tt.wantCode, te.stderr)
			}
			if tt.wantStdout != "" && !strings.Contains(te.stdout.String(), tt.wantStdout) {
				t.Errorf("stdout = %q, want %q", te.stdout, tt.wantStdout)
			}
			if tt.wantStderr != "" && !strings.Contains(te.stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want %q", te.stderr, tt.wantStderr)
			}
		})
	}
}

func TestHintFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "no hint", err: errors.New("boom"), want: ""},
		{name: "browser", err: fmt.Errorf("%w: launch", seopost.ErrBrowserConnect), want: "--format document"},
		{name: "style", err: fmt.Errorf("%w: fancy", seopost.ErrStyleNotFound), want: "available:"},
		{name: "write", err: fmt.Errorf("%w: denied", ErrWriteOutput), want: "hint:"},
		{
			name: "config paths",
			err:  fmt.Errorf("%w: tried blog.yaml, /home/sam/.config/go-seopost/blog.yaml", config.ErrConfigNotFound),
			want: "create /home/sam/.config/go-seopost/blog.yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := hintFor(tt.err)
			if tt.want == "" {
				if got != "" {
					t.Errorf("hintFor() = %q, want none", got)
				}
				return
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("hintFor() = %q, want it to contain %q", got, tt.want)
			}
		})
	}
}

func TestSearchedPaths(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("%w: tried a.yaml, a.yml, /etc/go-seopost/a.yaml", config.ErrConfigNotFound)
	got := searchedPaths(err)
	if strings.Join(got, "|") != "a.yaml|a.yml|/etc/go-seopost/a.yaml" {
		t.Errorf("searchedPaths() = %v", got)
	}
	if got := searchedPaths(config.ErrConfigNotFound); got != nil {
		t.Errorf("searchedPaths() without list = %v, want nil", got)
	}
}

func TestHasVerbose(t *testing.T) {
	t.Parallel()

	tests := []struct {
		args []string
		want bool
	}{
		{args: []string{"convert", "-v", "post.txt"}, want: true},
		{args: []string{"validate", "--verbose"}, want: true},
		{args: []string{"convert", "-vq"}, want: false},
		{args: nil, want: false},
	}
	for _, tt := range tests {
		if got := hasVerbose(tt.args); got != tt.want {
			t.Errorf("hasVerbose(%v) = %v, want %v", tt.args, got, tt.want)
		}
	}
}

func TestReportedError(t *testing.T) {
	t.Parallel()

	err := reported(fmt.Errorf("%w: disk full", ErrWriteOutput))
	if !errors.Is(err, ErrWriteOutput) {
		t.Error("reported error should unwrap to the cause")
	}
	if err.Error() != "failed to write output file: disk full" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestPoolAdapter(t *testing.T) {
	t.Parallel()

	pool := DefaultEnv().NewPool(3)
	if pool.Size() != 3 {
		t.Errorf("Size() = %d, want 3", pool.Size())
	}

	defer func() {
		if recover() == nil {
			t.Error("Release of a foreign converter should panic")
		}
		if err := pool.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	}()
	pool.Release(&fakeConverter{})
}
