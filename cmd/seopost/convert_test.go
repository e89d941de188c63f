package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	seopost "github.com/alnah/go-seopost"
)

func TestRunConvert_SingleFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeFile(t, filepath.Join(dir, "post.txt"), validPost())

	te := newTestEnv("")
	if code := te.run("convert", input, "-f", "fragment"); code != ExitSuccess {
		t.Fatalf("exit = %d, stderr = %s", code, te.stderr)
	}

	out := filepath.Join(dir, "post.html")
	if got := readFile(t, out); !strings.Contains(got, "<h1>Brew Better Coffee at Home</h1>") {
		t.Errorf("output missing hero: %s", got)
	}
	if !strings.Contains(te.stdout.String(), "Created "+out) {
		t.Errorf("stdout = %q", te.stdout)
	}
	if !te.pool.closed {
		t.Error("pool should be closed")
	}
	if te.pool.acquired != te.pool.released {
		t.Errorf("acquired %d, released %d", te.pool.acquired, te.pool.released)
	}
}

func TestRunConvert_Directory(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	writeFile(t, filepath.Join(src, "post10.txt"), validPost())
	writeFile(t, filepath.Join(src, "post2.txt"), validPost())
	writeFile(t, filepath.Join(src, "sub", "nested.md"), validPost())
	writeFile(t, filepath.Join(src, "cover.png"), "not a post")
	outDir := filepath.Join(t.TempDir(), "build")

	te := newTestEnv("")
	if code := te.run("convert", src, "-o", outDir, "-w", "2"); code != ExitSuccess {
		t.Fatalf("exit = %d, stderr = %s", code, te.stderr)
	}

	for _, name := range []string{"post2.html", "post10.html", filepath.Join("sub", "nested.html")} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(outDir, "cover.html")); !errors.Is(err, os.ErrNotExist) {
		t.Error("non-post files must be skipped")
	}

	stdout := te.stdout.String()
	if i, j := strings.Index(stdout, "post2.html"), strings.Index(stdout, "post10.html"); i < 0 || j < i {
		t.Errorf("results should be in natural order: %q", stdout)
	}
	if !strings.Contains(stdout, "3 succeeded, 0 failed") {
		t.Errorf("summary missing: %q", stdout)
	}
	if te.pool.size != 2 {
		t.Errorf("pool size = %d, want 2", te.pool.size)
	}
}

func TestRunConvert_Stdin(t *testing.T) {
	t.Parallel()

	te := newTestEnv(validPost())
	if code := te.run("convert", "-", "--format", "styled", "-q"); code != ExitSuccess {
		t.Fatalf("exit = %d, stderr = %s", code, te.stderr)
	}
	if !strings.Contains(te.stdout.String(), "<h1>") {
		t.Errorf("stdout should carry the HTML: %q", te.stdout)
	}
	if got := te.pool.conv.Inputs()[0].Format; got != seopost.FormatStyled {
		t.Errorf("format = %q", got)
	}
}

func TestRunConvert_StdinToFile(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "nested", "post.html")
	te := newTestEnv(validPost())
	if code := te.run("convert", "-", "-o", out); code != ExitSuccess {
		t.Fatalf("exit = %d, stderr = %s", code, te.stderr)
	}
	if !strings.Contains(readFile(t, out), "<h1>") {
		t.Error("file should carry the HTML")
	}
	if !strings.Contains(te.stdout.String(), "Created "+out) {
		t.Errorf("stdout = %q", te.stdout)
	}
}

func TestRunConvert_Strict(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := writeFile(t, filepath.Join(dir, "good.txt"), validPost())
	bad := writeFile(t, filepath.Join(dir, "bad.txt"), incompletePost)

	te := newTestEnv("")
	code := te.run("convert", good, bad, "--strict")
	if code != ExitInvalid {
		t.Fatalf("exit = %d, want %d", code, ExitInvalid)
	}

	stderr := te.stderr.String()
	if !strings.Contains(stderr, "FAILED "+bad) || !strings.Contains(stderr, "section5, section12") {
		t.Errorf("stderr = %q", stderr)
	}
	if strings.Contains(stderr, "error:") {
		t.Errorf("batch failures must be reported once: %q", stderr)
	}
	if _, err := os.Stat(filepath.Join(dir, "bad.html")); !errors.Is(err, os.ErrNotExist) {
		t.Error("invalid post must not be written")
	}
	if _, err := os.Stat(filepath.Join(dir, "good.html")); err != nil {
		t.Errorf("valid post should be written: %v", err)
	}
}

func TestRunConvert_NonStrictWarns(t *testing.T) {
	t.Parallel()

	input := writeFile(t, filepath.Join(t.TempDir(), "bad.txt"), incompletePost)
	te := newTestEnv("")
	if code := te.run("convert", input); code != ExitSuccess {
		t.Fatalf("exit = %d", code)
	}
	if !strings.Contains(te.stderr.String(), "document is incomplete") {
		t.Errorf("expected incomplete warning, stderr = %q", te.stderr)
	}
}

func TestRunConvert_SlugNames(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeFile(t, filepath.Join(dir, "draft-1.txt"), validPost())

	te := newTestEnv("")
	if code := te.run("convert", input, "--slug", "--title", "Étés à Paris"); code != ExitSuccess {
		t.Fatalf("exit = %d, stderr = %s", code, te.stderr)
	}
	if _, err := os.Stat(filepath.Join(dir, "etes-a-paris.html")); err != nil {
		t.Errorf("slug output missing: %v", err)
	}
}

func TestRunConvert_SlugCollision(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), validPost())
	writeFile(t, filepath.Join(dir, "b.txt"), strings.ReplaceAll(validPost(), "enjoy ", "savor "))

	te := newTestEnv("")
	if code := te.run("convert", dir, "--slug", "-f", "fragment", "-w", "2"); code != ExitSuccess {
		t.Fatalf("exit = %d, stderr = %s", code, te.stderr)
	}

	first := readFile(t, filepath.Join(dir, "brew-better-coffee-at-home.html"))
	second := readFile(t, filepath.Join(dir, "brew-better-coffee-at-home-2.html"))
	if first == second {
		t.Error("both outputs hold the same post")
	}
	if !strings.Contains(first+second, "savor") || !strings.Contains(first+second, "enjoy") {
		t.Error("one of the posts was lost")
	}
	if !strings.Contains(te.stdout.String(), "brew-better-coffee-at-home-2.html") {
		t.Errorf("stdout should report the renamed output: %s", te.stdout)
	}
	if !strings.Contains(te.stderr.String(), "renamed") {
		t.Errorf("stderr should warn about the rename: %s", te.stderr)
	}
}

func TestOutputClaims(t *testing.T) {
	t.Parallel()

	c := newOutputClaims()
	got := []string{
		c.claim(filepath.Join("out", "post.html")),
		c.claim(filepath.Join("out", "post.html")),
		c.claim(filepath.Join("out", ".", "post.html")),
		c.claim(filepath.Join("out", "post-2.html")),
		c.claim(filepath.Join("other", "post.html")),
	}
	want := []string{
		filepath.Join("out", "post.html"),
		filepath.Join("out", "post-2.html"),
		filepath.Join("out", "post-3.html"),
		filepath.Join("out", "post-2-2.html"),
		filepath.Join("other", "post.html"),
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("claim #%d = %q, want %q", i+1, got[i], want[i])
		}
	}
}

func TestRunConvert_PDF(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeFile(t, filepath.Join(dir, "post.txt"), validPost())

	te := newTestEnv("")
	if code := te.run("convert", input, "-f", "pdf", "-p", "a4", "-t", "45s"); code != ExitSuccess {
		t.Fatalf("exit = %d, stderr = %s", code, te.stderr)
	}
	if got := readFile(t, filepath.Join(dir, "post.pdf")); !strings.HasPrefix(got, "%PDF-") {
		t.Errorf("pdf = %q", got)
	}
	if got := te.pool.conv.Inputs()[0].PageSize; got != "a4" {
		t.Errorf("page size = %q", got)
	}
}

func TestRunConvert_PostOptions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeFile(t, filepath.Join(dir, "post.txt"), validPost())
	images := writeFile(t, filepath.Join(dir, "images.yaml"), "hero: https://cdn.example.com/hero.jpg\n")

	te := newTestEnv("")
	code := te.run("convert", input,
		"--author", "Sam", "--date", "auto", "--no-schema", "--faq-schema",
		"--images", images, "--featured", "https://cdn.example.com/cover.jpg")
	if code != ExitSuccess {
		t.Fatalf("exit = %d, stderr = %s", code, te.stderr)
	}

	opts := te.pool.conv.Inputs()[0].Options
	if opts.AuthorName != "Sam" || opts.BlogDate != "2025-03-14" {
		t.Errorf("metadata = %+v", opts)
	}
	if opts.SchemaEnabled() || !opts.IncludeFAQSchema {
		t.Errorf("schema toggles = %+v", opts)
	}
	if opts.ImageURLs["hero"] != "https://cdn.example.com/hero.jpg" {
		t.Errorf("image urls = %v", opts.ImageURLs)
	}
	if opts.FeaturedImageURL != "https://cdn.example.com/cover.jpg" {
		t.Errorf("featured = %q", opts.FeaturedImageURL)
	}
	if strings.Contains(te.stderr.String(), "unresolved images") {
		t.Errorf("hero is mapped: %q", te.stderr)
	}
}

func TestRunConvert_UnresolvedImagesWarn(t *testing.T) {
	t.Parallel()

	input := writeFile(t, filepath.Join(t.TempDir(), "post.txt"), validPost())
	te := newTestEnv("")
	if code := te.run("convert", input); code != ExitSuccess {
		t.Fatalf("exit = %d", code)
	}
	if !strings.Contains(te.stderr.String(), "unresolved images") {
		t.Errorf("stderr = %q", te.stderr)
	}
}

func TestRunConvert_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeFile(t, filepath.Join(dir, "post.txt"), validPost())
	odd := writeFile(t, filepath.Join(dir, "post.docx"), validPost())
	empty := t.TempDir()

	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantErr  string
	}{
		{"no input", []string{"convert"}, ExitIO, "no input specified"},
		{"missing file", []string{"convert", filepath.Join(dir, "nope.txt")}, ExitIO, "no such file"},
		{"empty directory", []string{"convert", empty}, ExitIO, "no post sources"},
		{"bad extension", []string{"convert", odd}, ExitUsage, ".docx"},
		{"bad format", []string{"convert", input, "-f", "docx"}, ExitUsage, "invalid output format"},
		{"bad page size", []string{"convert", input, "-f", "pdf", "-p", "a5"}, ExitUsage, "invalid page size"},
		{"too many workers", []string{"convert", input, "-w", "99"}, ExitUsage, "invalid worker count"},
		{"unknown flag", []string{"convert", input, "--watermark"}, ExitUsage, "unknown flag"},
		{"bad timeout", []string{"convert", input, "-t", "soon"}, ExitUsage, "--timeout"},
		{"bad date", []string{"convert", input, "--date", "autoX"}, ExitUsage, "invalid date format"},
		{"missing config", []string{"convert", input, "-c", filepath.Join(dir, "none.yaml")}, ExitUsage, "config file not found"},
		{"missing image map", []string{"convert", input, "--images", filepath.Join(dir, "none.yaml")}, ExitIO, "image map"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			te := newTestEnv("")
			if code := te.run(tt.args...); code != tt.wantCode {
				t.Errorf("exit = %d, want %d (stderr = %s)", code, tt.wantCode, te.stderr)
			}
			if !strings.Contains(te.stderr.String(), tt.wantErr) {
				t.Errorf("stderr %q should contain %q", te.stderr, tt.wantErr)
			}
		})
	}
}

func TestRunConvert_ConverterInitFailure(t *testing.T) {
	t.Parallel()

	input := writeFile(t, filepath.Join(t.TempDir(), "post.txt"), validPost())
	te := newTestEnv("")
	te.pool.acquireErr = fmt.Errorf("loading style %q: %w", "fancy", seopost.ErrStyleNotFound)

	if code := te.run("convert", input, "--style", "fancy"); code != ExitUsage {
		t.Fatalf("exit = %d, want %d", code, ExitUsage)
	}
	stderr := te.stderr.String()
	if !strings.Contains(stderr, "failed to initialize converter") || !strings.Contains(stderr, "hint: available:") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestRunConvert_ConvertFailure(t *testing.T) {
	t.Parallel()

	input := writeFile(t, filepath.Join(t.TempDir(), "post.txt"), validPost())
	te := newTestEnv("")
	te.pool.conv.err = fmt.Errorf("converting to PDF: %w", seopost.ErrBrowserConnect)

	if code := te.run("convert", input, "-f", "pdf"); code != ExitBrowser {
		t.Fatalf("exit = %d, want %d", code, ExitBrowser)
	}
	if !strings.Contains(te.stderr.String(), "--format document") {
		t.Errorf("browser hint missing: %q", te.stderr)
	}
}

func TestRunConvert_Help(t *testing.T) {
	t.Parallel()

	te := newTestEnv("")
	if code := te.run("convert", "--help"); code != ExitSuccess {
		t.Fatalf("exit = %d", code)
	}
	if !strings.Contains(te.stdout.String(), "Usage: seopost convert") {
		t.Errorf("stdout = %q", te.stdout)
	}
}

func TestResolveOutputPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		outputDir string
		baseDir   string
		ext       string
		want      string
	}{
		{"next to source", filepath.Join("posts", "a.txt"), "", "", "html", filepath.Join("posts", "a.html")},
		{"into directory", filepath.Join("posts", "a.txt"), "out", "", "pdf", filepath.Join("out", "a.pdf")},
		{"keeps relative dir", filepath.Join("posts", "2025", "a.md"), "out", "posts", "html", filepath.Join("out", "2025", "a.html")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := resolveOutputPath(tt.input, tt.outputDir, tt.baseDir, tt.ext)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("resolveOutputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDiscoverFiles_ExplicitOutputFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeFile(t, filepath.Join(dir, "post.txt"), "x")
	out := filepath.Join(dir, "custom.HTML")

	files, err := discoverFiles([]string{input}, out, "html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 1 || files[0].OutputPath != out {
		t.Errorf("files = %+v", files)
	}
}

func TestValidateWorkers(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, 1, seopost.MaxPoolSize} {
		if err := validateWorkers(n); err != nil {
			t.Errorf("validateWorkers(%d) = %v", n, err)
		}
	}
	for _, n := range []int{-1, seopost.MaxPoolSize + 1} {
		if err := validateWorkers(n); !errors.Is(err, ErrInvalidWorkerCount) {
			t.Errorf("validateWorkers(%d) = %v, want ErrInvalidWorkerCount", n, err)
		}
	}
}

func TestCountResults(t *testing.T) {
	t.Parallel()

	got := countResults([]ConversionResult{{}, {Err: errors.New("x")}, {}})
	if got.Succeeded != 2 || got.Failed != 1 {
		t.Errorf("countResults() = %+v", got)
	}
}
