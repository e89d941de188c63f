package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	seopost "github.com/alnah/go-seopost"
)

var fixedNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

// validPost satisfies every required section and word limit.
func validPost() string {
	return "{section1}\nBrew Better Coffee at Home\n{img} hero\n\n" +
		"{section2}\n" + strings.Repeat("coffee ", 50) + "\n\n" +
		"{section5}\n" + strings.Repeat("brewing ", 150) + "\n\n" +
		"{section12}\n" + strings.Repeat("enjoy ", 40) + "\n"
}

// incompletePost lacks the main content and conclusion.
const incompletePost = "{section1}\nBrew Better Coffee at Home\n\n{section2}\nShort intro.\n"

// fakeConverter runs the real parser and fragment generator and fakes PDFs.
type fakeConverter struct {
	mu     sync.Mutex
	inputs []seopost.Input
	err    error
}

func (c *fakeConverter) Convert(_ context.Context, in seopost.Input) (*seopost.Result, error) {
	c.mu.Lock()
	c.inputs = append(c.inputs, in)
	c.mu.Unlock()

	if c.err != nil {
		return nil, c.err
	}
	if strings.TrimSpace(in.Text) == "" {
		return nil, seopost.ErrEmptyInput
	}
	doc := seopost.ParseDocument(in.Text)
	res := &seopost.Result{
		Document:      doc,
		Slug:          seopost.Slug(doc, in.Options),
		ImageKeywords: doc.ImageKeywords(),
	}
	if in.Format == seopost.FormatPDF {
		res.PDF = []byte("%PDF-1.7 fake")
		return res, nil
	}
	res.HTML = seopost.GenerateHTML(doc, in.Options)
	return res, nil
}

func (c *fakeConverter) Inputs() []seopost.Input {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]seopost.Input(nil), c.inputs...)
}

// fakePool hands out one shared fakeConverter.
type fakePool struct {
	conv       *fakeConverter
	size       int
	opts       int
	acquireErr error

	mu       sync.Mutex
	acquired int
	released int
	closed   bool
}

func (p *fakePool) Acquire() (Converter, error) {
	if p.acquireErr != nil {
		return nil, p.acquireErr
	}
	p.mu.Lock()
	p.acquired++
	p.mu.Unlock()
	return p.conv, nil
}

func (p *fakePool) Release(Converter) {
	p.mu.Lock()
	p.released++
	p.mu.Unlock()
}

func (p *fakePool) Size() int { return p.size }

func (p *fakePool) Close() error {
	p.closed = true
	return nil
}

// testEnv bundles an Environment with its captured output.
type testEnv struct {
	*Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	pool   *fakePool
}

func newTestEnv(stdin string) *testEnv {
	te := &testEnv{
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		pool:   &fakePool{conv: &fakeConverter{}},
	}
	env := DefaultEnv()
	env.Now = func() time.Time { return fixedNow }
	env.Stdin = strings.NewReader(stdin)
	env.Stdout = te.stdout
	env.Stderr = te.stderr
	env.NewPool = func(size int, opts ...seopost.Option) Pool {
		te.pool.size = size
		te.pool.opts = len(opts)
		return te.pool
	}
	te.Environment = env
	return te
}

func (te *testEnv) run(args ...string) int {
	return run(context.Background(), args, te.Environment)
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path) // #nosec G304 -- test path
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}
