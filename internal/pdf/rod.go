package pdf

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-seopost/internal/fileutil"
)

var _ Renderer = (*RodRenderer)(nil)

// RodRenderer prints through a go-rod controlled Chrome. The browser is
// launched on first use; rod downloads Chromium when none is installed.
// A RodRenderer is not safe for concurrent use.
type RodRenderer struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	timeout  time.Duration
}

// NewRodRenderer returns a renderer that waits at most timeout for a page
// to load when the context carries no deadline.
func NewRodRenderer(timeout time.Duration) *RodRenderer {
	return &RodRenderer{timeout: timeout}
}

// ensureBrowser lazily launches and connects to the browser.
func (r *RodRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New()

	// Pre-installed browser (Docker, CI images)
	bin := os.Getenv("ROD_BROWSER_BIN")
	if bin != "" {
		l = l.Bin(bin)
	}
	if os.Getenv("CI") == "true" || bin != "" || os.Getenv("ROD_NO_SANDBOX") == "true" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		r.kill(l)
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	r.launcher = l
	r.browser = browser
	return nil
}

// Close shuts the browser down and kills whatever Chrome left behind.
func (r *RodRenderer) Close() error {
	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	if r.launcher != nil {
		r.kill(r.launcher)
		r.launcher = nil
	}
	return err
}

func (r *RodRenderer) kill(l *launcher.Launcher) {
	if pid := l.PID(); pid > 0 {
		killProcessGroup(pid)
	}
	l.Kill()
}

// Render writes html to a temp file, loads it and prints it to PDF.
func (r *RodRenderer) Render(ctx context.Context, html string, opts *Options) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(html) == "" {
		return nil, ErrEmptyDocument
	}
	printOpts, err := printOptions(opts)
	if err != nil {
		return nil, err
	}

	path, cleanup, err := fileutil.WriteTemp(html, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{URL: "file://" + path})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer func() { _ = page.Close() }()

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stream, err := page.PDF(printOpts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}
	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}
	return data, nil
}
