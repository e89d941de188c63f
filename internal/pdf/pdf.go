// Package pdf prints standalone blog post documents to PDF with headless
// Chrome.
package pdf

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-rod/rod/lib/proto"
)

// Sentinel errors for PDF export.
var (
	ErrBrowserConnect  = errors.New("failed to connect to browser")
	ErrPageCreate      = errors.New("failed to create browser page")
	ErrPageLoad        = errors.New("failed to load page")
	ErrPDFGeneration   = errors.New("PDF generation failed")
	ErrInvalidPageSize = errors.New("invalid page size")
	ErrEmptyDocument   = errors.New("empty HTML document")
)

// Page sizes accepted in Options.PageSize.
const (
	PageLetter = "letter"
	PageA4     = "a4"
	PageLegal  = "legal"
)

// DefaultPageSize is used when Options.PageSize is empty.
const DefaultPageSize = PageLetter

const marginInches = 0.5

// paperSizes maps page size names to width and height in inches.
var paperSizes = map[string][2]float64{
	PageLetter: {8.5, 11},
	PageA4:     {8.27, 11.69},
	PageLegal:  {8.5, 14},
}

// Options controls PDF printing.
type Options struct {
	PageSize string
}

// Renderer prints an HTML document to PDF bytes.
type Renderer interface {
	Render(ctx context.Context, html string, opts *Options) ([]byte, error)
	Close() error
}

// PaperSize returns the width and height in inches of a page size name.
// Names are case-insensitive and empty means DefaultPageSize.
func PaperSize(name string) (width, height float64, err error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = DefaultPageSize
	}
	size, ok := paperSizes[name]
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q (want letter, a4 or legal)", ErrInvalidPageSize, name)
	}
	return size[0], size[1], nil
}

// IsPageSize reports whether name is a supported page size.
func IsPageSize(name string) bool {
	_, _, err := PaperSize(name)
	return err == nil
}

// printOptions builds the Chrome print parameters for opts.
func printOptions(opts *Options) (*proto.PagePrintToPDF, error) {
	var size string
	if opts != nil {
		size = opts.PageSize
	}
	width, height, err := PaperSize(size)
	if err != nil {
		return nil, err
	}
	return &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(width),
		PaperHeight:     floatPtr(height),
		MarginTop:       floatPtr(marginInches),
		MarginBottom:    floatPtr(marginInches),
		MarginLeft:      floatPtr(marginInches),
		MarginRight:     floatPtr(marginInches),
		PrintBackground: true,
	}, nil
}

func floatPtr(v float64) *float64 {
	return &v
}
