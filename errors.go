package seopost

import (
	"errors"

	"github.com/alnah/go-seopost/internal/assets"
	"github.com/alnah/go-seopost/internal/pdf"
)

// Sentinel errors for library operations.
var (
	ErrEmptyInput       = errors.New("post text cannot be empty")
	ErrInvalidFormat    = errors.New("invalid output format")
	ErrInvalidAssetPath = errors.New("invalid asset path")
	ErrInternal         = errors.New("internal error")

	// Asset errors.
	ErrStyleNotFound = assets.ErrStyleNotFound

	// PDF export errors.
	ErrBrowserConnect  = pdf.ErrBrowserConnect
	ErrPageCreate      = pdf.ErrPageCreate
	ErrPageLoad        = pdf.ErrPageLoad
	ErrPDFGeneration   = pdf.ErrPDFGeneration
	ErrInvalidPageSize = pdf.ErrInvalidPageSize
)
