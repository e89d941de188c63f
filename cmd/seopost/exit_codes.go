package main

import (
	"errors"
	"os"

	seopost "github.com/alnah/go-seopost"
	"github.com/alnah/go-seopost/internal/compose"
	"github.com/alnah/go-seopost/internal/config"
	"github.com/alnah/go-seopost/internal/dateutil"
	"github.com/alnah/go-seopost/internal/fileutil"
	"github.com/alnah/go-seopost/internal/imagemap"
	"github.com/alnah/go-seopost/internal/logging"
)

// Exit codes for the seopost CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Command succeeded
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or input
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
	ExitInvalid = 5 // Document failed validation under --strict
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, ErrInvalidDocument) {
		return ExitInvalid
	}

	if errors.Is(err, seopost.ErrBrowserConnect) ||
		errors.Is(err, seopost.ErrPageCreate) ||
		errors.Is(err, seopost.ErrPageLoad) ||
		errors.Is(err, seopost.ErrPDFGeneration) {
		return ExitBrowser
	}

	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, fileutil.ErrInputTooLarge) {
		return ExitIO
	}

	if errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, seopost.ErrEmptyInput) ||
		errors.Is(err, seopost.ErrInvalidFormat) ||
		errors.Is(err, seopost.ErrInvalidPageSize) ||
		errors.Is(err, seopost.ErrStyleNotFound) ||
		errors.Is(err, seopost.ErrInvalidAssetPath) ||
		errors.Is(err, compose.ErrEmptyForm) ||
		errors.Is(err, compose.ErrUnknownSection) ||
		errors.Is(err, compose.ErrInvalidKeyword) ||
		errors.Is(err, compose.ErrMarkerInText) ||
		errors.Is(err, imagemap.ErrEmptyKeyword) ||
		errors.Is(err, imagemap.ErrUnsafeURL) ||
		errors.Is(err, dateutil.ErrInvalidDateFormat) ||
		errors.Is(err, logging.ErrUnknownLevel) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrUnsupportedShell) {
		return ExitUsage
	}

	return ExitGeneral
}
