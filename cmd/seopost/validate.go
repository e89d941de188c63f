package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"

	seopost "github.com/alnah/go-seopost"
	"github.com/alnah/go-seopost/internal/fileutil"
	"github.com/alnah/go-seopost/internal/hints"
	"github.com/alnah/go-seopost/internal/imagemap"
)

// validationReport is the outcome of checking one post.
type validationReport struct {
	File          string           `json:"file"`
	Valid         bool             `json:"valid"`
	Metadata      seopost.Metadata `json:"metadata"`
	OrderWarnings []string         `json:"orderWarnings,omitempty"`
	Unresolved    []string         `json:"unresolvedImages,omitempty"`
}

// runValidate parses posts and reports missing sections and warnings.
// Any invalid post yields ErrInvalidDocument.
func runValidate(_ context.Context, args []string, env *Environment) error {
	f, inputs, err := parseValidateFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		printValidateUsage(env.Stdout)
		return nil
	}
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return fmt.Errorf("%w: run 'seopost help validate'", ErrNoInput)
	}

	s, err := loadSettings(f.common, env)
	if err != nil {
		return err
	}
	defer func() { _ = s.logger.Sync() }()

	images, checkImages, err := validationImages(s, f)
	if err != nil {
		return err
	}

	paths := inputs
	if len(inputs) != 1 || inputs[0] != "-" {
		files, err := discoverFiles(inputs, "", "html")
		if err != nil {
			return err
		}
		paths = make([]string, 0, len(files))
		for _, file := range files {
			paths = append(paths, file.InputPath)
		}
	}

	reports := make([]validationReport, 0, len(paths))
	for _, path := range paths {
		text, err := fileutil.ReadInput(path, env.Stdin)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrReadInput, err)
		}
		reports = append(reports, validatePost(path, text, f.order, images, checkImages))
	}

	if f.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(reports); err != nil {
			return err
		}
	} else {
		printReports(env.Stdout, reports, f.common.quiet)
	}

	var invalid int
	for _, r := range reports {
		if !r.Valid {
			invalid++
		}
	}
	if invalid > 0 {
		return reported(fmt.Errorf("%w: %d of %d posts", ErrInvalidDocument, invalid, len(reports)))
	}
	return nil
}

// validationImages merges the configured and flagged image maps. The bool
// reports whether any map was given, so unconfigured runs skip the check.
func validationImages(s *settings, f *validateFlags) (imagemap.Map, bool, error) {
	fromConfig, err := imagemap.Load(s.cfg.Images.Files...)
	if err != nil {
		return nil, false, err
	}
	fromFlags, err := imagemap.Load(f.images...)
	if err != nil {
		return nil, false, err
	}
	given := len(f.images) > 0 || len(s.cfg.Images.Files) > 0 || len(s.cfg.Images.URLs) > 0
	return imagemap.Merge(fromConfig, s.cfg.Images.URLs, fromFlags), given, nil
}

func validatePost(path, text string, order bool, images imagemap.Map, checkImages bool) validationReport {
	doc := seopost.ParseDocument(text)
	r := validationReport{File: path, Metadata: doc.Metadata}
	if order {
		r.OrderWarnings = seopost.ValidateSectionOrder(doc)
	}
	if checkImages {
		r.Unresolved = imagemap.Unresolved(doc.ImageKeywords(), images)
	}
	r.Valid = doc.Metadata.IsValid && len(r.OrderWarnings) == 0
	return r
}

func printReports(w io.Writer, reports []validationReport, quiet bool) {
	var valid int
	for _, r := range reports {
		md := r.Metadata
		if r.Valid {
			valid++
		}
		if r.Valid && quiet {
			continue
		}

		status := "valid"
		if !r.Valid {
			status = "invalid"
		}
		fmt.Fprintf(w, "%s: %s (%d sections, %d words)\n", r.File, status, md.TotalSections, md.TotalWords)

		if len(md.MissingRequired) > 0 {
			fmt.Fprintf(w, "  missing: %s%s\n", strings.Join(md.MissingRequired, ", "), hints.ForMissingSections(md.MissingRequired))
		}
		for _, warning := range md.Warnings {
			fmt.Fprintf(w, "  warning: %s\n", warning)
		}
		if md.TotalSections == 0 {
			fmt.Fprintln(w, strings.TrimPrefix(hints.ForNoMarkers(), "\n"))
		}
		for _, warning := range r.OrderWarnings {
			fmt.Fprintf(w, "  order: %s\n", warning)
		}
		if len(r.Unresolved) > 0 {
			fmt.Fprintf(w, "  images: %d unresolved%s\n", len(r.Unresolved), hints.ForUnresolvedImages(r.Unresolved))
		}
	}

	if !quiet && len(reports) > 1 {
		fmt.Fprintf(w, "\n%d valid, %d invalid\n", valid, len(reports)-valid)
	}
}
