package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// ErrUsage marks invalid command-line usage.
var ErrUsage = errors.New("invalid usage")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// postFlags holds blog metadata and generation toggles.
type postFlags struct {
	title     string
	author    string
	date      string
	featured  string
	images    []string
	noSchema  bool
	noImages  bool
	faqSchema bool
}

// assetFlags holds stylesheet flags.
type assetFlags struct {
	style     string
	assetPath string
	noStyle   bool
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common    commonFlags
	post      postFlags
	assets    assetFlags
	output    string
	workers   int
	format    string
	pageSize  string
	timeout   string
	strict    bool
	slugNames bool
}

// validateFlags holds flags for the validate command.
type validateFlags struct {
	common commonFlags
	images []string
	order  bool
	json   bool
}

// sectionsFlags holds flags for the sections command.
type sectionsFlags struct {
	yaml bool
}

// composeFlags holds flags for the compose command.
type composeFlags struct {
	common commonFlags
	output string
	check  bool
}

// serveFlags holds flags for the serve command.
type serveFlags struct {
	common  commonFlags
	post    postFlags
	assets  assetFlags
	addr    string
	strict  bool
	origins []string
}

// addCommonFlags adds config and verbosity flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only print errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "print debug output")
}

// addPostFlags adds blog metadata flags to a FlagSet.
func addPostFlags(fs *flag.FlagSet, f *postFlags) {
	fs.StringVar(&f.title, "title", "", "blog title for the schema and document title")
	fs.StringVar(&f.author, "author", "", "schema author name")
	fs.StringVar(&f.date, "date", "", "blog date: \"auto\", \"auto:FORMAT\", or literal")
	fs.StringVar(&f.featured, "featured", "", "featured image URL")
	fs.StringSliceVar(&f.images, "images", nil, "image map YAML file (repeatable)")
	fs.BoolVar(&f.noSchema, "no-schema", false, "omit the BlogPosting JSON-LD block")
	fs.BoolVar(&f.noImages, "no-images", false, "omit image placeholders")
	fs.BoolVar(&f.faqSchema, "faq-schema", false, "append a FAQPage JSON-LD block")
}

// addAssetFlags adds stylesheet flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.style, "style", "", "style name or CSS file path")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.BoolVar(&f.noStyle, "no-style", false, "disable the stylesheet")
}

func newConvertFlagSet(f *convertFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF page load timeout (e.g., 30s, 2m)")
	fs.StringVarP(&f.format, "format", "f", "", "output format: fragment, styled, document, pdf")
	fs.StringVarP(&f.pageSize, "page-size", "p", "", "PDF page size: letter, a4, legal")
	fs.BoolVar(&f.strict, "strict", false, "fail posts with missing sections or warnings")
	fs.BoolVar(&f.slugNames, "slug", false, "name outputs after the post slug")
	addCommonFlags(fs, &f.common)
	addPostFlags(fs, &f.post)
	addAssetFlags(fs, &f.assets)
	return fs
}

func newValidateFlagSet(f *validateFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	fs.StringSliceVar(&f.images, "images", nil, "image map YAML file (repeatable)")
	fs.BoolVar(&f.order, "order", false, "also check section order")
	fs.BoolVar(&f.json, "json", false, "print reports as JSON")
	addCommonFlags(fs, &f.common)
	return fs
}

func newSectionsFlagSet(f *sectionsFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("sections", flag.ContinueOnError)
	fs.BoolVar(&f.yaml, "yaml", false, "print the rule table as YAML")
	return fs
}

func newComposeFlagSet(f *composeFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("compose", flag.ContinueOnError)
	fs.StringVarP(&f.output, "output", "o", "", "output file (default: stdout)")
	fs.BoolVar(&f.check, "check", false, "validate the composed post")
	addCommonFlags(fs, &f.common)
	return fs
}

func newServeFlagSet(f *serveFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.StringVarP(&f.addr, "addr", "a", "", "listen address (default: 127.0.0.1:8080)")
	fs.BoolVar(&f.strict, "strict", false, "answer 422 for invalid documents")
	fs.StringSliceVar(&f.origins, "cors-origin", nil, "allowed CORS origin (repeatable)")
	addCommonFlags(fs, &f.common)
	addPostFlags(fs, &f.post)
	addAssetFlags(fs, &f.assets)
	return fs
}

// parseFlagSet parses args, returning flag.ErrHelp unwrapped and other
// failures as ErrUsage.
func parseFlagSet(fs *flag.FlagSet, args []string) ([]string, error) {
	fs.Usage = func() {}
	fs.SetOutput(io.Discard)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return fs.Args(), nil
}

func parseConvertFlags(args []string) (*convertFlags, []string, error) {
	f := &convertFlags{}
	rest, err := parseFlagSet(newConvertFlagSet(f), args)
	if err != nil {
		return nil, nil, err
	}
	return f, rest, nil
}

func parseValidateFlags(args []string) (*validateFlags, []string, error) {
	f := &validateFlags{}
	rest, err := parseFlagSet(newValidateFlagSet(f), args)
	if err != nil {
		return nil, nil, err
	}
	return f, rest, nil
}

func parseSectionsFlags(args []string) (*sectionsFlags, []string, error) {
	f := &sectionsFlags{}
	rest, err := parseFlagSet(newSectionsFlagSet(f), args)
	if err != nil {
		return nil, nil, err
	}
	return f, rest, nil
}

func parseComposeFlags(args []string) (*composeFlags, []string, error) {
	f := &composeFlags{}
	rest, err := parseFlagSet(newComposeFlagSet(f), args)
	if err != nil {
		return nil, nil, err
	}
	return f, rest, nil
}

func parseServeFlags(args []string) (*serveFlags, []string, error) {
	f := &serveFlags{}
	rest, err := parseFlagSet(newServeFlagSet(f), args)
	if err != nil {
		return nil, nil, err
	}
	return f, rest, nil
}
