package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	seopost "github.com/alnah/go-seopost"
	"github.com/alnah/go-seopost/internal/fileutil"
	"github.com/alnah/go-seopost/internal/imagemap"
)

// Sentinel errors for batch operations.
var (
	ErrNoInput         = errors.New("no input specified")
	ErrReadInput       = errors.New("failed to read post source")
	ErrWriteOutput     = errors.New("failed to write output file")
	ErrConverterInit   = errors.New("failed to initialize converter")
	ErrInvalidDocument = errors.New("document is invalid")
)

// conversionParams holds the per-run settings shared by every file.
type conversionParams struct {
	format    string
	pageSize  string
	options   seopost.Options
	strict    bool
	slugNames bool
	reader    func(path string) (string, error)
	logger    *zap.Logger
}

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Metadata   *seopost.Metadata
	Err        error
	Duration   time.Duration
}

// convertBatch processes files concurrently using the converter pool.
// Results keep the order of files.
func convertBatch(ctx context.Context, pool Pool, files []FileToConvert, params *conversionParams) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := min(pool.Size(), len(files))

	results := make([]ConversionResult, len(files))
	claims := newOutputClaims()
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			conv, err := pool.Acquire()
			if err != nil {
				for idx := range jobs {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       fmt.Errorf("%w: %w", ErrConverterInit, err),
					}
				}
				return
			}
			defer pool.Release(conv)

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = convertFile(ctx, conv, files[idx], params, claims)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertFile converts one source and writes the output atomically.
func convertFile(ctx context.Context, conv Converter, f FileToConvert, params *conversionParams, claims *outputClaims) ConversionResult {
	start := time.Now()
	result := ConversionResult{InputPath: f.InputPath, OutputPath: f.OutputPath}
	finish := func(err error) ConversionResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	text, err := params.reader(f.InputPath)
	if err != nil {
		return finish(fmt.Errorf("%w: %w", ErrReadInput, err))
	}

	res, err := conv.Convert(ctx, seopost.Input{
		Text:     text,
		Format:   params.format,
		Options:  params.options,
		PageSize: params.pageSize,
	})
	if err != nil {
		return finish(err)
	}
	result.Metadata = &res.Document.Metadata

	if err := checkDocument(res, params); err != nil {
		return finish(err)
	}
	logDocument(params.logger, f.InputPath, res, params.options)

	if params.slugNames {
		out, err := fileutil.OutputPath(f.InputPath, filepath.Dir(f.OutputPath), res.Slug, extensionFor(params.format))
		if err != nil {
			return finish(err)
		}
		result.OutputPath = out
	}
	if out := claims.claim(result.OutputPath); out != result.OutputPath {
		params.logger.Warn("output name already used in this batch, renamed",
			zap.String("file", f.InputPath),
			zap.String("output", out))
		result.OutputPath = out
	}

	if err := fileutil.WriteFileAtomic(result.OutputPath, payload(res, params.format)); err != nil {
		return finish(fmt.Errorf("%w: %w", ErrWriteOutput, err))
	}
	return finish(nil)
}

// outputClaims hands out distinct output paths within one batch, so posts
// sharing a slug or a base name never overwrite each other.
type outputClaims struct {
	mu    sync.Mutex
	taken map[string]bool
}

func newOutputClaims() *outputClaims {
	return &outputClaims{taken: make(map[string]bool)}
}

// claim returns path, or path with a -2, -3, ... suffix before the
// extension when another file of the batch already took it.
func (c *outputClaims) claim(path string) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	candidate := path
	for n := 2; c.taken[filepath.Clean(candidate)]; n++ {
		candidate = fmt.Sprintf("%s-%d%s", base, n, ext)
	}
	c.taken[filepath.Clean(candidate)] = true
	return candidate
}

// checkDocument fails invalid documents when strict is set.
func checkDocument(res *seopost.Result, params *conversionParams) error {
	md := res.Document.Metadata
	if !params.strict || md.IsValid {
		return nil
	}
	var problems []string
	if len(md.MissingRequired) > 0 {
		problems = append(problems, "missing "+strings.Join(md.MissingRequired, ", "))
	}
	if n := len(md.Warnings); n > 0 {
		problems = append(problems, fmt.Sprintf("%d warnings", n))
	}
	return fmt.Errorf("%w: %s", ErrInvalidDocument, strings.Join(problems, "; "))
}

// logDocument reports incomplete documents and unmapped image keywords.
func logDocument(logger *zap.Logger, path string, res *seopost.Result, opts seopost.Options) {
	md := res.Document.Metadata
	if !md.IsValid {
		logger.Warn("document is incomplete",
			zap.String("file", path),
			zap.Strings("missing", md.MissingRequired),
			zap.Strings("warnings", md.Warnings))
	}
	if !opts.ImagesEnabled() {
		return
	}
	if missing := imagemap.Unresolved(res.ImageKeywords, opts.ImageURLs); len(missing) > 0 {
		logger.Warn("unresolved images", zap.String("file", path), zap.Strings("keywords", missing))
	}
}

// payload returns the bytes written for a format.
func payload(res *seopost.Result, format string) []byte {
	if format == seopost.FormatPDF {
		return res.PDF
	}
	return []byte(res.HTML)
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResults outputs conversion results and returns the failures combined.
func printResults(results []ConversionResult, quiet, verbose bool, env *Environment) error {
	summary := countResults(results)

	var errs error
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v%s\n", r.InputPath, r.Err, hintFor(r.Err))
			errs = multierr.Append(errs, r.Err)
			continue
		}

		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return errs
}
