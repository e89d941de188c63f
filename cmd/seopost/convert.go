package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	seopost "github.com/alnah/go-seopost"
	"github.com/alnah/go-seopost/internal/fileutil"
	"github.com/alnah/go-seopost/internal/pdf"
)

// runConvert converts post sources (files, directories or "-" for stdin).
func runConvert(ctx context.Context, args []string, env *Environment) error {
	f, inputs, err := parseConvertFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		printConvertUsage(env.Stdout)
		return nil
	}
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return fmt.Errorf("%w: run 'seopost help convert'", ErrNoInput)
	}
	if err := validateWorkers(f.workers); err != nil {
		return err
	}

	s, err := loadSettings(f.common, env)
	if err != nil {
		return err
	}
	defer func() { _ = s.logger.Sync() }()

	format := firstNonEmpty(f.format, s.cfg.Output.Format)
	if !seopost.IsFormat(format) {
		return fmt.Errorf("%w: %q (must be fragment, styled, document, or pdf)", seopost.ErrInvalidFormat, format)
	}
	pageSize := firstNonEmpty(f.pageSize, s.cfg.PDF.PageSize)
	if format == seopost.FormatPDF && !pdf.IsPageSize(pageSize) {
		return fmt.Errorf("%w: %q (must be letter, a4, or legal)", seopost.ErrInvalidPageSize, pageSize)
	}

	opts, err := postOptions(s.cfg, &f.post, env.Now())
	if err != nil {
		return err
	}
	convOpts, err := converterOptions(s, &f.assets, f.timeout, env)
	if err != nil {
		return err
	}

	workers := f.workers
	if workers == 0 {
		workers = s.env.Workers
	}
	pool := env.NewPool(seopost.ResolvePoolSize(workers), convOpts...)
	defer closePool(pool, s.logger)
	s.logger.Debug("converter pool ready", zap.Int("size", pool.Size()), zap.String("format", format))

	params := &conversionParams{
		format:    format,
		pageSize:  pageSize,
		options:   opts,
		strict:    f.strict,
		slugNames: f.slugNames,
		reader: func(path string) (string, error) {
			return fileutil.ReadInput(path, env.Stdin)
		},
		logger: s.logger,
	}

	if len(inputs) == 1 && inputs[0] == "-" {
		return convertStdin(ctx, pool, f, params, env)
	}

	outputDir := firstNonEmpty(f.output, s.cfg.Output.DefaultDir)
	files, err := discoverFiles(inputs, outputDir, extensionFor(format))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no post sources in %s", ErrNoInput, strings.Join(inputs, ", "))
	}

	results := convertBatch(ctx, pool, files, params)
	if err := printResults(results, f.common.quiet, f.common.verbose, env); err != nil {
		return reported(err)
	}
	return nil
}

// convertStdin converts standard input, writing to -o or standard output.
func convertStdin(ctx context.Context, pool Pool, f *convertFlags, params *conversionParams, env *Environment) error {
	conv, err := pool.Acquire()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConverterInit, err)
	}
	defer pool.Release(conv)

	text, err := params.reader("-")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReadInput, err)
	}
	res, err := conv.Convert(ctx, seopost.Input{
		Text:     text,
		Format:   params.format,
		Options:  params.options,
		PageSize: params.pageSize,
	})
	if err != nil {
		return err
	}
	if err := checkDocument(res, params); err != nil {
		return err
	}
	logDocument(params.logger, "-", res, params.options)

	if f.output == "" {
		if _, err := env.Stdout.Write(payload(res, params.format)); err != nil {
			return fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}
		return nil
	}
	if err := fileutil.WriteFileAtomic(f.output, payload(res, params.format)); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	if !f.common.quiet {
		fmt.Fprintf(env.Stdout, "Created %s\n", f.output)
	}
	return nil
}

// closePool releases the converters, logging browser shutdown failures.
func closePool(pool Pool, logger *zap.Logger) {
	if err := pool.Close(); err != nil {
		logger.Error("closing converters", zap.Error(err))
	}
}
