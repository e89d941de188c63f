package main

import (
	"context"
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"

	seopost "github.com/alnah/go-seopost"
	"github.com/alnah/go-seopost/internal/compose"
	"github.com/alnah/go-seopost/internal/fileutil"
	"github.com/alnah/go-seopost/internal/yamlutil"
)

// runCompose turns a guided form (YAML) into marker text.
func runCompose(_ context.Context, args []string, env *Environment) error {
	f, inputs, err := parseComposeFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		printComposeUsage(env.Stdout)
		return nil
	}
	if err != nil {
		return err
	}
	if len(inputs) != 1 {
		return fmt.Errorf("%w: compose takes exactly one form file (or -)", ErrNoInput)
	}

	s, err := loadSettings(f.common, env)
	if err != nil {
		return err
	}
	defer func() { _ = s.logger.Sync() }()

	data, err := fileutil.ReadInput(inputs[0], env.Stdin)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReadInput, err)
	}
	form, err := compose.Decode([]byte(data))
	if err != nil {
		return fmt.Errorf("%w: form %s: %s", ErrUsage, inputs[0], yamlutil.Describe(err))
	}
	text, err := seopost.Compose(form)
	if err != nil {
		return err
	}

	if f.check {
		r := validatePost(inputs[0], text, false, nil, false)
		printReports(env.Stderr, []validationReport{r}, f.common.quiet)
		if !r.Valid {
			s.logger.Warn("composed post is incomplete")
		}
	}

	if f.output == "" {
		_, err := fmt.Fprint(env.Stdout, text)
		return err
	}
	if err := fileutil.WriteFileAtomic(f.output, []byte(text)); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	if !f.common.quiet {
		fmt.Fprintf(env.Stderr, "Created %s\n", f.output)
	}
	return nil
}
