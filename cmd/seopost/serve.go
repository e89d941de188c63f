package main

import (
	"context"
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-seopost/internal/metrics"
	"github.com/alnah/go-seopost/internal/server"
)

// runServe runs the preview server until ctx is canceled.
func runServe(ctx context.Context, args []string, env *Environment) error {
	f, rest, err := parseServeFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		printServeUsage(env.Stdout)
		return nil
	}
	if err != nil {
		return err
	}
	if len(rest) > 0 {
		return fmt.Errorf("%w: serve takes no arguments", ErrUsage)
	}

	s, err := loadSettings(f.common, env)
	if err != nil {
		return err
	}
	defer func() { _ = s.logger.Sync() }()

	defaults, err := postOptions(s.cfg, &f.post, env.Now())
	if err != nil {
		return err
	}
	convOpts, err := converterOptions(s, &f.assets, "", env)
	if err != nil {
		return err
	}

	pool := env.NewPool(1, convOpts...)
	defer closePool(pool, s.logger)
	conv, err := pool.Acquire()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConverterInit, err)
	}
	defer pool.Release(conv)

	origins := f.origins
	if len(origins) == 0 {
		origins = s.cfg.Server.CORSOrigins
	}
	srv := server.New(conv,
		server.WithLogger(s.logger),
		server.WithMetrics(metrics.New()),
		server.WithStrict(f.strict || s.cfg.Server.Strict),
		server.WithCORSOrigins(origins...),
		server.WithDefaults(defaults),
	)

	addr := firstNonEmpty(f.addr, s.cfg.Server.Addr)
	ln, err := env.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	if !f.common.quiet {
		fmt.Fprintf(env.Stdout, "Serving on http://%s\n", ln.Addr())
	}
	return srv.Serve(ctx, ln)
}
