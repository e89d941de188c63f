package main

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	seopost "github.com/alnah/go-seopost"
	"github.com/alnah/go-seopost/internal/config"
	"github.com/alnah/go-seopost/internal/dateutil"
	"github.com/alnah/go-seopost/internal/imagemap"
	"github.com/alnah/go-seopost/internal/logging"
)

// settings is the resolved configuration of one command run.
type settings struct {
	cfg    *config.Config
	env    *envConfig
	logger *zap.Logger
}

// loadSettings resolves the config file (flag, then SEOPOST_CONFIG), applies
// environment overrides and builds the logger. Logs go to stderr so stdout
// stays clean for piped output.
func loadSettings(common commonFlags, env *Environment) (*settings, error) {
	envCfg := loadEnvConfig()
	warnUnknownEnvVars(env.Stderr)

	cfg := config.DefaultConfig()
	name := common.config
	if name == "" {
		name = envCfg.ConfigPath
	}
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	applyEnvConfig(envCfg, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := logging.New(logLevel(common, cfg), env.Stderr, env.Stderr)
	if err != nil {
		return nil, err
	}
	return &settings{cfg: cfg, env: envCfg, logger: logger}, nil
}

// logLevel maps --quiet and --verbose over the configured level.
func logLevel(common commonFlags, cfg *config.Config) string {
	switch {
	case common.quiet:
		return logging.LevelError
	case common.verbose:
		return logging.LevelDebug
	default:
		return cfg.Logging.Level
	}
}

// postOptions merges config and flags into generation options.
// Image maps merge config files, then config URLs, then --images files.
func postOptions(cfg *config.Config, f *postFlags, now time.Time) (seopost.Options, error) {
	opts := seopost.Options{
		IncludeSchema:    cfg.Render.IncludeSchema,
		IncludeImages:    cfg.Render.IncludeImages,
		IncludeFAQSchema: cfg.Render.IncludeFAQSchema || f.faqSchema,
		BlogTitle:        firstNonEmpty(f.title, cfg.Blog.Title),
		AuthorName:       firstNonEmpty(f.author, cfg.Blog.Author),
		FeaturedImageURL: firstNonEmpty(f.featured, cfg.Images.Featured),
	}
	if f.noSchema {
		opts.IncludeSchema = seopost.Bool(false)
	}
	if f.noImages {
		opts.IncludeImages = seopost.Bool(false)
	}

	date, err := dateutil.Resolve(firstNonEmpty(f.date, cfg.Blog.Date), now)
	if err != nil {
		return seopost.Options{}, err
	}
	opts.BlogDate = date

	fromConfig, err := imagemap.Load(cfg.Images.Files...)
	if err != nil {
		return seopost.Options{}, err
	}
	fromFlags, err := imagemap.Load(f.images...)
	if err != nil {
		return seopost.Options{}, err
	}
	if m := imagemap.Merge(fromConfig, cfg.Images.URLs, fromFlags); len(m) > 0 {
		opts.ImageURLs = m
	}
	return opts, nil
}

// converterOptions builds the converter options shared by convert and serve.
// An empty timeout falls back to pdf.timeout from the config.
func converterOptions(s *settings, a *assetFlags, timeout string, env *Environment) ([]seopost.Option, error) {
	d := s.cfg.TimeoutDuration()
	if timeout != "" {
		parsed, err := time.ParseDuration(timeout)
		if err != nil {
			return nil, fmt.Errorf("%w: --timeout %q: %v", ErrUsage, timeout, err)
		}
		if parsed <= 0 {
			return nil, fmt.Errorf("%w: --timeout must be positive, got %s", ErrUsage, parsed)
		}
		d = parsed
	}

	opts := []seopost.Option{
		seopost.WithTimeout(d),
		seopost.WithClock(env.Now),
		seopost.WithLogger(s.logger),
	}
	switch style := firstNonEmpty(a.style, s.cfg.Style); {
	case a.noStyle:
		opts = append(opts, seopost.WithStyle(""))
	case style != "":
		opts = append(opts, seopost.WithStyle(style))
	}
	if dir := firstNonEmpty(a.assetPath, s.cfg.Assets.BasePath); dir != "" {
		opts = append(opts, seopost.WithAssetPath(dir))
	}
	return opts, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
