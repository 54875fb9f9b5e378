package doijekyll

import (
	"log/slog"

	"github.com/FZJ-JSC/doi-jekyll/pkg/core"
)

// options holds the internal configuration for the pipeline.
type options struct {
	logger     *slog.Logger
	force      bool
	dryRun     bool
	skipURL    bool
	overrides  core.Metadata
	authorsDir string
	authorFile string
}

// Option defines a functional option for configuring the Service.
type Option func(*options)

func defaultOptions() *options {
	return &options{
		logger:     slog.Default(),
		authorsDir: "_authors",
	}
}

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithForce allows overwriting an existing DOI in the post.
func WithForce(force bool) Option {
	return func(o *options) {
		o.force = force
	}
}

// WithDryRun disables all registry calls and the post rewrite.
func WithDryRun(dryRun bool) Option {
	return func(o *options) {
		o.dryRun = dryRun
	}
}

// WithSkipURL skips the URL registration, leaving only the metadata upsert.
func WithSkipURL(skip bool) Option {
	return func(o *options) {
		o.skipURL = skip
	}
}

// WithOverrides supplies an ad hoc metadata mapping merged over the
// assembled record. Post-embedded overrides still win over these.
func WithOverrides(overrides core.Metadata) Option {
	return func(o *options) {
		o.overrides = overrides
	}
}

// WithAuthorsDir sets the directory searched for author files.
// Defaults to "_authors".
func WithAuthorsDir(dir string) Option {
	return func(o *options) {
		if dir != "" {
			o.authorsDir = dir
		}
	}
}

// WithAuthorFile sets an explicit author file, skipping discovery.
func WithAuthorFile(path string) Option {
	return func(o *options) {
		o.authorFile = path
	}
}
