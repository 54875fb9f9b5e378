// Package doijekyll is the composition root of the DOI registration
// pipeline. It connects the Jekyll source readers, the metadata
// assembly and the registry client into one strictly sequential
// workflow: read sources, generate the identifier, assemble the record,
// register it, rewrite the post.
package doijekyll

import (
	"context"
	"fmt"

	"github.com/FZJ-JSC/doi-jekyll/pkg/core"
	"github.com/FZJ-JSC/doi-jekyll/pkg/datacite"
	"github.com/FZJ-JSC/doi-jekyll/pkg/jekyll"
)

// Service runs the registration workflow for a single post.
type Service struct {
	blog     *core.Blog
	registry core.Registry
	opts     *options
}

// New creates a Service for the given blog configuration and registry.
func New(blog *core.Blog, registry core.Registry, opts ...Option) *Service {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &Service{
		blog:     blog,
		registry: registry,
		opts:     o,
	}
}

// Run registers a DOI for the post at postPath and returns the issued
// identifier.
//
// The workflow is not transactional: a failure aborts the run and
// leaves already-completed registry upserts in place. Re-running
// converges because both registry operations are idempotent and the
// generated identifier is deterministic.
func (s *Service) Run(ctx context.Context, postPath string) (string, error) {
	log := s.opts.logger

	post, err := jekyll.LoadPost(postPath)
	if err != nil {
		return "", err
	}
	if err := post.Validate(); err != nil {
		return "", err
	}
	log.Debug("parsed post", "path", postPath, "title", post.Title())

	var author *core.Author
	if s.opts.authorFile != "" {
		author, err = jekyll.LoadAuthor(s.opts.authorFile)
	} else {
		author, err = jekyll.ResolveAuthor(s.opts.authorsDir, post.Author())
	}
	if err != nil {
		return "", err
	}
	log.Debug("resolved author", "name", author.Name, "orcid", author.OrcidID)

	if existing, ok := post.DOI(); ok && !s.opts.force {
		return "", fmt.Errorf("DOI already exists for blog post (%s), launch with --force to overwrite: %w",
			existing, core.ErrDOIExists)
	}

	doi := datacite.GenerateDOI(post.Title(), s.blog.SuffixBase, s.blog.Prefix)
	log.Debug("auto-generated DOI", "doi", doi)

	abstract, hasAbstract := post.Abstract()
	record, err := datacite.AssembleResource(log, s.blog, datacite.PostInfo{
		DOI:         doi,
		Title:       post.Title(),
		Date:        post.Date(),
		Tags:        post.Tags(),
		License:     post.License(),
		Version:     post.Version(),
		Abstract:    abstract,
		HasAbstract: hasAbstract,
		Overrides:   post.Overrides(),
	}, author, s.opts.overrides)
	if err != nil {
		return "", err
	}

	xmlRecord, err := datacite.MarshalResource(record)
	if err != nil {
		return "", err
	}
	log.Info("assembled metadata record", "xml", string(xmlRecord))

	if s.opts.dryRun {
		log.Warn("dry-run: not registering metadata with the registry")
	} else {
		if err := s.registry.RegisterMetadata(ctx, doi, xmlRecord); err != nil {
			return "", fmt.Errorf("failed to register metadata: %w", err)
		}
	}

	switch {
	case s.opts.dryRun:
		log.Warn("dry-run: not registering URL with the registry")
	case s.opts.skipURL:
		log.Warn("skip-url: skipping URL registration")
	default:
		permalink, err := jekyll.Permalink(s.blog.URL, postPath, post.Date())
		if err != nil {
			return "", err
		}
		log.Debug("assembled permalink", "url", permalink, "from", postPath)
		if err := s.registry.RegisterURL(ctx, doi, permalink); err != nil {
			return "", fmt.Errorf("failed to register URL: %w", err)
		}
	}

	if s.opts.dryRun {
		log.Warn("dry-run: not writing DOI into the post frontmatter")
		return doi, nil
	}

	post.SetDOI("https://doi.org/" + doi)
	if err := post.Save(); err != nil {
		return "", fmt.Errorf("failed to update post frontmatter: %w", err)
	}

	return doi, nil
}
