package datacite

import (
	"fmt"
	"log/slog"

	"github.com/FZJ-JSC/doi-jekyll/pkg/core"
	"github.com/araddon/dateparse"
)

// PostInfo carries the post-level fields the assembly needs.
// DOI must already be set by the caller; the assembler never generates
// identifiers itself.
type PostInfo struct {
	DOI      string
	Title    string
	Date     string
	Tags     []string
	License  string
	Version  string
	Abstract string
	// HasAbstract distinguishes an absent abstract from an empty one.
	HasAbstract bool
	// Overrides is the free-form `doi-additional-metadata` mapping
	// embedded in the post. Applied last, it wins over everything.
	Overrides core.Metadata
}

// AssembleResource builds the kernel-4 metadata record for one post.
//
// The record is built section by section, each a pure function of a
// subset of {blog, post, author}, then two deep-merge layers are applied
// in order: the externally supplied overrides (e.g. CLI-level ad hoc
// metadata), then the post-embedded overrides. Later layers win over
// earlier ones and over the fixed sections, so a single post can correct
// any computed field without a code change.
//
// The result is wrapped in a single top-level `resource` envelope.
// No network or disk I/O happens here.
func AssembleResource(logger *slog.Logger, blog *core.Blog, post PostInfo, author *core.Author, overrides core.Metadata) (core.Metadata, error) {
	if logger == nil {
		logger = slog.Default()
	}

	year, err := publicationYear(post.Date)
	if err != nil {
		return nil, err
	}

	version := post.Version
	if version == "" {
		version = "1.0"
	}

	res := core.Metadata{
		"@xmlns:xsi":          "http://www.w3.org/2001/XMLSchema-instance",
		"@xmlns":              "http://datacite.org/schema/kernel-4",
		"@xsi:schemaLocation": "http://datacite.org/schema/kernel-4 http://schema.datacite.org/meta/kernel-4/metadata.xsd",
		"identifier": map[string]any{
			"@identifierType": "DOI",
			"#text":           post.DOI,
		},
		"creators": creatorsSection(author, blog.Affiliation),
		"titles": map[string]any{
			"title": map[string]any{
				"@xml:lang": "en",
				"#text":     post.Title,
			},
		},
		"publicationYear": year,
		"publisher":       blog.Publisher,
		"resourceType": map[string]any{
			"@resourceTypeGeneral": "Text",
			"#text":                "BlogPosting",
		},
		"language": "en",
		"formats": map[string]any{
			"format": "HTML",
		},
		"version": version,
		"subjects": map[string]any{
			"subject": post.Tags,
		},
	}

	rights, err := ResolveLicense(post.License)
	if err != nil {
		return nil, err
	}
	if rights == nil {
		logger.Warn("no license specified, omitting rights section")
	} else {
		logger.Debug("resolved license", "license", rights.Identifier, "url", rights.URL)
		res["rightsList"] = map[string]any{
			"rights": rights.section(),
		}
	}

	if post.HasAbstract {
		res["descriptions"] = map[string]any{
			"description": map[string]any{
				"@descriptionType": "Abstract",
				"#text":            post.Abstract,
			},
		}
	} else {
		logger.Warn("no abstract given, omitting descriptions section")
	}

	if blog.DOI != "" {
		logger.Info("adding relation to the entire blog", "doi", blog.DOI)
		res["relatedIdentifiers"] = map[string]any{
			"relatedIdentifier": map[string]any{
				"@relatedIdentifierType": "DOI",
				"@relationType":          "IsPartOf",
				"#text":                  blog.DOI,
			},
		}
	}

	for _, layer := range []core.Metadata{overrides, post.Overrides} {
		if len(layer) == 0 {
			continue
		}
		logger.Info("merging additional metadata", "keys", len(layer))
		if res, err = core.DeepMerge(res, layer); err != nil {
			return nil, fmt.Errorf("failed to merge additional metadata: %w", err)
		}
	}

	return core.Metadata{"resource": res}, nil
}

func creatorsSection(author *core.Author, affiliation string) map[string]any {
	return map[string]any{
		"creator": map[string]any{
			"creatorName": map[string]any{
				"@nameType": "Personal",
				"#text":     author.Name,
			},
			"givenName":  author.FirstName,
			"familyName": author.LastName,
			"nameIdentifier": map[string]any{
				"@nameIdentifierScheme": "ORCID",
				"@schemeURI":            "https://orcid.org",
				"#text":                 "https://orcid.org/" + author.OrcidID,
			},
			"affiliation": affiliation,
		},
	}
}

// publicationYear parses the post date leniently and keeps the 4-digit
// year. A date that cannot be parsed is fatal: nothing can be published
// without a publication year.
func publicationYear(date string) (string, error) {
	t, err := dateparse.ParseAny(date)
	if err != nil {
		return "", fmt.Errorf("cannot parse post date %q: %w", date, err)
	}
	return t.Format("2006"), nil
}
