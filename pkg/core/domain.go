// Package core holds the domain types shared by the doi-jekyll pipeline.
package core

// Metadata represents the flexible key-value pairs of a frontmatter block
// or of an assembled metadata record.
type Metadata map[string]any

// Blog is the site-wide configuration relevant for DOI registration.
// It is read once from the `doi_jekyll` block of the Jekyll configuration
// (plus the top-level `url` key) and stays read-only for the run.
type Blog struct {
	// Prefix is the registrant namespace, e.g. "10.1234".
	Prefix string `yaml:"prefix"`
	// SuffixBase is the short identifier of the blog used as the first
	// part of every generated DOI suffix.
	SuffixBase string `yaml:"suffix_base"`
	// ProviderURL is the base endpoint of the DataCite MDS API.
	ProviderURL string `yaml:"provider_url"`
	Publisher   string `yaml:"publisher"`
	Affiliation string `yaml:"affiliation"`
	// DOI is the optional identifier of the blog itself. When present,
	// posts carry an IsPartOf relation pointing at it.
	DOI string `yaml:"doi"`
	// URL is the public base URL of the site (top-level Jekyll `url` key).
	URL string `yaml:"-"`
}

// Author is one author record, resolved from a frontmatter file in the
// authors directory. Read-only.
type Author struct {
	Name      string `yaml:"name"`
	FirstName string `yaml:"first_name"`
	LastName  string `yaml:"last_name"`
	OrcidID   string `yaml:"orcid_id"`
}
