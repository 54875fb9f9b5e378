// Package jekyll reads and writes the documents of a Jekyll site:
// the site configuration, posts with YAML frontmatter, and author records.
package jekyll

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/FZJ-JSC/doi-jekyll/pkg/core"
	"gopkg.in/yaml.v3"
)

// LoadConfig reads the blog-wide configuration, usually Jekyll's _config.yml.
// Only the dedicated `doi_jekyll` block is used, plus the top-level `url`
// key holding the base URL of the entire site.
func LoadConfig(path string) (*core.Blog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var raw struct {
		URL       string     `yaml:"url"`
		DoiJekyll *core.Blog `yaml:"doi_jekyll"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid yaml in %s: %w", path, err)
	}

	if raw.DoiJekyll == nil {
		return nil, fmt.Errorf("%s has no doi_jekyll block: %w", path, core.ErrInvalidConfig)
	}

	blog := raw.DoiJekyll
	blog.URL = raw.URL

	var missing []string
	for key, val := range map[string]string{
		"prefix":       blog.Prefix,
		"suffix_base":  blog.SuffixBase,
		"provider_url": blog.ProviderURL,
		"publisher":    blog.Publisher,
		"affiliation":  blog.Affiliation,
		"url":          blog.URL,
	} {
		if val == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%s is missing required keys %s: %w",
			path, strings.Join(sorted(missing), ", "), core.ErrInvalidConfig)
	}

	return blog, nil
}

func sorted(s []string) []string {
	sort.Strings(s)
	return s
}
