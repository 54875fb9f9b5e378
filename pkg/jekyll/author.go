package jekyll

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/FZJ-JSC/doi-jekyll/pkg/core"
	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// LoadAuthor reads an author record from a Markdown file with YAML
// frontmatter.
func LoadAuthor(path string) (*core.Author, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read author file: %w", err)
	}

	header, _, err := splitFrontmatter(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var author core.Author
	if err := yaml.Unmarshal([]byte(header), &author); err != nil {
		return nil, fmt.Errorf("failed to parse author frontmatter of %s: %w", path, err)
	}
	if author.Name == "" {
		return nil, fmt.Errorf("author file %s has no name key", path)
	}

	return &author, nil
}

// ResolveAuthor finds the author record for name inside dir.
// The lookup is by filename: the lower-cased author name with a .md
// extension, anywhere under the authors directory. The first match in
// lexical order wins.
func ResolveAuthor(dir, name string) (*core.Author, error) {
	if name == "" {
		return nil, fmt.Errorf("post has no author key: %w", core.ErrInvalidPost)
	}

	pattern := "**/" + strings.ToLower(name) + ".md"
	matches, err := doublestar.Glob(os.DirFS(dir), pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to search authors directory %s: %w", dir, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no author file for %q under %s", name, dir)
	}

	return LoadAuthor(filepath.Join(dir, matches[0]))
}
