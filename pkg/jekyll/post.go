package jekyll

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/FZJ-JSC/doi-jekyll/pkg/core"
	"gopkg.in/yaml.v3"
)

// tempFilePrefix is the prefix used for temporary atomic write files.
const tempFilePrefix = "doi-jekyll-tmp-"

var doiLineRe = regexp.MustCompile(`(?m)^doi:[^\n]*`)

// Post is one blog post: its parsed frontmatter plus the untouched body.
//
// The original header text is kept verbatim so that rewriting the post
// preserves key order, comments and unwrapped long fields. Only the
// `doi:` line is ever touched.
type Post struct {
	Path    string
	Meta    core.Metadata
	Content string

	header string // raw frontmatter text between the --- delimiters
}

// LoadPost reads a Markdown post with YAML frontmatter.
// A post without a frontmatter block is an error: all bibliographic
// fields live in the header.
func LoadPost(path string) (*Post, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read post: %w", err)
	}

	header, content, err := splitFrontmatter(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	meta := make(core.Metadata)
	if err := yaml.Unmarshal([]byte(header), &meta); err != nil {
		return nil, fmt.Errorf("failed to parse frontmatter of %s: %w", path, err)
	}

	return &Post{
		Path:    path,
		Meta:    meta,
		Content: content,
		header:  header,
	}, nil
}

// splitFrontmatter separates the raw YAML header from the body.
// The body is returned verbatim, byte for byte.
func splitFrontmatter(data []byte) (header, content string, err error) {
	if !bytes.HasPrefix(data, []byte("---\n")) && !bytes.HasPrefix(data, []byte("---\r\n")) {
		return "", "", errors.New("post has no frontmatter block")
	}

	rest := data[bytes.IndexByte(data, '\n')+1:]

	var end int
	if bytes.HasPrefix(rest, []byte("---")) {
		end = 0
	} else {
		i := bytes.Index(rest, []byte("\n---"))
		if i < 0 {
			return "", "", errors.New("frontmatter started but no closing delimiter found")
		}
		end = i + 1
	}

	header = string(rest[:end])

	after := rest[end:]
	if j := bytes.IndexByte(after, '\n'); j >= 0 {
		content = string(after[j+1:])
	}

	return header, content, nil
}

// Get returns a raw frontmatter value.
func (p *Post) Get(key string) (any, bool) {
	v, ok := p.Meta[key]
	return v, ok
}

// Has reports whether the frontmatter contains key.
func (p *Post) Has(key string) bool {
	_, ok := p.Meta[key]
	return ok
}

func (p *Post) stringValue(key string) string {
	switch v := p.Meta[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case time.Time:
		// yaml.v3 resolves ISO dates in unquoted scalars to time.Time.
		return v.Format(time.RFC3339)
	default:
		return fmt.Sprint(v)
	}
}

// Title returns the post title.
func (p *Post) Title() string { return p.stringValue("title") }

// Date returns the raw date value as a string.
func (p *Post) Date() string { return p.stringValue("date") }

// Author returns the author name used to resolve the author record.
func (p *Post) Author() string { return p.stringValue("author") }

// License returns the license short-code, empty if absent.
func (p *Post) License() string { return p.stringValue("license") }

// Version returns the post version, empty if absent.
func (p *Post) Version() string { return p.stringValue("version") }

// Tags returns the whitespace-separated tags as a list of keywords.
func (p *Post) Tags() []string {
	return strings.Fields(p.stringValue("tags"))
}

// Abstract returns the abstract and whether one is present.
func (p *Post) Abstract() (string, bool) {
	if !p.Has("abstract") {
		return "", false
	}
	return p.stringValue("abstract"), true
}

// DOI returns the registered DOI and whether one is present.
// Presence signals that the post was already registered.
func (p *Post) DOI() (string, bool) {
	if !p.Has("doi") {
		return "", false
	}
	return p.stringValue("doi"), true
}

// Overrides returns the free-form `doi-additional-metadata` mapping
// embedded in the post, or nil.
func (p *Post) Overrides() core.Metadata {
	switch m := p.Meta["doi-additional-metadata"].(type) {
	case core.Metadata:
		return m
	case map[string]any:
		return core.Metadata(m)
	}
	return nil
}

// Validate checks the frontmatter keys every post must carry.
// The license key is deliberately not required here: its absence is a
// soft condition handled by the metadata assembly.
func (p *Post) Validate() error {
	var missing []string
	for _, key := range []string{"title", "date", "author", "tags"} {
		if p.stringValue(key) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%s is missing required keys %s: %w",
			p.Path, strings.Join(missing, ", "), core.ErrInvalidPost)
	}
	return nil
}

// SetDOI records the issued identifier in the frontmatter.
// An existing `doi:` header line is replaced, otherwise one is appended;
// every other header line stays untouched.
func (p *Post) SetDOI(value string) {
	p.Meta["doi"] = value
	line := "doi: " + value
	if doiLineRe.MatchString(p.header) {
		p.header = doiLineRe.ReplaceAllString(p.header, line)
		return
	}
	if p.header != "" && !strings.HasSuffix(p.header, "\n") {
		p.header += "\n"
	}
	p.header += line + "\n"
}

// Save rewrites the post in place, atomically.
func (p *Post) Save() error {
	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.WriteString(p.header)
	buf.WriteString("---\n")
	buf.WriteString(p.Content)
	return writeFileAtomic(p.Path, buf.Bytes(), 0644)
}

// writeFileAtomic writes data to a file atomically by writing to a temp file
// and then renaming it to the target filename.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filename)

	tmpFile, err := os.CreateTemp(dir, tempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name()) // Clean up if we fail before rename

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write to temp file: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Chmod(tmpFile.Name(), perm); err != nil {
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}

	if err := os.Rename(tmpFile.Name(), filename); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", filename, err)
	}

	return nil
}
