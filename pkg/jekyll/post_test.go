package jekyll

import (
	"os"
	"strings"
	"testing"

	"github.com/FZJ-JSC/doi-jekyll/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePost = `---
title: Hello World
date: 2022-08-01
author: stephen
tags: tech science
license: mit
---
# Hello

Some body text.
`

func TestLoadPost(t *testing.T) {
	path := writeFile(t, t.TempDir(), "2022-08-01-hello-world.md", samplePost)

	post, err := LoadPost(path)
	require.NoError(t, err)

	assert.Equal(t, "Hello World", post.Title())
	assert.Equal(t, "stephen", post.Author())
	assert.Equal(t, "mit", post.License())
	assert.Equal(t, []string{"tech", "science"}, post.Tags())
	assert.True(t, strings.HasPrefix(post.Date(), "2022-08-01"))
	assert.Equal(t, "# Hello\n\nSome body text.\n", post.Content)

	_, hasAbstract := post.Abstract()
	assert.False(t, hasAbstract)
	_, hasDOI := post.DOI()
	assert.False(t, hasDOI)
	assert.Nil(t, post.Overrides())
	assert.NoError(t, post.Validate())
}

func TestLoadPostOverrides(t *testing.T) {
	path := writeFile(t, t.TempDir(), "post.md", `---
title: Hello
date: 2022-08-01
author: stephen
tags: tech
doi-additional-metadata:
  version: "3.0"
  creators:
    creator:
      givenName: Richard
---
body
`)

	post, err := LoadPost(path)
	require.NoError(t, err)

	overrides := post.Overrides()
	require.NotNil(t, overrides)
	assert.Equal(t, "3.0", overrides["version"])

	// yaml.v3 decodes nested mappings with the named map type of the
	// enclosing map, not map[string]any
	creators, ok := overrides["creators"].(core.Metadata)
	require.True(t, ok, "nested mapping has type %T", overrides["creators"])
	creator, ok := creators["creator"].(core.Metadata)
	require.True(t, ok)
	assert.Equal(t, "Richard", creator["givenName"])
}

func TestLoadPostErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"No Frontmatter", "# Just Markdown\n"},
		{"Unclosed Frontmatter", "---\ntitle: Unclosed\nContent\n"},
		{"Invalid YAML", "---\nkey: : value\n---\nContent\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "post.md", tt.input)
			if _, err := LoadPost(path); err == nil {
				t.Error("LoadPost() expected error, got nil")
			}
		})
	}
}

func TestPostValidate(t *testing.T) {
	path := writeFile(t, t.TempDir(), "post.md", "---\ntitle: Hello\n---\nbody\n")

	post, err := LoadPost(path)
	require.NoError(t, err)

	err = post.Validate()
	require.ErrorIs(t, err, core.ErrInvalidPost)
	assert.Contains(t, err.Error(), "date")
	assert.Contains(t, err.Error(), "author")
	assert.Contains(t, err.Error(), "tags")
}

func TestSetDOIAppends(t *testing.T) {
	path := writeFile(t, t.TempDir(), "post.md", samplePost)

	post, err := LoadPost(path)
	require.NoError(t, err)

	post.SetDOI("https://doi.org/10.1234/blog-SGVsbG")
	require.NoError(t, post.Save())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	want := strings.Replace(samplePost,
		"license: mit\n---",
		"license: mit\ndoi: https://doi.org/10.1234/blog-SGVsbG\n---", 1)
	assert.Equal(t, want, string(data), "only the doi line may change; key order and body stay verbatim")
}

func TestSetDOIReplaces(t *testing.T) {
	original := `---
title: Hello World
doi: https://doi.org/10.1234/blog-OLD
date: 2022-08-01
author: stephen
tags: tech
---
body
`
	path := writeFile(t, t.TempDir(), "post.md", original)

	post, err := LoadPost(path)
	require.NoError(t, err)

	existing, ok := post.DOI()
	require.True(t, ok)
	assert.Equal(t, "https://doi.org/10.1234/blog-OLD", existing)

	post.SetDOI("https://doi.org/10.1234/blog-NEW")
	require.NoError(t, post.Save())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, strings.Replace(original, "blog-OLD", "blog-NEW", 1), string(data))
}

func TestSetDOIDoesNotTouchNestedKeys(t *testing.T) {
	original := `---
title: Hello
date: 2022-08-01
author: stephen
tags: tech
doi-additional-metadata:
  doi: nested-value
---
body
`
	path := writeFile(t, t.TempDir(), "post.md", original)

	post, err := LoadPost(path)
	require.NoError(t, err)

	post.SetDOI("https://doi.org/10.1234/blog-X")
	require.NoError(t, post.Save())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "doi: nested-value", "indented keys must not be rewritten")
	assert.Contains(t, string(data), "doi: https://doi.org/10.1234/blog-X")
}

func TestLoadPostKeepsLongLinesUnwrapped(t *testing.T) {
	long := strings.Repeat("a very long abstract sentence ", 20)
	original := "---\ntitle: Hello\ndate: 2022-08-01\nauthor: s\ntags: t\nabstract: " + long + "\n---\nbody\n"
	path := writeFile(t, t.TempDir(), "post.md", original)

	post, err := LoadPost(path)
	require.NoError(t, err)
	post.SetDOI("10.1234/x")
	require.NoError(t, post.Save())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "abstract: "+long+"\n", "long fields must not be rewrapped")
}
