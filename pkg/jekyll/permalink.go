package jekyll

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/araddon/dateparse"
)

// datedSlugRe matches Jekyll's default post filename convention:
// a YYYY-M-D- prefix followed by the slug.
var datedSlugRe = regexp.MustCompile(`^(\d{4}-\d{1,2}-\d{1,2})-(.+)$`)

// Permalink derives the canonical public URL of a post, emulating
// Jekyll's default permalink scheme: {base}/{YYYY}/{MM}/{DD}/{slug}.html.
//
// A filename without the dated-slug prefix is an error; the slug is
// never guessed.
func Permalink(baseURL, postFilename, date string) (string, error) {
	stem := strings.TrimSuffix(filepath.Base(postFilename), filepath.Ext(postFilename))
	m := datedSlugRe.FindStringSubmatch(stem)
	if m == nil {
		return "", fmt.Errorf("post filename %q does not match the YYYY-MM-DD-slug pattern", stem)
	}

	t, err := dateparse.ParseAny(date)
	if err != nil {
		return "", fmt.Errorf("cannot parse post date %q: %w", date, err)
	}

	return fmt.Sprintf("%s/%s/%s.html",
		strings.TrimRight(baseURL, "/"), t.Format("2006/01/02"), m[2]), nil
}
