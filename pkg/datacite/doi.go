// Package datacite assembles DataCite kernel-4 metadata records and
// talks to the DataCite MDS API.
package datacite

import (
	"encoding/base64"
	"fmt"
)

// GenerateDOI derives a stable DOI name for a post.
// The suffix is the global blog identifier (base) plus the first 6
// characters of the base64-encoded post title; the prefix is the
// registrant namespace before the slash.
//
// Deterministic: the same title always yields the same suffix for a
// given base/prefix pair. Only 6 characters of encoded text are kept,
// so two titles sharing their first bytes collide; do not rely on the
// suffix being unique across arbitrary titles.
func GenerateDOI(title, base, prefix string) string {
	encoded := base64.StdEncoding.EncodeToString([]byte(title))
	if len(encoded) > 6 {
		encoded = encoded[:6]
	}
	return fmt.Sprintf("%s/%s-%s", prefix, base, encoded)
}
