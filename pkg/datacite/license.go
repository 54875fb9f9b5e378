package datacite

import (
	"fmt"
	"strings"

	"github.com/FZJ-JSC/doi-jekyll/pkg/core"
)

// Rights is one resolved license entry of the fixed SPDX table.
type Rights struct {
	Identifier string // SPDX identifier, e.g. "MIT"
	URL        string // canonical license URL
}

// Known license short-codes. Extending the table is a code change,
// not configuration.
var licenses = map[string]Rights{
	"mit":    {Identifier: "MIT", URL: "https://spdx.org/licenses/MIT.html"},
	"cc0":    {Identifier: "CC0-1.0", URL: "https://creativecommons.org/publicdomain/zero/1.0/"},
	"cc-by4": {Identifier: "CC-BY-4.0", URL: "https://creativecommons.org/licenses/by/4.0/"},
	"gpl3":   {Identifier: "GPL-3.0-only", URL: "https://opensource.org/licenses/GPL-3.0"},
}

// ResolveLicense looks up a license short-code, case-insensitively.
//
// An empty code resolves to (nil, nil): the caller logs a warning and
// omits the rights section entirely. An unknown code is a hard error.
func ResolveLicense(code string) (*Rights, error) {
	if code == "" {
		return nil, nil
	}
	r, ok := licenses[strings.ToLower(code)]
	if !ok {
		return nil, fmt.Errorf("license %q is not in the known table, extend license parsing in the tool: %w",
			code, core.ErrUnknownLicense)
	}
	return &r, nil
}

func (r *Rights) section() map[string]any {
	return map[string]any{
		"@schemeURI":              "https://spdx.org/licenses/",
		"@rightsIdentifierScheme": "SPDX",
		"@rightsIdentifier":       r.Identifier,
		"@rightsURI":              r.URL,
	}
}
