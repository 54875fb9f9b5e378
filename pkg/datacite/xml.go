package datacite

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"sort"
	"strings"

	"github.com/FZJ-JSC/doi-jekyll/pkg/core"
)

// elementKeyOrder pins the child order of elements whose schema is
// order-sensitive. Keys introduced by override merges that are not
// listed here are emitted after the known ones, sorted, so the output
// stays deterministic.
var elementKeyOrder = map[string][]string{
	"resource": {
		"@xmlns:xsi", "@xmlns", "@xsi:schemaLocation",
		"identifier", "creators", "titles", "publicationYear", "publisher",
		"resourceType", "language", "formats", "version", "rightsList",
		"subjects", "descriptions", "relatedIdentifiers",
	},
	"creator": {"creatorName", "givenName", "familyName", "nameIdentifier", "affiliation"},
}

// MarshalResource serializes an assembled record to DataCite MDS XML.
// The record follows the attribute/text convention: `@`-prefixed keys
// become attributes, `#text` becomes character data, nested mappings
// become child elements and slices repeat their element.
func MarshalResource(record core.Metadata) ([]byte, error) {
	root, ok := record["resource"]
	if !ok {
		return nil, fmt.Errorf("record has no resource envelope")
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	if err := writeElement(&buf, "resource", root); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeElement(buf *bytes.Buffer, name string, v any) error {
	switch val := v.(type) {
	case core.Metadata:
		return writeMapElement(buf, name, map[string]any(val))
	case map[string]any:
		return writeMapElement(buf, name, val)
	case []any:
		for _, item := range val {
			if err := writeElement(buf, name, item); err != nil {
				return err
			}
		}
		return nil
	case []string:
		for _, item := range val {
			if err := writeElement(buf, name, item); err != nil {
				return err
			}
		}
		return nil
	case nil:
		buf.WriteString("<" + name + "></" + name + ">")
		return nil
	default:
		buf.WriteString("<" + name + ">")
		if err := xml.EscapeText(buf, []byte(fmt.Sprint(val))); err != nil {
			return err
		}
		buf.WriteString("</" + name + ">")
		return nil
	}
}

func writeMapElement(buf *bytes.Buffer, name string, m map[string]any) error {
	keys := orderedKeys(name, m)

	buf.WriteString("<" + name)
	for _, k := range keys {
		if !strings.HasPrefix(k, "@") {
			continue
		}
		buf.WriteString(" " + strings.TrimPrefix(k, "@") + `="`)
		if err := xml.EscapeText(buf, []byte(fmt.Sprint(m[k]))); err != nil {
			return err
		}
		buf.WriteString(`"`)
	}
	buf.WriteString(">")

	if text, ok := m["#text"]; ok {
		if err := xml.EscapeText(buf, []byte(fmt.Sprint(text))); err != nil {
			return err
		}
	}

	for _, k := range keys {
		if strings.HasPrefix(k, "@") || k == "#text" {
			continue
		}
		if err := writeElement(buf, k, m[k]); err != nil {
			return err
		}
	}

	buf.WriteString("</" + name + ">")
	return nil
}

func orderedKeys(element string, m map[string]any) []string {
	known := elementKeyOrder[element]
	seen := make(map[string]bool, len(known))
	keys := make([]string, 0, len(m))
	for _, k := range known {
		if _, ok := m[k]; ok {
			keys = append(keys, k)
			seen[k] = true
		}
	}
	var rest []string
	for k := range m {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}
