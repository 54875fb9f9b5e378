package core

import "dario.cat/mergo"

// DeepMerge merges src into dst recursively and returns a fresh map.
// Nested mappings merge key-by-key; on leaf conflicts the later argument
// (src) wins. Neither input is modified.
//
// Both trees are cloned with nested mappings normalized to
// map[string]any, so mappings decoded with the Metadata type merge
// into assembled sections instead of replacing them.
func DeepMerge(dst, src Metadata) (Metadata, error) {
	out := Metadata(cloneTree(dst))
	srcCopy := Metadata(cloneTree(src))
	if err := mergo.Merge(&out, srcCopy, mergo.WithOverride); err != nil {
		return nil, err
	}
	return out, nil
}

func cloneTree(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case Metadata:
		return cloneTree(val)
	case map[string]any:
		return cloneTree(val)
	case []any:
		l := make([]any, len(val))
		for i, inner := range val {
			l[i] = cloneValue(inner)
		}
		return l
	default:
		return val
	}
}
