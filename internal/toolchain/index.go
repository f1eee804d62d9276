package toolchain

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
)

// Entry maps platform keys (and auxiliary fields such as "date") to their raw
// JSON values.
type Entry map[string]json.RawMessage

// Index maps version labels to their entries. Labels are semantic versions or
// special names such as "master".
type Index map[string]Entry

// Versions returns every label in the index, sorted.
func (idx Index) Versions() []string {
	versions := make([]string, 0, len(idx))
	for v := range idx {
		versions = append(versions, v)
	}
	sort.Strings(versions)
	return versions
}

// ParseIndex decodes an index document. The top level must be an object whose
// values are objects.
func ParseIndex(data []byte) (Index, error) {
	var idx Index
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if idx == nil {
		return nil, fmt.Errorf("%w: document is not an object", ErrParse)
	}
	return idx, nil
}

// FetchIndex downloads and parses the version index at url.
func FetchIndex(ctx context.Context, client *Client, url string) (Index, error) {
	data, err := client.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	idx, err := ParseIndex(data)
	if err != nil {
		return nil, fmt.Errorf("convert response from %s to json: %w", url, err)
	}
	return idx, nil
}
