package keyrange

import (
	"fmt"
	"maps"

	"github.com/ohler55/ojg/jp"
)

// Select returns the objects matched by a JSONPath selector in a decoded
// document. An empty selector or "$" selects the root.
func Select(root any, selector string) ([]map[string]any, error) {
	if selector == "" {
		selector = "$"
	}

	x, err := jp.ParseString(selector)
	if err != nil {
		return nil, fmt.Errorf("invalid jsonpath '%s': %w", selector, err)
	}

	results := x.Get(root)

	records := make([]map[string]any, 0, len(results))
	for _, r := range results {
		m, ok := r.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: %s matched %T, want object", ErrMalformedRecord, selector, r)
		}
		records = append(records, m)
	}
	return records, nil
}

// TranslateAll selects records from root and translates each in place.
// Either every selected record is translated or, on error, none is.
func TranslateAll(root any, selector string) error {
	records, err := Select(root, selector)
	if err != nil {
		return err
	}

	// TranslateRecord only replaces top level keys, so shallow copies
	// keep the originals intact until every record has succeeded.
	translated := make([]map[string]any, len(records))
	for i, rec := range records {
		if translated[i], err = TranslateRecord(maps.Clone(rec)); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
	}

	for i, rec := range records {
		for k, v := range translated[i] {
			rec[k] = v
		}
	}
	return nil
}
