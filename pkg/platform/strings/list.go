// Package strings holds helpers for list-valued inputs such as repeated query
// parameters and flags.
package strings

import (
	"strings"
)

// SplitList flattens values that may each carry several sep-separated items.
// Items are trimmed and lower-cased; empties and duplicates are dropped and
// first-seen order is kept.
//
// Example:
//
//	SplitList([]string{"0xAA, 0xbb", "0xaa", " "}, ",")
//	// Returns: []string{"0xaa", "0xbb"}
func SplitList(values []string, sep string) []string {
	if len(values) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(values))
	var result []string
	for _, v := range values {
		for _, item := range strings.Split(v, sep) {
			item = strings.ToLower(strings.TrimSpace(item))
			if item == "" {
				continue
			}
			if _, ok := seen[item]; ok {
				continue
			}
			seen[item] = struct{}{}
			result = append(result, item)
		}
	}
	return result
}
