package domain

import (
	"regexp"
	"slices"
	"strings"

	dErrors "nameplate/pkg/domain-errors"
)

// SchemaUID identifies an EAS attestation schema (32-byte hex).
// Canonical form is lower-case with a 0x prefix so set membership checks are
// insensitive to how the index or the configuration spelled it.
type SchemaUID string

var schemaUIDPattern = regexp.MustCompile(`^0x[0-9a-f]{64}$`)

// ParseSchemaUID validates and canonicalizes a schema UID.
func ParseSchemaUID(s string) (SchemaUID, error) {
	lower := strings.ToLower(strings.TrimSpace(s))
	if !schemaUIDPattern.MatchString(lower) {
		return "", dErrors.New(dErrors.CodeInvalidInput, "schema uid must be 0x followed by 64 hex characters")
	}
	return SchemaUID(lower), nil
}

// MustSchemaUID parses a schema UID, panicking if invalid.
func MustSchemaUID(s string) SchemaUID {
	uid, err := ParseSchemaUID(s)
	if err != nil {
		panic(err)
	}
	return uid
}

// String returns the canonical form.
func (u SchemaUID) String() string {
	return string(u)
}

// SchemaSet is an unordered set of schema UIDs.
type SchemaSet map[SchemaUID]struct{}

// NewSchemaSet builds a set from the given UIDs.
func NewSchemaSet(uids ...SchemaUID) SchemaSet {
	s := make(SchemaSet, len(uids))
	for _, u := range uids {
		s[u] = struct{}{}
	}
	return s
}

// Contains reports membership.
func (s SchemaSet) Contains(uid SchemaUID) bool {
	_, ok := s[uid]
	return ok
}

// Intersect returns the members of requested that are also in s, preserving
// the order of requested. An empty requested list selects every member of s.
func (s SchemaSet) Intersect(requested []SchemaUID) []SchemaUID {
	if len(requested) == 0 {
		return s.Sorted()
	}
	out := make([]SchemaUID, 0, len(requested))
	seen := make(map[SchemaUID]bool, len(requested))
	for _, r := range requested {
		if s.Contains(r) && !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}
	return out
}

// Sorted returns the members in lexical order.
func (s SchemaSet) Sorted() []SchemaUID {
	out := make([]SchemaUID, 0, len(s))
	for u := range s {
		out = append(out, u)
	}
	slices.Sort(out)
	return out
}

// SchemaSelectionKey returns a stable string for a schema selection, sorted
// and deduplicated. An empty selection yields "".
func SchemaSelectionKey(uids []SchemaUID) string {
	if len(uids) == 0 {
		return ""
	}
	sorted := NewSchemaSet(uids...).Sorted()
	parts := make([]string, len(sorted))
	for i, u := range sorted {
		parts[i] = string(u)
	}
	return strings.Join(parts, ",")
}
