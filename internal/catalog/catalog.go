// Package catalog holds the in-memory list of remote repositories and the
// filtering and selection operations the sync workflow applies to it.
package catalog

import (
	"fmt"
	"strings"
)

// Identifier names a remote repository as an owner/name pair.
// Immutable once fetched.
type Identifier struct {
	Owner string
	Name  string
}

// ParseIdentifier parses an "owner/name" string into an Identifier.
func ParseIdentifier(fullName string) (Identifier, error) {
	parts := strings.SplitN(fullName, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Identifier{}, fmt.Errorf("invalid repository identifier %q: expected owner/name", fullName)
	}
	return Identifier{Owner: parts[0], Name: parts[1]}, nil
}

// String returns the canonical "owner/name" form.
func (id Identifier) String() string {
	return id.Owner + "/" + id.Name
}

// FolderName returns the local folder name the repository clones into.
// This derivation must match the name used by the local collision check.
func (id Identifier) FolderName() string {
	return id.Name
}

// FilterExcludingLocal returns the entries whose folder name is not present in
// the supplied set of existing local folder names. Pure and order-preserving;
// the existing-name set is expected precomputed (see LocalFolderNames).
func FilterExcludingLocal(entries []Identifier, existing map[string]struct{}) []Identifier {
	if len(existing) == 0 {
		return entries
	}
	filtered := make([]Identifier, 0, len(entries))
	for _, entry := range entries {
		if _, found := existing[entry.FolderName()]; found {
			continue
		}
		filtered = append(filtered, entry)
	}
	return filtered
}

// FilterByName returns the entries whose full owner/name string contains the
// given substring, case-insensitively. An empty substring returns the input
// unchanged. Pure and order-preserving.
func FilterByName(entries []Identifier, substring string) []Identifier {
	if substring == "" {
		return entries
	}
	needle := strings.ToLower(substring)
	filtered := make([]Identifier, 0, len(entries))
	for _, entry := range entries {
		if strings.Contains(strings.ToLower(entry.String()), needle) {
			filtered = append(filtered, entry)
		}
	}
	return filtered
}
