// Package types defines every cross‑package data structure used by the cloudtree CLI.
package types

import (
	"fmt"
	"strings"
)

const (
	NodeTypeFile      = "file"
	NodeTypeDirectory = "directory"

	FormatRaw  = "raw"
	FormatJSON = "json"
)

const (
	errorUnknownSortByFormat = "unknown sort order %q (expected one of %s)"
	errorUnknownStatFormat   = "unknown statistic %q (expected one of %s)"
)

// SortBy selects the key used to order siblings.
type SortBy string

const (
	SortByNone     SortBy = "none"
	SortByName     SortBy = "name"
	SortBySize     SortBy = "size"
	SortByCreation SortBy = "creation"
	SortByModified SortBy = "modified"
)

// SortByValues lists every supported sort order.
var SortByValues = []SortBy{SortByNone, SortByName, SortBySize, SortByCreation, SortByModified}

// ParseSortBy converts user input into a SortBy value.
func ParseSortBy(input string) (SortBy, error) {
	normalized := SortBy(strings.ToLower(strings.TrimSpace(input)))
	for _, candidate := range SortByValues {
		if candidate == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf(errorUnknownSortByFormat, input, joinValues(SortByValues))
}

// Stat names a per-entry statistic that can be appended to a tree line.
type Stat string

const (
	StatSize     Stat = "size"
	StatCreation Stat = "creation"
	StatModified Stat = "modified"
	// StatAll is expanded into every concrete statistic before rendering.
	StatAll Stat = "all"
)

// ConcreteStats lists the resolvable statistics in display order.
var ConcreteStats = []Stat{StatSize, StatCreation, StatModified}

// ParseStat converts user input into a Stat value.
func ParseStat(input string) (Stat, error) {
	normalized := Stat(strings.ToLower(strings.TrimSpace(input)))
	if normalized == StatAll {
		return StatAll, nil
	}
	for _, candidate := range ConcreteStats {
		if candidate == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf(errorUnknownStatFormat, input, joinValues(append(append([]Stat(nil), ConcreteStats...), StatAll)))
}

// ExpandStats removes duplicates, replaces StatAll with every concrete statistic
// and returns the result in display order.
func ExpandStats(requested []Stat) []Stat {
	wanted := make(map[Stat]struct{}, len(requested))
	for _, stat := range requested {
		if stat == StatAll {
			return append([]Stat(nil), ConcreteStats...)
		}
		wanted[stat] = struct{}{}
	}
	var expanded []Stat
	for _, stat := range ConcreteStats {
		if _, ok := wanted[stat]; ok {
			expanded = append(expanded, stat)
		}
	}
	return expanded
}

func joinValues[Value ~string](values []Value) string {
	parts := make([]string, len(values))
	for index, value := range values {
		parts[index] = string(value)
	}
	return strings.Join(parts, ", ")
}
