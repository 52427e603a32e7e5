package commands

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/temirov/cloudtree/internal/storage"
	"github.com/temirov/cloudtree/internal/types"
)

const errorUnsupportedSortFormat = "unsupported sort order %q"

// Entry is a directory child that survived filtering, classified once.
type Entry struct {
	Path        string
	Name        string
	IsDirectory bool
}

type sortKey struct {
	entry     Entry
	name      string
	size      int64
	timestamp time.Time
	hasTime   bool
}

type timestampLookup func(path string) (time.Time, error)

// SortEntries partitions candidates into directories and files, orders each
// partition by sortBy and returns directories followed by files. Files are
// dropped unless includeFiles is set. Directories are ordered by name when
// sorting by size. A failed timestamp lookup falls back to the entry's
// lower-cased name; a failed size lookup is returned as an error.
func SortEntries(fileSystem storage.FileSystem, candidates []string, includeFiles bool, sortBy types.SortBy, ascending bool) ([]Entry, error) {
	var directories []Entry
	var files []Entry
	for _, candidate := range candidates {
		isDirectory, classifyError := fileSystem.IsDir(candidate)
		if classifyError != nil {
			return nil, classifyError
		}
		entry := Entry{Path: candidate, Name: fileSystem.Name(candidate), IsDirectory: isDirectory}
		if isDirectory {
			directories = append(directories, entry)
		} else if includeFiles {
			files = append(files, entry)
		}
	}

	var directoryKeys, fileKeys []sortKey
	var compareDirectories, compareFiles func(left, right sortKey) int
	switch sortBy {
	case types.SortByNone:
		return append(directories, files...), nil
	case types.SortByName:
		directoryKeys, fileKeys = nameKeys(directories), nameKeys(files)
		compareDirectories, compareFiles = compareNames, compareNames
	case types.SortBySize:
		var sizeError error
		directoryKeys = nameKeys(directories)
		fileKeys, sizeError = sizeKeys(fileSystem, files)
		if sizeError != nil {
			return nil, sizeError
		}
		compareDirectories, compareFiles = compareNames, compareSizes
	case types.SortByCreation:
		directoryKeys, fileKeys = timestampKeys(fileSystem.Created, directories), timestampKeys(fileSystem.Created, files)
		compareDirectories, compareFiles = compareTimestamps, compareTimestamps
	case types.SortByModified:
		directoryKeys, fileKeys = timestampKeys(fileSystem.Modified, directories), timestampKeys(fileSystem.Modified, files)
		compareDirectories, compareFiles = compareTimestamps, compareTimestamps
	default:
		return nil, fmt.Errorf(errorUnsupportedSortFormat, sortBy)
	}
	sortKeys(directoryKeys, compareDirectories, ascending)
	sortKeys(fileKeys, compareFiles, ascending)
	return joinKeys(directoryKeys, fileKeys), nil
}

func nameKeys(entries []Entry) []sortKey {
	keys := make([]sortKey, len(entries))
	for index, entry := range entries {
		keys[index] = sortKey{entry: entry, name: strings.ToLower(entry.Name)}
	}
	return keys
}

func sizeKeys(fileSystem storage.FileSystem, entries []Entry) ([]sortKey, error) {
	keys := nameKeys(entries)
	for index := range keys {
		size, sizeError := fileSystem.Size(keys[index].entry.Path)
		if sizeError != nil {
			return nil, sizeError
		}
		keys[index].size = size
	}
	return keys, nil
}

func timestampKeys(lookup timestampLookup, entries []Entry) []sortKey {
	keys := nameKeys(entries)
	for index := range keys {
		timestamp, lookupError := lookup(keys[index].entry.Path)
		if lookupError != nil {
			continue
		}
		keys[index].timestamp = timestamp
		keys[index].hasTime = true
	}
	return keys
}

func compareNames(left, right sortKey) int {
	return strings.Compare(left.name, right.name)
}

func compareSizes(left, right sortKey) int {
	return cmp.Compare(left.size, right.size)
}

// compareTimestamps orders entries with a timestamp before entries that fell
// back to their name.
func compareTimestamps(left, right sortKey) int {
	switch {
	case left.hasTime && right.hasTime:
		return left.timestamp.Compare(right.timestamp)
	case left.hasTime:
		return -1
	case right.hasTime:
		return 1
	default:
		return compareNames(left, right)
	}
}

func sortKeys(keys []sortKey, compare func(left, right sortKey) int, ascending bool) {
	slices.SortStableFunc(keys, func(left, right sortKey) int {
		if ascending {
			return compare(left, right)
		}
		return compare(right, left)
	})
}

func joinKeys(directoryKeys, fileKeys []sortKey) []Entry {
	ordered := make([]Entry, 0, len(directoryKeys)+len(fileKeys))
	for _, key := range directoryKeys {
		ordered = append(ordered, key.entry)
	}
	for _, key := range fileKeys {
		ordered = append(ordered, key.entry)
	}
	return ordered
}
