// Package config loads ignore patterns and application configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/temirov/cloudtree/internal/utils"
)

const (
	// gitDirectoryPattern represents the pattern that matches the Git directory.
	gitDirectoryPattern  = utils.GitDirectoryName + "/"
	commentPrefix        = "#"
	carriageReturn       = "\r"
	trailingSpace        = " "
	escapedTrailingSpace = `\ `

	errorLoadIgnoreFileFormat = "loading %s from %s: %w"
)

// ParseIgnoreLines drops blank lines and comments the way git reads an ignore
// file. Leading whitespace is part of a pattern; trailing spaces are removed
// unless escaped with a backslash.
func ParseIgnoreLines(lines []string) []string {
	var patterns []string
	for _, line := range lines {
		trimmedLine := trimTrailingSpaces(strings.TrimSuffix(line, carriageReturn))
		if strings.TrimSpace(trimmedLine) == "" || strings.HasPrefix(trimmedLine, commentPrefix) {
			continue
		}
		patterns = append(patterns, trimmedLine)
	}
	return patterns
}

func trimTrailingSpaces(line string) string {
	for strings.HasSuffix(line, trailingSpace) && !strings.HasSuffix(line, escapedTrailingSpace) {
		line = strings.TrimSuffix(line, trailingSpace)
	}
	return line
}

// LoadIgnoreFilePatterns reads an ignore file from fileSystem. A missing file
// yields no patterns.
func LoadIgnoreFilePatterns(fileSystem afero.Fs, ignoreFilePath string) ([]string, error) {
	content, readError := afero.ReadFile(fileSystem, ignoreFilePath)
	if readError != nil {
		if errors.Is(readError, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, readError
	}
	return ParseIgnoreLines(strings.Split(string(content), "\n")), nil
}

// LoadGlobalExcludePatterns builds the exclusion set applied at every level of
// a traversal: the working directory's .gitignore when useGitignore is set,
// the Git directory unless includeGit is set, then exclusionPatterns.
func LoadGlobalExcludePatterns(fileSystem afero.Fs, workingDirectory string, exclusionPatterns []string, useGitignore bool, includeGit bool) ([]string, error) {
	var combinedPatterns []string

	if useGitignore {
		gitIgnoreFilePath := filepath.Join(workingDirectory, utils.GitIgnoreFileName)
		gitIgnoreFilePatterns, loadError := LoadIgnoreFilePatterns(fileSystem, gitIgnoreFilePath)
		if loadError != nil {
			return nil, fmt.Errorf(errorLoadIgnoreFileFormat, utils.GitIgnoreFileName, workingDirectory, loadError)
		}
		combinedPatterns = append(combinedPatterns, gitIgnoreFilePatterns...)
	}

	if !includeGit {
		combinedPatterns = append(combinedPatterns, gitDirectoryPattern)
	}

	deduplicatedPatterns := utils.DeduplicatePatterns(combinedPatterns)

	for _, exclusionPattern := range exclusionPatterns {
		pattern := strings.TrimSpace(exclusionPattern)
		if pattern == "" || utils.ContainsString(deduplicatedPatterns, pattern) {
			continue
		}
		deduplicatedPatterns = append(deduplicatedPatterns, pattern)
	}

	return deduplicatedPatterns, nil
}
