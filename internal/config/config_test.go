package config

import (
	"reflect"
	"testing"

	"github.com/spf13/afero"
)

func TestParseIgnoreLines(t *testing.T) {
	testCases := []struct {
		name     string
		lines    []string
		expected []string
	}{
		{
			name:     "blanks_and_comments_dropped",
			lines:    []string{"", "# comment", "*.log", "\t", "   "},
			expected: []string{"*.log"},
		},
		{
			name:     "trailing_spaces_removed",
			lines:    []string{"build/  ", "dist/\r"},
			expected: []string{"build/", "dist/"},
		},
		{
			name:     "escaped_trailing_space_kept",
			lines:    []string{`foo\ `, `bar\   `},
			expected: []string{`foo\ `, `bar\ `},
		},
		{
			name:     "leading_whitespace_is_part_of_the_pattern",
			lines:    []string{"  build/", "   #not a comment"},
			expected: []string{"  build/", "   #not a comment"},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			patterns := ParseIgnoreLines(testCase.lines)
			if !reflect.DeepEqual(patterns, testCase.expected) {
				t.Fatalf("unexpected patterns: got %q want %q", patterns, testCase.expected)
			}
		})
	}
}

func TestLoadGlobalExcludePatterns(t *testing.T) {
	const workingDirectory = "/work"

	testCases := []struct {
		name              string
		gitignoreContent  string
		exclusionPatterns []string
		useGitignore      bool
		includeGit        bool
		expected          []string
	}{
		{
			name:             "gitignore_and_git_directory",
			gitignoreContent: "dist/\n# generated\n*.tmp\n\ndist/\n",
			useGitignore:     true,
			expected:         []string{"dist/", "*.tmp", gitDirectoryPattern},
		},
		{
			name:             "gitignore_disabled",
			gitignoreContent: "dist/\n",
			useGitignore:     false,
			expected:         []string{gitDirectoryPattern},
		},
		{
			name:             "include_git",
			gitignoreContent: "dist/\n",
			useGitignore:     true,
			includeGit:       true,
			expected:         []string{"dist/"},
		},
		{
			name:              "missing_gitignore_with_user_patterns",
			useGitignore:      true,
			exclusionPatterns: []string{" vendor ", "", gitDirectoryPattern, "node_modules/"},
			expected:          []string{gitDirectoryPattern, "vendor", "node_modules/"},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			memory := afero.NewMemMapFs()
			if err := memory.MkdirAll(workingDirectory, 0o755); err != nil {
				t.Fatalf("mkdir: %v", err)
			}
			if testCase.gitignoreContent != "" {
				if err := afero.WriteFile(memory, workingDirectory+"/.gitignore", []byte(testCase.gitignoreContent), 0o644); err != nil {
					t.Fatalf("write .gitignore: %v", err)
				}
			}
			patterns, loadError := LoadGlobalExcludePatterns(memory, workingDirectory, testCase.exclusionPatterns, testCase.useGitignore, testCase.includeGit)
			if loadError != nil {
				t.Fatalf("LoadGlobalExcludePatterns error: %v", loadError)
			}
			if !reflect.DeepEqual(patterns, testCase.expected) {
				t.Fatalf("unexpected patterns: got %v want %v", patterns, testCase.expected)
			}
		})
	}
}

func TestLoadIgnoreFilePatternsMissingFile(t *testing.T) {
	patterns, loadError := LoadIgnoreFilePatterns(afero.NewMemMapFs(), "/absent/.gitignore")
	if loadError != nil {
		t.Fatalf("expected no error for a missing file, got %v", loadError)
	}
	if len(patterns) != 0 {
		t.Fatalf("expected no patterns, got %v", patterns)
	}
}
