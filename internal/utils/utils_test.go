package utils

import (
	"reflect"
	"runtime/debug"
	"testing"
)

func TestDeduplicatePatterns(t *testing.T) {
	testCases := []struct {
		name     string
		input    []string
		expected []string
	}{
		{name: "empty", input: nil, expected: []string{}},
		{name: "keeps_first_occurrence", input: []string{"b", "a", "b", "c", "a"}, expected: []string{"b", "a", "c"}},
		{name: "no_duplicates", input: []string{".git/", "*.log"}, expected: []string{".git/", "*.log"}},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			result := DeduplicatePatterns(testCase.input)
			if !reflect.DeepEqual(result, testCase.expected) {
				t.Fatalf("expected %v, got %v", testCase.expected, result)
			}
		})
	}
}

func TestContainsString(t *testing.T) {
	if !ContainsString([]string{"a", "b"}, "b") {
		t.Fatalf("expected b to be found")
	}
	if ContainsString([]string{"a", "b"}, "c") {
		t.Fatalf("did not expect c to be found")
	}
}

func TestVersionFromBuildInfo(t *testing.T) {
	testCases := []struct {
		name     string
		info     debug.BuildInfo
		expected string
	}{
		{
			name:     "tagged_module",
			info:     debug.BuildInfo{Main: debug.Module{Version: "v1.2.3"}},
			expected: "v1.2.3",
		},
		{
			name: "devel_with_revision",
			info: debug.BuildInfo{
				Main: debug.Module{Version: "(devel)"},
				Settings: []debug.BuildSetting{
					{Key: "vcs.revision", Value: "0123456789abcdef0123"},
					{Key: "vcs.modified", Value: "true"},
				},
			},
			expected: "devel-0123456789ab-dirty",
		},
		{
			name:     "devel_without_revision",
			info:     debug.BuildInfo{Main: debug.Module{Version: "(devel)"}},
			expected: "unknown",
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			result := versionFromBuildInfo(&testCase.info)
			if result != testCase.expected {
				t.Fatalf("expected %s, got %s", testCase.expected, result)
			}
		})
	}
}
