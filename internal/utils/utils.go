// Package utils contains general helper functions used across cloudtree.
package utils

// Ignore file and configuration constants used across the project.
const (
	// GitIgnoreFileName is the name of the Git ignore file.
	GitIgnoreFileName = ".gitignore"
	// GitDirectoryName is the name of the Git repository directory.
	GitDirectoryName = ".git"
	// ConfigFileName is the name of the configuration file in the working directory.
	ConfigFileName = ".cloudtree.yaml"
	// GlobalConfigFileName is the name of the configuration file in the global directory.
	GlobalConfigFileName = "config.yaml"
	// GlobalConfigDirectoryName is the configuration directory below the user's home.
	GlobalConfigDirectoryName = ".cloudtree"
	// EnvironmentFileName is the dotenv file consulted for backend options.
	EnvironmentFileName = ".env"
	// FileSystemEnvironmentPrefix prefixes environment variables carrying backend options.
	FileSystemEnvironmentPrefix = "CLOUDTREE_FS_"
)

// DeduplicatePatterns removes duplicate patterns from a slice while preserving order.
// The first occurrence of each unique pattern is kept.
func DeduplicatePatterns(patterns []string) []string {
	encounteredPatterns := make(map[string]struct{})
	result := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		if _, exists := encounteredPatterns[pattern]; !exists {
			encounteredPatterns[pattern] = struct{}{}
			result = append(result, pattern)
		}
	}
	return result
}

// ContainsString checks if a slice of strings contains a specific target string.
func ContainsString(stringSlice []string, targetString string) bool {
	for _, currentString := range stringSlice {
		if currentString == targetString {
			return true
		}
	}
	return false
}
