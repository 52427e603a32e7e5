package commands

import (
	"fmt"

	"github.com/dlclark/regexp2"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

const (
	// pathSeparatorSuffix is appended to candidate names so directory-only
	// patterns and expressions see every candidate as a directory.
	pathSeparatorSuffix = "/"

	anchoredExpressionFormat = `\A(?:%s)`
	errorCompileRegexFormat  = "compile exclude regex %q: %w"
)

// EntryFilter decides whether a candidate name is excluded at one directory level.
type EntryFilter struct {
	matcher    gitignore.Matcher
	expression *regexp2.Regexp
}

// CompileExcludeExpression compiles the exclusion regex. The expression is
// anchored at the start of the candidate. An empty expression yields a nil
// *regexp2.Regexp and no error; EntryFilter treats nil as never matching.
func CompileExcludeExpression(expression string) (*regexp2.Regexp, error) {
	if expression == "" {
		return nil, nil
	}
	compiled, compileError := regexp2.Compile(fmt.Sprintf(anchoredExpressionFormat, expression), regexp2.None)
	if compileError != nil {
		return nil, fmt.Errorf(errorCompileRegexFormat, expression, compileError)
	}
	return compiled, nil
}

// NewEntryFilter builds a filter from gitignore-style patterns, which must
// already be free of blank lines and comments, and an optional compiled expression.
func NewEntryFilter(patterns []string, expression *regexp2.Regexp) EntryFilter {
	parsedPatterns := make([]gitignore.Pattern, 0, len(patterns))
	for _, pattern := range patterns {
		parsedPatterns = append(parsedPatterns, gitignore.ParsePattern(pattern, nil))
	}
	return EntryFilter{
		matcher:    gitignore.NewMatcher(parsedPatterns),
		expression: expression,
	}
}

// Matches reports whether name is excluded by the patterns or the expression.
func (filter EntryFilter) Matches(name string) bool {
	if filter.matcher != nil && filter.matcher.Match([]string{name}, true) {
		return true
	}
	// nil: no expression configured
	if filter.expression == nil {
		return false
	}
	matched, matchError := filter.expression.MatchString(name + pathSeparatorSuffix)
	return matchError == nil && matched
}
