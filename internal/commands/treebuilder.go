package commands

import (
	"time"

	"github.com/dlclark/regexp2"
	"go.uber.org/zap"

	"github.com/temirov/cloudtree/internal/storage"
	"github.com/temirov/cloudtree/internal/types"
)

// TreeOptions carries the immutable configuration threaded through every
// level of a traversal.
type TreeOptions struct {
	// MaxDepth stops descent once a node reaches this depth; zero is unbounded.
	MaxDepth int
	// ExcludePatterns are gitignore-style patterns applied at every level.
	ExcludePatterns []string
	// ExcludeExpression is an optional regular expression matched against
	// each candidate name with a trailing separator.
	ExcludeExpression string
	IncludeFiles      bool
	// IncludeGitignore honours a .gitignore found directly inside a
	// non-root directory for that directory's children.
	IncludeGitignore bool
	SortBy           types.SortBy
	Ascending        bool
	ColorEnabled     bool
	RelativeTimes    bool
}

// TreeBuilder walks a storage.FileSystem and produces tree nodes lazily.
type TreeBuilder struct {
	FileSystem storage.FileSystem
	Options    TreeOptions
	Logger     *zap.Logger
	// Now is the clock used for relative timestamps.
	Now func() time.Time

	expression *regexp2.Regexp
	palette    palette
}

// NewTreeBuilder validates options and prepares a builder for fileSystem.
func NewTreeBuilder(fileSystem storage.FileSystem, options TreeOptions, logger *zap.Logger) (*TreeBuilder, error) {
	expression, compileError := CompileExcludeExpression(options.ExcludeExpression)
	if compileError != nil {
		return nil, compileError
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if options.SortBy == "" {
		options.SortBy = types.SortByName
	}
	return &TreeBuilder{
		FileSystem: fileSystem,
		Options:    options,
		Logger:     logger,
		Now:        time.Now,
		expression: expression,
		palette:    newPalette(options.ColorEnabled),
	}, nil
}

func (treeBuilder *TreeBuilder) statRenderer() StatRenderer {
	return StatRenderer{
		FileSystem:    treeBuilder.FileSystem,
		RelativeTimes: treeBuilder.Options.RelativeTimes,
		Now:           treeBuilder.Now,
	}
}
