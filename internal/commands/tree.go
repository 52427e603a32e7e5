// Package commands contains the tree traversal engine: filtering, ordering,
// lazy node generation and line rendering.
package commands

import (
	"fmt"
	"io/fs"
	"iter"

	"go.uber.org/zap"

	"github.com/temirov/cloudtree/internal/config"
	"github.com/temirov/cloudtree/internal/utils"
)

const (
	errorResolvePathFormat   = "resolving %s: %w"
	errorClassifyPathFormat  = "checking %s: %w"
	errorReadDirectoryFormat = "reading directory %s: %w"
	errorOrderEntriesFormat  = "ordering entries of %s: %w"

	debugLocalIgnoreUnreadable = "local ignore file unreadable"
	debugSymlinkCycle          = "directory already on the current path, not descending"
)

// Build returns a depth-first, pre-order sequence of nodes rooted at root.
// Nothing is read from the file system until the sequence is pulled, and
// breaking out of the range stops any further file system access. A
// structural error is yielded once with a nil node and ends the sequence.
func (treeBuilder *TreeBuilder) Build(root string) iter.Seq2[*TreeNode, error] {
	return func(yield func(*TreeNode, error) bool) {
		resolvedRoot, resolveError := treeBuilder.FileSystem.Resolve(root)
		if resolveError != nil {
			yield(nil, fmt.Errorf(errorResolvePathFormat, root, resolveError))
			return
		}
		isDirectory, classifyError := treeBuilder.FileSystem.IsDir(resolvedRoot)
		if classifyError != nil {
			yield(nil, fmt.Errorf(errorClassifyPathFormat, resolvedRoot, classifyError))
			return
		}
		if !isDirectory {
			isFile, fileError := treeBuilder.FileSystem.IsFile(resolvedRoot)
			if fileError != nil {
				yield(nil, fmt.Errorf(errorClassifyPathFormat, resolvedRoot, fileError))
				return
			}
			if !isFile {
				yield(nil, fmt.Errorf(errorClassifyPathFormat, resolvedRoot, fs.ErrNotExist))
				return
			}
			yield(treeBuilder.newNode(resolvedRoot, nil, true, false), nil)
			return
		}
		treeBuilder.walkDirectory(resolvedRoot, nil, true, yield)
	}
}

// walkDirectory yields the directory node and its subtree. It returns false
// once the consumer has stopped or an error has been delivered.
func (treeBuilder *TreeBuilder) walkDirectory(directoryPath string, parent *TreeNode, isLast bool, yield func(*TreeNode, error) bool) bool {
	resolvedPath, resolveError := treeBuilder.FileSystem.Resolve(directoryPath)
	if resolveError != nil {
		yield(nil, fmt.Errorf(errorResolvePathFormat, directoryPath, resolveError))
		return false
	}
	node := treeBuilder.newNode(resolvedPath, parent, isLast, true)
	if !yield(node, nil) {
		return false
	}
	if treeBuilder.Options.MaxDepth > 0 && node.Depth >= treeBuilder.Options.MaxDepth {
		return true
	}
	if onAncestorPath(node) {
		treeBuilder.Logger.Debug(debugSymlinkCycle, zap.String("path", resolvedPath))
		return true
	}

	childPaths, listError := treeBuilder.FileSystem.List(resolvedPath)
	if listError != nil {
		yield(nil, fmt.Errorf(errorReadDirectoryFormat, resolvedPath, listError))
		return false
	}
	filter := NewEntryFilter(treeBuilder.levelPatterns(node), treeBuilder.expression)
	candidates := make([]string, 0, len(childPaths))
	for _, childPath := range childPaths {
		if filter.Matches(treeBuilder.FileSystem.Name(childPath)) {
			continue
		}
		candidates = append(candidates, childPath)
	}
	entries, sortError := SortEntries(treeBuilder.FileSystem, candidates, treeBuilder.Options.IncludeFiles, treeBuilder.Options.SortBy, treeBuilder.Options.Ascending)
	if sortError != nil {
		yield(nil, fmt.Errorf(errorOrderEntriesFormat, resolvedPath, sortError))
		return false
	}

	for index, entry := range entries {
		childIsLast := index == len(entries)-1
		if entry.IsDirectory {
			if !treeBuilder.walkDirectory(entry.Path, node, childIsLast, yield) {
				return false
			}
			continue
		}
		if !yield(treeBuilder.newNode(entry.Path, node, childIsLast, false), nil) {
			return false
		}
	}
	return true
}

// levelPatterns combines the global patterns with the ignore file found
// directly inside a non-root directory. The local lines apply to this
// directory's children only.
func (treeBuilder *TreeBuilder) levelPatterns(node *TreeNode) []string {
	patterns := treeBuilder.Options.ExcludePatterns
	if node.IsRoot() || !treeBuilder.Options.IncludeGitignore {
		return patterns
	}
	ignoreFilePath := treeBuilder.FileSystem.Join(node.Path, utils.GitIgnoreFileName)
	isFile, classifyError := treeBuilder.FileSystem.IsFile(ignoreFilePath)
	if classifyError != nil || !isFile {
		return patterns
	}
	lines, readError := treeBuilder.FileSystem.ReadLines(ignoreFilePath)
	if readError != nil {
		treeBuilder.Logger.Debug(debugLocalIgnoreUnreadable, zap.String("path", ignoreFilePath), zap.Error(readError))
		return patterns
	}
	localPatterns := config.ParseIgnoreLines(lines)
	if len(localPatterns) == 0 {
		return patterns
	}
	combined := make([]string, 0, len(patterns)+len(localPatterns))
	combined = append(combined, patterns...)
	return append(combined, localPatterns...)
}

func (treeBuilder *TreeBuilder) newNode(nodePath string, parent *TreeNode, isLast bool, isDirectory bool) *TreeNode {
	depth := 0
	if parent != nil {
		depth = parent.Depth + 1
	}
	return &TreeNode{
		Path:        nodePath,
		Name:        treeBuilder.FileSystem.Name(nodePath),
		Parent:      parent,
		Depth:       depth,
		IsLast:      isLast,
		IsDirectory: isDirectory,
		palette:     treeBuilder.palette,
		stats:       treeBuilder.statRenderer(),
	}
}

func onAncestorPath(node *TreeNode) bool {
	for ancestor := node.Parent; ancestor != nil; ancestor = ancestor.Parent {
		if ancestor.Path == node.Path {
			return true
		}
	}
	return false
}
