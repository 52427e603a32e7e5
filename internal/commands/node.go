package commands

import (
	"strings"

	"github.com/temirov/cloudtree/internal/types"
)

const (
	middleBranch       = "├──"
	lastBranch         = "└──"
	openContinuation   = "│   "
	closedContinuation = "    "
	directorySuffix    = "/"
	statsOpen          = " ("
	statsClose         = ")"
)

// TreeNode is one visited entry. Nodes are produced lazily in pre-order and
// keep a back-reference to their parent so the line prefix can be derived
// without holding the whole tree.
type TreeNode struct {
	Path        string
	Name        string
	Parent      *TreeNode
	Depth       int
	IsLast      bool
	IsDirectory bool

	palette palette
	stats   StatRenderer
}

// IsRoot reports whether the node is the traversal root.
func (node *TreeNode) IsRoot() bool {
	return node.Parent == nil
}

// DisplayName is the root's full path or the entry name, with a trailing
// separator on directories. Colour is applied when enabled.
func (node *TreeNode) DisplayName() string {
	if node.IsRoot() {
		return node.palette.rootPath(node.Path)
	}
	if node.IsDirectory {
		return node.palette.directoryName(node.Name + directorySuffix)
	}
	return node.Name
}

// Prefix returns the continuation columns for every non-root ancestor
// followed by the node's own branch glyph.
func (node *TreeNode) Prefix() string {
	if node.IsRoot() {
		return ""
	}
	var ancestors []*TreeNode
	for ancestor := node.Parent; ancestor != nil && !ancestor.IsRoot(); ancestor = ancestor.Parent {
		ancestors = append(ancestors, ancestor)
	}
	var builder strings.Builder
	for index := len(ancestors) - 1; index >= 0; index-- {
		if ancestors[index].IsLast {
			builder.WriteString(closedContinuation)
		} else {
			builder.WriteString(openContinuation)
		}
	}
	if node.IsLast {
		builder.WriteString(lastBranch)
	} else {
		builder.WriteString(middleBranch)
	}
	builder.WriteString(" ")
	return builder.String()
}

// StatSummary renders the requested statistics for a file node. Directories
// and the root never carry statistics.
func (node *TreeNode) StatSummary(kinds []types.Stat) string {
	if node.IsDirectory || node.IsRoot() || len(kinds) == 0 || node.stats.FileSystem == nil {
		return ""
	}
	return node.stats.Render(node.Path, kinds)
}

// StatValue resolves one unlabelled statistic for a file node.
func (node *TreeNode) StatValue(kind types.Stat) string {
	if node.IsDirectory || node.IsRoot() || node.stats.FileSystem == nil {
		return ""
	}
	return node.stats.Value(kind, node.Path)
}

// FormatLine renders the complete tree line for the node.
func (node *TreeNode) FormatLine(kinds []types.Stat) string {
	line := node.Prefix() + node.DisplayName()
	if summary := node.StatSummary(kinds); summary != "" {
		line += statsOpen + summary + statsClose
	}
	return line
}
