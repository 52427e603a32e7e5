// Package output writes tree nodes to a text sink as they are produced.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/temirov/cloudtree/internal/commands"
	"github.com/temirov/cloudtree/internal/types"
)

const errorUnsupportedFormat = "unsupported format %q (expected %s or %s)"

// NodeRenderer receives nodes in traversal order. Flush is called once after
// the last node, including when the traversal stopped on an error.
type NodeRenderer interface {
	Render(node *commands.TreeNode) error
	Flush() error
}

// ParseFormat validates an output format name.
func ParseFormat(input string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	switch normalized {
	case types.FormatRaw, types.FormatJSON:
		return normalized, nil
	default:
		return "", fmt.Errorf(errorUnsupportedFormat, input, types.FormatRaw, types.FormatJSON)
	}
}

// NewRenderer returns the renderer for format writing to writer.
func NewRenderer(format string, writer io.Writer, stats []types.Stat) (NodeRenderer, error) {
	parsedFormat, parseError := ParseFormat(format)
	if parseError != nil {
		return nil, parseError
	}
	if parsedFormat == types.FormatJSON {
		return NewJSONRenderer(writer, stats), nil
	}
	return NewRawRenderer(writer, stats), nil
}
