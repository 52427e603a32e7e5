package output

import (
	"bufio"
	"io"

	"github.com/temirov/cloudtree/internal/commands"
	"github.com/temirov/cloudtree/internal/types"
)

type rawRenderer struct {
	writer *bufio.Writer
	stats  []types.Stat
}

// NewRawRenderer writes one formatted tree line per node.
func NewRawRenderer(writer io.Writer, stats []types.Stat) NodeRenderer {
	return &rawRenderer{writer: bufio.NewWriter(writer), stats: stats}
}

func (renderer *rawRenderer) Render(node *commands.TreeNode) error {
	if node == nil {
		return nil
	}
	if _, writeError := renderer.writer.WriteString(node.FormatLine(renderer.stats)); writeError != nil {
		return writeError
	}
	return renderer.writer.WriteByte('\n')
}

func (renderer *rawRenderer) Flush() error {
	return renderer.writer.Flush()
}
