package output

import (
	"encoding/json"
	"io"

	"github.com/temirov/cloudtree/internal/commands"
	"github.com/temirov/cloudtree/internal/types"
)

type jsonNodePayload struct {
	Path     string `json:"path"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Depth    int    `json:"depth"`
	IsLast   bool   `json:"isLast"`
	Size     string `json:"size,omitempty"`
	Created  string `json:"created,omitempty"`
	Modified string `json:"modified,omitempty"`
}

type jsonRenderer struct {
	encoder *json.Encoder
	stats   []types.Stat
}

// NewJSONRenderer writes one JSON object per node, newline delimited.
func NewJSONRenderer(writer io.Writer, stats []types.Stat) NodeRenderer {
	encoder := json.NewEncoder(writer)
	encoder.SetEscapeHTML(false)
	return &jsonRenderer{encoder: encoder, stats: stats}
}

func (renderer *jsonRenderer) Render(node *commands.TreeNode) error {
	if node == nil {
		return nil
	}
	payload := jsonNodePayload{
		Path:   node.Path,
		Name:   node.Name,
		Type:   types.NodeTypeFile,
		Depth:  node.Depth,
		IsLast: node.IsLast,
	}
	if node.IsDirectory {
		payload.Type = types.NodeTypeDirectory
	}
	for _, kind := range renderer.stats {
		value := node.StatValue(kind)
		switch kind {
		case types.StatSize:
			payload.Size = value
		case types.StatCreation:
			payload.Created = value
		case types.StatModified:
			payload.Modified = value
		}
	}
	return renderer.encoder.Encode(payload)
}

func (renderer *jsonRenderer) Flush() error {
	return nil
}
