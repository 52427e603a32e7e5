package commands

import (
	"strings"
	"time"

	"github.com/temirov/cloudtree/internal/storage"
	"github.com/temirov/cloudtree/internal/types"
	"github.com/temirov/cloudtree/internal/utils"
)

const statSeparator = " | "

var statLabels = map[types.Stat]string{
	types.StatSize:     "Size: ",
	types.StatCreation: "Created at: ",
	types.StatModified: "Modified at: ",
}

// StatRenderer formats the optional per-file statistics. Lookup failures are
// never reported; the statistic is simply left out.
type StatRenderer struct {
	FileSystem    storage.FileSystem
	RelativeTimes bool
	// Now supplies the reference time for relative timestamps; time.Now when nil.
	Now func() time.Time
}

// Value resolves one statistic for path without its label, returning "" when
// it is unavailable.
func (renderer StatRenderer) Value(kind types.Stat, path string) string {
	switch kind {
	case types.StatSize:
		size, sizeError := renderer.FileSystem.Size(path)
		if sizeError != nil {
			return ""
		}
		return utils.ConvertSize(size)
	case types.StatCreation:
		created, createdError := renderer.FileSystem.Created(path)
		if createdError != nil {
			return ""
		}
		return renderer.formatTimestamp(created)
	case types.StatModified:
		modified, modifiedError := renderer.FileSystem.Modified(path)
		if modifiedError != nil {
			return ""
		}
		return renderer.formatTimestamp(modified)
	default:
		return ""
	}
}

// StatString resolves one labelled statistic for path, returning "" when it
// is unavailable.
func (renderer StatRenderer) StatString(kind types.Stat, path string) string {
	value := renderer.Value(kind, path)
	if value == "" {
		return ""
	}
	return statLabels[kind] + value
}

// Render joins every non-empty statistic for path.
func (renderer StatRenderer) Render(path string, kinds []types.Stat) string {
	var parts []string
	for _, kind := range kinds {
		if statText := renderer.StatString(kind, path); statText != "" {
			parts = append(parts, statText)
		}
	}
	return strings.Join(parts, statSeparator)
}

func (renderer StatRenderer) formatTimestamp(value time.Time) string {
	if !renderer.RelativeTimes {
		return utils.FormatTimestamp(value)
	}
	now := time.Now
	if renderer.Now != nil {
		now = renderer.Now
	}
	return utils.FormatRelativeTimestamp(value, now())
}
