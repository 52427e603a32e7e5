package cli

import (
	"fmt"
	"maps"

	"github.com/spf13/pflag"

	"github.com/temirov/cloudtree/internal/config"
	"github.com/temirov/cloudtree/internal/output"
	"github.com/temirov/cloudtree/internal/storage"
	"github.com/temirov/cloudtree/internal/types"
	"github.com/temirov/cloudtree/internal/utils"
)

const errorNegativeDepthFormat = "depth must not be negative, got %d"

// treeFlagValues receives the raw flag values of one invocation.
type treeFlagValues struct {
	depth             int
	excludes          []string
	excludeRegex      string
	fileSystemOptions []string
	includeFiles      bool
	useGitignore      bool
	includeGit        bool
	stats             []string
	sortBy            string
	ascending         bool
	color             bool
	format            string
	relativeTime      bool
	clipboard         bool
	configPath        string
	verbose           bool
}

// treeSettings is the validated outcome of defaults, configuration and flags.
type treeSettings struct {
	depth             int
	excludes          []string
	excludeRegex      string
	includeFiles      bool
	useGitignore      bool
	includeGit        bool
	stats             []types.Stat
	sortBy            types.SortBy
	ascending         bool
	color             bool
	format            string
	relativeTime      bool
	clipboard         bool
	fileSystemOptions map[string]string
}

// resolveTreeSettings layers configuration over the built-in defaults and
// explicitly set flags over configuration. Backend options come from the
// environment, then configuration, then --fs.
func resolveTreeSettings(flagSet *pflag.FlagSet, values treeFlagValues, configuration config.TreeConfiguration, environmentOptions map[string]string, target string) (treeSettings, error) {
	settings := treeSettings{
		depth:        values.depth,
		excludeRegex: values.excludeRegex,
		includeFiles: values.includeFiles,
		useGitignore: values.useGitignore,
		includeGit:   values.includeGit,
		ascending:    values.ascending,
		color:        values.color,
		relativeTime: values.relativeTime,
		clipboard:    values.clipboard,
	}
	overlayInt(&settings.depth, configuration.Depth, flagSet.Changed(depthFlagName))
	overlayBool(&settings.includeFiles, configuration.Files, booleanFlagChanged(flagSet, filesFlagName, noFilesFlagName))
	overlayBool(&settings.useGitignore, configuration.Paths.UseGitignore, booleanFlagChanged(flagSet, gitignoreFlagName, noGitignoreFlagName))
	overlayBool(&settings.includeGit, configuration.Paths.IncludeGit, flagSet.Changed(includeGitFlagName))
	overlayBool(&settings.ascending, configuration.Ascending, booleanFlagChanged(flagSet, ascendingFlagName, descendingFlagName))
	overlayBool(&settings.color, configuration.Color, booleanFlagChanged(flagSet, colorFlagName, noColorFlagName))
	overlayBool(&settings.relativeTime, configuration.RelativeTime, flagSet.Changed(relativeTimeFlagName))
	overlayBool(&settings.clipboard, configuration.Clipboard, flagSet.Changed(clipboardFlagName))
	if !flagSet.Changed(excludeRegexFlagName) && configuration.Paths.ExcludeRegex != "" {
		settings.excludeRegex = configuration.Paths.ExcludeRegex
	}
	if settings.depth < 0 {
		return treeSettings{}, fmt.Errorf(errorNegativeDepthFormat, settings.depth)
	}

	settings.excludes = utils.DeduplicatePatterns(append(append([]string{}, configuration.Paths.Exclude...), values.excludes...))

	sortByInput := values.sortBy
	if !flagSet.Changed(sortByFlagName) && configuration.SortBy != "" {
		sortByInput = configuration.SortBy
	}
	sortBy, sortByError := types.ParseSortBy(sortByInput)
	if sortByError != nil {
		return treeSettings{}, sortByError
	}
	settings.sortBy = sortBy

	statInputs := values.stats
	if !flagSet.Changed(statFlagName) {
		statInputs = configuration.Stats
	}
	requestedStats := make([]types.Stat, 0, len(statInputs))
	for _, statInput := range statInputs {
		stat, statError := types.ParseStat(statInput)
		if statError != nil {
			return treeSettings{}, statError
		}
		requestedStats = append(requestedStats, stat)
	}
	settings.stats = types.ExpandStats(requestedStats)

	formatInput := values.format
	if !flagSet.Changed(formatFlagName) && configuration.Format != "" {
		formatInput = configuration.Format
	}
	format, formatError := output.ParseFormat(formatInput)
	if formatError != nil {
		return treeSettings{}, formatError
	}
	settings.format = format

	settings.fileSystemOptions = make(map[string]string)
	maps.Copy(settings.fileSystemOptions, storage.FilterOptions(target, environmentOptions))
	maps.Copy(settings.fileSystemOptions, storage.FilterOptions(target, configuration.FileSystem))
	maps.Copy(settings.fileSystemOptions, storage.ParseOptions(values.fileSystemOptions))
	return settings, nil
}

func overlayBool(target *bool, configured *bool, flagChanged bool) {
	if flagChanged || configured == nil {
		return
	}
	*target = *configured
}

func overlayInt(target *int, configured *int, flagChanged bool) {
	if flagChanged || configured == nil {
		return
	}
	*target = *configured
}
