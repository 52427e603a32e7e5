// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/cloudtree/internal/services/clipboard"
	"github.com/temirov/cloudtree/internal/types"
	"github.com/temirov/cloudtree/internal/utils"
)

const (
	rootUse              = "cloudtree <dir>"
	rootShortDescription = "render a directory tree from local disk or a storage backend"
	rootLongDescription  = `cloudtree prints the tree of a directory on local disk or in a storage backend.
Entries can be excluded with gitignore patterns or a regular expression, limited by depth,
ordered by name, size, creation or modification time, and annotated with statistics.
Use --fs key=value to pass backend options, e.g. --fs database=index.db for sqlite:// targets.`
	rootUsageExample = `  # Two levels of the current directory, files included
  cloudtree -d 2 -f .

  # Largest files first with their sizes
  cloudtree -f -s size --descending --stat size ./data

  # A directory stored in a SQLite object index
  cloudtree -f --fs database=index.db sqlite:///bucket`

	depthFlagName           = "depth"
	depthFlagShorthand      = "d"
	excludeFlagName         = "exclude"
	excludeFlagShorthand    = "e"
	excludeRegexFlagName    = "exclude-regex"
	fileSystemFlagName      = "fs"
	filesFlagName           = "files"
	filesFlagShorthand      = "f"
	noFilesFlagName         = "no-files"
	gitignoreFlagName       = "gitignore"
	noGitignoreFlagName     = "no-gitignore"
	includeGitFlagName      = "git"
	statFlagName            = "stat"
	sortByFlagName          = "sort-by"
	sortByFlagShorthand     = "s"
	ascendingFlagName       = "ascending"
	descendingFlagName      = "descending"
	colorFlagName           = "color"
	colorFlagShorthand      = "c"
	noColorFlagName         = "no-color"
	formatFlagName          = "format"
	relativeTimeFlagName    = "relative-time"
	clipboardFlagName       = "clipboard"
	configFlagName          = "config"
	verboseFlagName         = "verbose"
	verboseFlagShorthand    = "v"
	versionFlagName         = "version"
	versionTemplate         = "cloudtree version: %s\n"
	defaultDepth            = 0
	defaultIncludeFiles     = false
	defaultUseGitignore     = true
	defaultIncludeGit       = false
	defaultAscending        = true
	defaultColor            = true
	defaultRelativeTime     = false
	defaultClipboard        = false
	defaultOutputFormat     = types.FormatRaw
	defaultSortBy           = types.SortByName
	depthFlagDescription    = "tree depth; 0 is unbounded, 1 prints only the first level"
	excludeFlagDescription  = "exclude entries matching a .gitignore-style pattern (repeatable)"
	excludeRegexDescription = "exclude entries whose name followed by / matches this regular expression"
	fileSystemDescription   = "backend option as key=value (repeatable)"
	filesFlagDescription    = "include files, not only directories"
	noFilesFlagDescription  = "list directories only"
	gitignoreDescription    = "honour .gitignore: the working directory's applies everywhere, a subdirectory's only to its children"
	noGitignoreDescription  = "ignore .gitignore files"
	includeGitDescription   = "include the .git directory"
	statFlagDescription     = "append a statistic to files: size, creation, modified or all (repeatable)"
	sortByFlagDescription   = "sort siblings by none, name, size, creation or modified"
	ascendingDescription    = "sort in ascending order"
	descendingDescription   = "sort in descending order"
	colorFlagDescription    = "colour directory names and the root"
	noColorFlagDescription  = "disable colour"
	formatFlagDescription   = "output format: raw or json"
	relativeTimeDescription = "render timestamps relative to now"
	clipboardDescription    = "also copy the output to the system clipboard"
	configFlagDescription   = "configuration file to use instead of ./" + utils.ConfigFileName
	verboseFlagDescription  = "log debug information to stderr"
	versionFlagDescription  = "display application version"
)

// dependencies are the collaborators a command run needs from its environment.
type dependencies struct {
	logger           *zap.Logger
	level            zap.AtomicLevel
	copier           clipboard.Copier
	workingDirectory func() (string, error)
}

// Execute runs the cloudtree application. Raising the verbosity adjusts level.
func Execute(logger *zap.Logger, level zap.AtomicLevel) error {
	rootCommand := createRootCommand(dependencies{
		logger:           logger,
		level:            level,
		copier:           clipboard.NewService(),
		workingDirectory: os.Getwd,
	})
	rootCommand.SetArgs(normalizeBooleanFlagArguments(rootCommand, os.Args[1:]))
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command.
func createRootCommand(deps dependencies) *cobra.Command {
	var showVersion bool
	var flagValues treeFlagValues

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		Example:      rootUsageExample,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			if showVersion {
				return printVersion(command.OutOrStdout())
			}
			if len(arguments) == 0 {
				return command.Help()
			}
			return runTree(command, arguments[0], flagValues, deps)
		},
	}
	rootCommand.PersistentFlags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	rootCommand.PersistentFlags().BoolVarP(&flagValues.verbose, verboseFlagName, verboseFlagShorthand, false, verboseFlagDescription)
	addTreeFlags(rootCommand, &flagValues)
	rootCommand.AddCommand(createInitCommand(deps))
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

func printVersion(writer io.Writer) error {
	_, writeError := fmt.Fprintf(writer, versionTemplate, utils.GetApplicationVersion())
	return writeError
}

// addTreeFlags registers the traversal and rendering flags on the command.
func addTreeFlags(command *cobra.Command, values *treeFlagValues) {
	flagSet := command.Flags()
	flagSet.IntVarP(&values.depth, depthFlagName, depthFlagShorthand, defaultDepth, depthFlagDescription)
	flagSet.StringArrayVarP(&values.excludes, excludeFlagName, excludeFlagShorthand, nil, excludeFlagDescription)
	flagSet.StringVar(&values.excludeRegex, excludeRegexFlagName, "", excludeRegexDescription)
	flagSet.StringArrayVar(&values.fileSystemOptions, fileSystemFlagName, nil, fileSystemDescription)
	registerBooleanFlag(flagSet, &values.includeFiles, filesFlagName, filesFlagShorthand, defaultIncludeFiles, filesFlagDescription)
	registerNegatedBooleanFlag(flagSet, &values.includeFiles, noFilesFlagName, noFilesFlagDescription)
	registerBooleanFlag(flagSet, &values.useGitignore, gitignoreFlagName, "", defaultUseGitignore, gitignoreDescription)
	registerNegatedBooleanFlag(flagSet, &values.useGitignore, noGitignoreFlagName, noGitignoreDescription)
	registerBooleanFlag(flagSet, &values.includeGit, includeGitFlagName, "", defaultIncludeGit, includeGitDescription)
	flagSet.StringArrayVar(&values.stats, statFlagName, nil, statFlagDescription)
	flagSet.StringVarP(&values.sortBy, sortByFlagName, sortByFlagShorthand, string(defaultSortBy), sortByFlagDescription)
	registerBooleanFlag(flagSet, &values.ascending, ascendingFlagName, "", defaultAscending, ascendingDescription)
	registerNegatedBooleanFlag(flagSet, &values.ascending, descendingFlagName, descendingDescription)
	registerBooleanFlag(flagSet, &values.color, colorFlagName, colorFlagShorthand, defaultColor, colorFlagDescription)
	registerNegatedBooleanFlag(flagSet, &values.color, noColorFlagName, noColorFlagDescription)
	flagSet.StringVar(&values.format, formatFlagName, defaultOutputFormat, formatFlagDescription)
	registerBooleanFlag(flagSet, &values.relativeTime, relativeTimeFlagName, "", defaultRelativeTime, relativeTimeDescription)
	registerBooleanFlag(flagSet, &values.clipboard, clipboardFlagName, "", defaultClipboard, clipboardDescription)
	flagSet.StringVar(&values.configPath, configFlagName, "", configFlagDescription)
}
