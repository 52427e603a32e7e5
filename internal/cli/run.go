package cli

import (
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/cloudtree/internal/commands"
	"github.com/temirov/cloudtree/internal/config"
	"github.com/temirov/cloudtree/internal/output"
	"github.com/temirov/cloudtree/internal/services/clipboard"
	"github.com/temirov/cloudtree/internal/storage"
)

const (
	workingDirectoryErrorFormat = "unable to determine working directory: %w"
	errorOpenTargetFormat       = "open %s: %w"
	errorRenderNodeFormat       = "render %s: %w"

	debugSettingsResolved = "settings resolved"
	debugTraversalStarted = "traversal started"
	warnCloseBackend      = "closing backend failed"
)

// runTree renders the tree for target according to configuration and flags.
func runTree(command *cobra.Command, target string, values treeFlagValues, deps dependencies) error {
	logger := deps.logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if values.verbose {
		deps.level.SetLevel(zap.DebugLevel)
	}

	workingDirectory, workingDirectoryError := deps.workingDirectory()
	if workingDirectoryError != nil {
		return fmt.Errorf(workingDirectoryErrorFormat, workingDirectoryError)
	}
	applicationConfiguration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: workingDirectory,
		ExplicitFilePath: values.configPath,
	})
	if configurationError != nil {
		return configurationError
	}
	environmentOptions, environmentError := config.LoadEnvironmentFileSystemOptions(workingDirectory)
	if environmentError != nil {
		return environmentError
	}
	settings, settingsError := resolveTreeSettings(command.Flags(), values, applicationConfiguration.Tree, environmentOptions, target)
	if settingsError != nil {
		return settingsError
	}
	logger.Debug(debugSettingsResolved,
		zap.String("target", target),
		zap.Int("depth", settings.depth),
		zap.String("sort_by", string(settings.sortBy)),
		zap.Bool("ascending", settings.ascending),
		zap.Strings("excludes", settings.excludes),
		zap.String("format", settings.format),
	)

	fileSystem, rootPath, openError := storage.Open(target, settings.fileSystemOptions)
	if openError != nil {
		return fmt.Errorf(errorOpenTargetFormat, target, openError)
	}
	if closer, ok := fileSystem.(io.Closer); ok {
		defer func() {
			if closeError := closer.Close(); closeError != nil {
				logger.Warn(warnCloseBackend, zap.Error(closeError))
			}
		}()
	}

	excludePatterns, excludeError := config.LoadGlobalExcludePatterns(afero.NewOsFs(), workingDirectory, settings.excludes, settings.useGitignore, settings.includeGit)
	if excludeError != nil {
		return excludeError
	}
	treeBuilder, builderError := commands.NewTreeBuilder(fileSystem, commands.TreeOptions{
		MaxDepth:          settings.depth,
		ExcludePatterns:   excludePatterns,
		ExcludeExpression: settings.excludeRegex,
		IncludeFiles:      settings.includeFiles,
		IncludeGitignore:  settings.useGitignore,
		SortBy:            settings.sortBy,
		Ascending:         settings.ascending,
		ColorEnabled:      settings.color,
		RelativeTimes:     settings.relativeTime,
	}, logger)
	if builderError != nil {
		return builderError
	}

	writer := command.OutOrStdout()
	var recorder *clipboard.Recorder
	if settings.clipboard {
		recorder = clipboard.NewRecorder(deps.copier)
		writer = io.MultiWriter(writer, recorder)
	}
	renderer, rendererError := output.NewRenderer(settings.format, writer, settings.stats)
	if rendererError != nil {
		return rendererError
	}

	logger.Debug(debugTraversalStarted, zap.String("root", rootPath), zap.Strings("patterns", excludePatterns))
	traversalError := renderTree(treeBuilder, rootPath, renderer)
	if flushError := renderer.Flush(); flushError != nil && traversalError == nil {
		traversalError = flushError
	}
	if traversalError != nil {
		return traversalError
	}
	if recorder != nil {
		return recorder.Commit()
	}
	return nil
}

func renderTree(treeBuilder *commands.TreeBuilder, rootPath string, renderer output.NodeRenderer) error {
	for node, buildError := range treeBuilder.Build(rootPath) {
		if buildError != nil {
			return buildError
		}
		if renderError := renderer.Render(node); renderError != nil {
			return fmt.Errorf(errorRenderNodeFormat, node.Path, renderError)
		}
	}
	return nil
}
