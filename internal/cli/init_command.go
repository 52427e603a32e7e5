package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/temirov/cloudtree/internal/config"
	"github.com/temirov/cloudtree/internal/utils"
)

const (
	initUse              = "init"
	initShortDescription = "write a default configuration file"
	initLongDescription  = "Write a default configuration to ./" + utils.ConfigFileName + " or, with --global, to ~/" + utils.GlobalConfigDirectoryName + "/" + utils.GlobalConfigFileName + "."
	globalFlagName       = "global"
	globalDescription    = "write the configuration under the home directory"
	forceFlagName        = "force"
	forceDescription     = "overwrite an existing configuration file"
	initSuccessFormat    = "configuration written to %s\n"
)

func createInitCommand(deps dependencies) *cobra.Command {
	var global bool
	var force bool
	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Long:  initLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			workingDirectory, workingDirectoryError := deps.workingDirectory()
			if workingDirectoryError != nil {
				return fmt.Errorf(workingDirectoryErrorFormat, workingDirectoryError)
			}
			target := config.InitTargetLocal
			if global {
				target = config.InitTargetGlobal
			}
			destinationPath, initError := config.InitializeConfiguration(config.InitOptions{
				Target:           target,
				Force:            force,
				WorkingDirectory: workingDirectory,
			})
			if initError != nil {
				return initError
			}
			_, writeError := fmt.Fprintf(command.OutOrStdout(), initSuccessFormat, destinationPath)
			return writeError
		},
	}
	registerBooleanFlag(initCommand.Flags(), &global, globalFlagName, "", false, globalDescription)
	registerBooleanFlag(initCommand.Flags(), &force, forceFlagName, "", false, forceDescription)
	return initCommand
}
