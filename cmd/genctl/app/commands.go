package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/genctl/cmd/genctl/cmd/convert"
	"github.com/agentstation/genctl/cmd/genctl/cmd/inspect"
	"github.com/agentstation/genctl/cmd/genctl/cmd/version"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(convert.NewDraftCommand(a))
	rootCmd.AddCommand(convert.NewApplyCommand(a))
	rootCmd.AddCommand(convert.NewRoundtripCommand(a))

	// Inspection commands
	rootCmd.AddCommand(inspect.NewCapabilitiesCommand(a))
	rootCmd.AddCommand(inspect.NewEffortCommand(a))

	// Utility commands
	rootCmd.AddCommand(version.NewCommand(a))
}
