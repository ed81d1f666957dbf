package cli

import (
	"github.com/grovetools/reorder/config"
	"github.com/grovetools/reorder/logging"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CommandOptions holds common options for reorder commands
type CommandOptions struct {
	ConfigFile string
	Verbose    bool
	JSONOutput bool
}

// NewStandardCommand creates a new command with the standard flags
func NewStandardCommand(use, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           use,
		Short:         short,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().StringP("config", "c", "", "Path to reorder.yml or reorder.toml")

	SetStyledHelp(cmd)

	return cmd
}

// GetLogger returns the logger for a component, raising every logger to
// debug level when --verbose is set.
func GetLogger(cmd *cobra.Command, component string) *logrus.Entry {
	logger := logging.NewLogger(component)

	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logging.SetLevelAll(logrus.DebugLevel)
	}

	return logger
}

// GetOptions extracts common options from a command
func GetOptions(cmd *cobra.Command) CommandOptions {
	configFile, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	return CommandOptions{
		ConfigFile: configFile,
		Verbose:    verbose,
		JSONOutput: jsonOutput,
	}
}

// LoadConfig loads the file named by --config, or searches from the current
// directory. Without a config file the defaults apply.
func LoadConfig(cmd *cobra.Command) (*config.Config, error) {
	return config.LoadOrDefault(GetOptions(cmd).ConfigFile)
}
