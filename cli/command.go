package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/browserup/sorcery-desktop/logging"
	"github.com/browserup/sorcery-desktop/pkg/paths"
)

// CommandOptions holds the flags every sorcery-desktop subcommand accepts.
type CommandOptions struct {
	SettingsFile string
	Verbose      bool
	JSONOutput   bool
}

// NewStandardCommand creates a command carrying the standard flags shared
// by every sorcery-desktop subcommand, with styled help attached.
func NewStandardCommand(use, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().StringP("settings", "s", "", "Path to settings.yaml")

	SetStyledHelp(cmd)

	return cmd
}

// GetLogger creates a logger honoring the command's verbose/json flags.
func GetLogger(cmd *cobra.Command) *logrus.Logger {
	entry := logging.NewLogger("sorcery-desktop")
	logger := entry.Logger

	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	return logger
}

// GetOptions extracts the standard flags from a command.
func GetOptions(cmd *cobra.Command) CommandOptions {
	settingsFile, _ := cmd.Flags().GetString("settings")
	verbose, _ := cmd.Flags().GetBool("verbose")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	return CommandOptions{
		SettingsFile: settingsFile,
		Verbose:      verbose,
		JSONOutput:   jsonOutput,
	}
}

// ResolveSettingsPath returns the settings file a command should load:
// the explicit flag value if set, otherwise the XDG default location.
func ResolveSettingsPath(settingsFile string) string {
	if settingsFile != "" {
		return settingsFile
	}
	return paths.SettingsPath()
}