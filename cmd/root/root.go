// Package root contains the root command for the application
package root

import (
	"fmt"

	"finize/txextract/internal/config"
	"finize/txextract/internal/container"
	"finize/txextract/internal/logging"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input      string
	Output     string
	ConfigFile string
	LogLevel   string
	AI         bool
}

var (
	// Log is the shared logger instance for commands
	Log = logging.GetLogger()

	// AppContainer holds the dependencies of the running command. It is set by
	// PersistentPreRunE.
	AppContainer *container.Container

	// ContainerOptions are applied when the container is built, mostly by tests.
	ContainerOptions []container.Option

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "txextract",
		Short: "Extract structured transactions from free-text payment messages",
		Long: `txextract turns short, informal payment messages such as
"Paid 500 at Starbucks" or "salary credited 45000" into structured records:
amount, merchant, category, debit/credit type and date.

Categorization uses a keyword taxonomy, with optional Gemini AI fallback
for messages the keywords cannot place.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if AppContainer == nil {
				return
			}
			if err := AppContainer.Close(); err != nil {
				Log.WithError(err).Warn("Failed to release resources")
			}
		},
	}

	// SharedFlags holds the values of the persistent flags
	SharedFlags = CommonFlags{}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file")
	Cmd.PersistentFlags().StringVar(&SharedFlags.ConfigFile, "config", "", "Config file (default: config.yaml in ., .txextract or $HOME/.txextract)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.LogLevel, "log-level", "", "Log level (overrides configuration)")
	Cmd.PersistentFlags().BoolVar(&SharedFlags.AI, "ai", false, "Use AI categorization for messages left as General")
}

// setup loads the environment and configuration and builds the container.
func setup(cmd *cobra.Command, args []string) error {
	config.LoadEnv()

	cfg, err := config.InitializeConfigFromFile(SharedFlags.ConfigFile)
	if err != nil {
		return err
	}
	if SharedFlags.LogLevel != "" {
		cfg.Log.Level = SharedFlags.LogLevel
	}
	if SharedFlags.AI {
		if cfg.AI.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY required when --ai is set")
		}
		cfg.AI.Enabled = true
	}

	c, err := container.NewContainer(cfg, ContainerOptions...)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	AppContainer = c
	Log = c.GetLogger()
	logging.SetLogger(Log)
	return nil
}

// GetContainer returns the container built for the running command.
func GetContainer() *container.Container {
	return AppContainer
}

// AIAvailable reports whether the container carries an AI client, enabled by
// the --ai flag or by the ai.enabled setting.
func AIAvailable() bool {
	return AppContainer != nil && AppContainer.GetAIClient() != nil
}
