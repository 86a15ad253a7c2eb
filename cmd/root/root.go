// Package root contains the root command for the application
package root

import (
	"fmt"

	"eip/internal/config"
	"eip/internal/container"
	"eip/internal/logging"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Log is the shared logger instance for commands. It is replaced once the
	// configuration has been loaded.
	Log logging.Logger = logging.NewLogrusAdapter("info", "text")

	// AppConfig is the configuration loaded for the running command.
	AppConfig *config.Config

	// AppContainer holds the dependencies of the running command.
	AppContainer *container.Container

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "eip",
		Short: "A CLI tool to keep an electronic parts inventory from distributor order sheets.",
		Long: `eip keeps an inventory of electronic parts grouped into component categories.
Order sheets (CSV or XLSX) are classified by description, merged into the
inventory and archived; projects, searches and exports work on the same lists.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: initialize,
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}

	configFile string
	logLevel   string
	logFormat  string
	dataDir    string
)

// flagKeys maps persistent flags to their configuration keys.
var flagKeys = map[string]string{
	"log-level":  "log.level",
	"log-format": "log.format",
	"data-dir":   "data.directory",
}

// Init initializes the root command and all flags. The container is closed
// after every command, including one that failed.
func Init() {
	if Cmd.PersistentFlags().Lookup("config") != nil {
		return
	}
	cobra.OnFinalize(func() {
		if err := shutdown(); err != nil {
			Log.WithError(err).Warn("Failed to close application resources")
		}
	})
	Cmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default is $HOME/.eip/config.yaml)")
	Cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	Cmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format (text or json)")
	Cmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Directory holding the inventory, projects and past orders")
}

func initialize(cmd *cobra.Command, args []string) error {
	v, err := config.NewViper(configFile)
	if err != nil {
		return err
	}
	if err := bindFlags(v, cmd); err != nil {
		return err
	}

	cfg, err := config.FromViper(v)
	if err != nil {
		return err
	}

	Log = logging.NewLogrusAdapterWithOutput(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
	c, err := container.NewContainerWithLogger(cfg, Log)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	AppConfig = cfg
	AppContainer = c
	Log.Debug("Configuration loaded",
		logging.F("data_directory", cfg.Data.Directory),
		logging.F("rules_file", cfg.Rules.File))
	return nil
}

func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	for name, key := range flagKeys {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			flag = cmd.Root().PersistentFlags().Lookup(name)
		}
		if flag == nil || !flag.Changed {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}
	return nil
}

func shutdown() error {
	if AppContainer == nil {
		return nil
	}
	err := AppContainer.Close()
	AppContainer = nil
	return err
}

// GetContainer returns the dependency container of the running command.
func GetContainer() (*container.Container, error) {
	if AppContainer == nil {
		return nil, fmt.Errorf("application is not initialized")
	}
	return AppContainer, nil
}

// GetConfig returns the configuration of the running command.
func GetConfig() *config.Config {
	return AppConfig
}

// GetLogrusAdapter returns the shared logger.
func GetLogrusAdapter() logging.Logger {
	return Log
}
