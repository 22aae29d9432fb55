// Package cmd contains the plank command line interface.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dmelton/plank/internal/app"
	"github.com/dmelton/plank/internal/config"
	"github.com/dmelton/plank/internal/log"
	"github.com/dmelton/plank/internal/registry"
	"github.com/dmelton/plank/internal/ui/styles"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	noWatch   bool
	cfg       config.Config
)

var rootCmd = &cobra.Command{
	Use:     "plank",
	Short:   "A single-page project board for the terminal",
	Long:    `Plank is a two-column project board. Add projects, inspect them, and drag cards between Active and Finished with the mouse or keyboard.`,
	Version: version,
	RunE:    runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/plank/config.yaml)")
	rootCmd.Flags().BoolVar(&debugFlag, "debug", false,
		"enable debug logging and the log overlay")
	rootCmd.Flags().Bool("no-watch", false,
		"disable config re-apply when the file changes")
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("auto_reload", defaults.AutoReload)
	viper.SetDefault("ui.show_counts", defaults.UI.ShowCounts)
	viper.SetDefault("ui.show_status_bar", defaults.UI.ShowStatusBar)
	viper.SetDefault("ui.markdown_style", defaults.UI.MarkdownStyle)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .plank/config.yaml (current directory)
		// 2. ~/.config/plank/config.yaml (user config)
		if _, err := os.Stat(".plank/config.yaml"); err == nil {
			viper.SetConfigFile(".plank/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "plank"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create default at .plank/config.yaml
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			defaultPath := ".plank/config.yaml"
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				viper.SetConfigFile(defaultPath)
				_ = viper.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	cfg = defaults
	_ = viper.Unmarshal(&cfg)
}

func runApp(cmd *cobra.Command, _ []string) error {
	debug := os.Getenv("PLANK_DEBUG") != "" || debugFlag
	if debug {
		logPath := os.Getenv("PLANK_LOG")
		if logPath == "" {
			logPath = "debug.log"
		}

		cleanup, err := log.InitWithTeaLog(logPath, "plank")
		if err != nil {
			return fmt.Errorf("initializing logging: %w", err)
		}
		defer cleanup()

		log.Info(log.CatApp, "Plank starting", "version", version, "logPath", logPath)
	}

	if err := config.ValidateColumns(cfg.Columns); err != nil {
		return fmt.Errorf("invalid column configuration: %w", err)
	}

	if err := styles.ApplyTheme(styles.ThemeConfig{
		Preset: cfg.Theme.Preset,
		Mode:   cfg.Theme.Mode,
		Colors: cfg.Theme.FlattenedColors(),
	}); err != nil {
		return fmt.Errorf("invalid theme configuration: %w", err)
	}

	if nw, _ := cmd.Flags().GetBool("no-watch"); nw {
		noWatch = true
	}

	// Store the config file path for saving UI toggles
	configFilePath := viper.ConfigFileUsed()
	if configFilePath == "" {
		configFilePath = ".plank/config.yaml"
	}

	zone.NewGlobal()

	model := app.New(app.Options{
		ConfigPath: configFilePath,
		Config:     cfg,
		Registry:   registry.Default(),
		Debug:      debug,
		Watch:      !noWatch,
	})
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()

	// Clean up watcher and broker resources
	model.Close()

	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
