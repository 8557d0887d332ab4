package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/wrenmail/wren/internal/config"
)

// Version is set at build time via -ldflags.
var Version = "dev"

var (
	cfgFile     string
	verbose     bool
	storageDir  string
	profileName string

	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "wren",
	Short: "Terminal mbox mail reader",
	Long: `wren is a terminal mail reader for Thunderbird-style mbox storage.

It discovers profiles via profiles.ini, finds each profile's mail
directories through prefs.js, and browses the mbox files inside them.

Running wren without a subcommand opens the interactive reader.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" {
			return nil
		}

		// Set up logging
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		}))

		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		// Flags override the config file.
		if storageDir != "" {
			cfg.Mail.StorageDir = storageDir
		}
		if profileName != "" {
			cfg.Mail.Profile = profileName
		}

		logger.Debug("configuration loaded",
			"storage_dir", cfg.Mail.StorageDir,
			"profile", cfg.Mail.Profile,
			"fetch_batch", cfg.UI.FetchBatch)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.wren/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&storageDir, "storage-dir", "", "mail storage root (default ~/.thunderbird)")
	rootCmd.PersistentFlags().StringVarP(&profileName, "profile", "p", "", "profile name from profiles.ini")
}

// Execute runs the root command with a background context.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with the given context.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
