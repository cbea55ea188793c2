package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"ewintr.nl/captionsbot/config"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"
)

var (
	cfg    *config.Config
	logger *slog.Logger
)

// flagKeys maps config keys to the flags that can override them.
var flagKeys = map[string]string{
	"repository":    "repository",
	"verbose":       "verbose",
	"channel":       "channel",
	"languages":     "languages",
	"captions_dir":  "directory",
	"extension":     "extension",
	"listen":        "listen",
	"since_minutes": "since",
	"max_videos":    "max",
	"source":        "source",
}

var rootCmd = &cobra.Command{
	Use:   "captionsbot",
	Short: "Crowdsourced subtitles for the videos of a YouTube channel",
	Long: `captionsbot keeps a GitHub repository of subtitles in sync with a YouTube channel.

It opens one issue per new video and language, places a card for it on the
project board, relabels issues when their card moves on the board, and tells
which issues are closed by the caption files about to be committed.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configFile, _ := cmd.Flags().GetString("config")
		v := config.New(configFile)
		for key, name := range flagKeys {
			if f := cmd.Flags().Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return err
				}
			}
		}
		c, err := config.Load(v)
		if err != nil {
			return err
		}
		cfg = c
		logger = newLogger(cfg.Verbose)
		if cfg.ConfigFile != "" {
			logger.Debug("using config file", slog.String("path", cfg.ConfigFile))
		}
		return nil
	},
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.HandlerOptions{Level: level}.NewTextHandler(os.Stderr))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd.SetArgs(helpAlias(os.Args[1:]))
	return rootCmd.ExecuteContext(ctx)
}

// helpAlias lets -? ask for help, like -h does.
func helpAlias(args []string) []string {
	out := make([]string, len(args))
	for i, a := range args {
		if a == "-?" {
			a = "--help"
		}
		out[i] = a
	}
	return out
}

func init() {
	rootCmd.PersistentFlags().String("config", "", fmt.Sprintf("Config file (default is $XDG_CONFIG_HOME/%s/config.toml)", config.Name))
	rootCmd.PersistentFlags().String("repository", "", "GitHub repository holding the subtitles, as OWNER/REPO")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for debugging")
}
