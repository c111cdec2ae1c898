package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/prateek/v8lens"
	"github.com/prateek/v8lens/config"
)

var (
	cfgPath   string
	logLevel  string
	logFormat string
	showProg  bool
	cfg       *config.Config
	log       *logrus.Logger
)

var rootCmd = &cobra.Command{
	Use:   "v8lens",
	Short: "Analyze V8 heap snapshots",
	Long: `v8lens loads a V8 devtools heap snapshot and computes its
dominator tree, retained sizes, retention paths, duplicate objects and
strings, and hidden-class proliferation.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(cfgPath)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("log-level") {
			loaded.Log.Level = logLevel
		}
		if cmd.Flags().Changed("log-format") {
			loaded.Log.Format = logFormat
		}
		cfg = loaded

		l, err := config.NewLogger(cfg.Log)
		if err != nil {
			return err
		}
		log = l
		return nil
	},
}

// Execute runs the root command, exiting the process with a non-zero
// status on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to a v8lens config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: trace, debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format: text or json")
	rootCmd.PersistentFlags().BoolVar(&showProg, "progress", false, "emit phase progress to stderr")
}

// progressFunc builds the progress callback threaded into the
// dominator/retained-size passes when --progress is set, logging each
// phase boundary at debug level; nil (a no-op) otherwise.
func progressFunc() v8lens.ProgressFunc {
	if !showProg {
		return nil
	}
	return func(phase string, done, total int) {
		log.WithFields(logrus.Fields{"phase": phase, "done": done, "total": total}).Debug("progress")
	}
}
