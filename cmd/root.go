package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/abhisek/hanziquiz/internal/config"
)

var rootCmd = newRootCmd()

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// newRootCmd builds the command tree around a fresh viper instance so
// tests can run commands in isolation.
func newRootCmd() *cobra.Command {
	v := config.New()
	var envFile string

	root := &cobra.Command{
		Use:   "hanziquiz",
		Short: "Chinese character quiz for young learners",
		Long: "hanziquiz is a terminal quiz that drills primary-school Chinese characters\n" +
			"and phrases by pinyin, keeps a wrong-word book and tracks progress.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if envFile != "" {
				return config.LoadDotEnv(envFile)
			}
			return config.LoadDotEnv()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, v, false, "")
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&envFile, "env-file", "", "Load environment variables from this file (default .env)")
	flags.String("db", "", "Path to SQLite database file (overrides HANZIQUIZ_DB_PATH)")
	flags.String("db-driver", "", "Store backend: sqlite, postgres or memory")
	flags.String("db-url", "", "Postgres connection string")
	flags.String("corpus", "", "Path to a corpus JSON file (default: built-in sample)")
	flags.String("log-level", "", "Log level: debug, info, warn, error")
	flags.String("log-format", "", "Log format: text or json")
	flags.String("log-file", "", "Write logs here while the quiz screen is open")

	bindFlagToViper(v, "db.path", flags.Lookup("db"))
	bindFlagToViper(v, "db.driver", flags.Lookup("db-driver"))
	bindFlagToViper(v, "db.url", flags.Lookup("db-url"))
	bindFlagToViper(v, "corpus.path", flags.Lookup("corpus"))
	bindFlagToViper(v, "log.level", flags.Lookup("log-level"))
	bindFlagToViper(v, "log.format", flags.Lookup("log-format"))
	bindFlagToViper(v, "log.file", flags.Lookup("log-file"))

	root.AddCommand(
		newPlayCmd(v),
		newStatsCmd(v),
		newWordsCmd(v),
		newHistoryCmd(v),
		newExportCmd(v),
		newResetCmd(v),
		newCorpusCmd(v),
		newVersionCmd(),
	)
	return root
}

// bindFlagToViper binds flag to key. Unset flags leave the environment and
// defaults in charge.
func bindFlagToViper(v *viper.Viper, key string, flag *pflag.Flag) {
	if flag == nil {
		return
	}
	cobra.CheckErr(v.BindPFlag(key, flag))
}
