package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/abhisek/hanziquiz/internal/app"
	"github.com/abhisek/hanziquiz/internal/corpus"
	"github.com/abhisek/hanziquiz/internal/screens/play"
	"github.com/abhisek/hanziquiz/internal/session"
)

func newPlayCmd(v *viper.Viper) *cobra.Command {
	var source string
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Start a quiz session straight away",
		Long: "Start a quiz session without going through the home screen.\n\n" +
			"Modes: all (whole difficulty pool), unit (only entries whose unit contains\n" +
			"--source), wrong (review the wrong-word book).\n" +
			"Question types: A shows pinyin, B shows the character, C mixes both.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, v, true, source)
		},
	}

	flags := cmd.Flags()
	flags.String("difficulty", "", "simple, medium or hard")
	flags.String("mode", "", "all, unit or wrong")
	flags.String("type", "", "A, B or C")
	flags.Uint64("seed", 0, "Fix question order (0 picks a random seed)")
	flags.StringVar(&source, "source", "", "Unit to practise in unit mode, e.g. 课文1")

	bindFlagToViper(v, "quiz.difficulty", flags.Lookup("difficulty"))
	bindFlagToViper(v, "quiz.mode", flags.Lookup("mode"))
	bindFlagToViper(v, "quiz.question_type", flags.Lookup("type"))
	bindFlagToViper(v, "quiz.seed", flags.Lookup("seed"))
	return cmd
}

// runTUI opens everything the screens need and runs the app. With direct
// set it starts a session from the configured quiz options instead of
// opening on the home screen.
func runTUI(cmd *cobra.Command, v *viper.Viper, direct bool, source string) error {
	ctx := cmd.Context()
	e, err := openEnv(ctx, v, true)
	if err != nil {
		return err
	}
	defer e.Close()

	engine, pool, err := e.engine(ctx)
	if err != nil {
		return err
	}
	settings, err := e.repo.InitSettings(ctx)
	if err != nil {
		return err
	}
	opts, err := quizOptions(e.cfg)
	if err != nil {
		return err
	}
	opts.Source = source

	deps := play.Deps{
		Engine:   engine,
		Repo:     e.repo,
		Settings: settings,
		Defaults: opts,
		Sources:  corpus.Sources(corpus.FilterByDifficulty(pool, corpus.DifficultyHard)),
		Log:      e.log,
	}

	var start *session.Options
	if direct {
		start = &opts
	}
	return app.Run(ctx, deps, start)
}
