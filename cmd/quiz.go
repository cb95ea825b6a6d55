package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/abhisek/questioner/internal/app"
	"github.com/abhisek/questioner/internal/pipeline"
)

var quizCmd = &cobra.Command{
	Use:   "quiz [file|-]",
	Short: "Generate a question and answer it interactively",
	Long: `Open the terminal UI. With a file (or "-" for stdin) the run starts at once;
otherwise paste an excerpt first. Logs are suppressed unless --log-file is set.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runQuiz,
}

func init() {
	quizCmd.Flags().String("text", "", "Excerpt text (instead of a file)")
}

func runQuiz(cmd *cobra.Command, args []string) error {
	text, _ := cmd.Flags().GetString("text")
	excerpt, err := readExcerpt(text, args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	env, err := newRunEnv(true, 0, 0)
	if err != nil {
		return err
	}
	defer env.Close()

	run := func(ctx context.Context, raw string, observe pipeline.Observer) (*pipeline.Result, error) {
		ctx, cancel := withTimeout(ctx)
		defer cancel()
		opts := append(append([]pipeline.Option{}, env.opts...), pipeline.WithObserver(observe))
		return pipeline.Generate(ctx, raw, opts...)
	}

	return app.Run(cmd.Context(), app.Options{
		Text:  excerpt,
		Model: env.modelLabel(),
		Run:   run,
	})
}
