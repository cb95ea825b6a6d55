package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/questioner/internal/pipeline"
	"github.com/abhisek/questioner/internal/ui/theme"
)

var generateCmd = &cobra.Command{
	Use:   "generate [file|-]",
	Short: "Generate one question from an excerpt",
	Long: `Run the three stages once over an excerpt read from a file, from stdin ("-"),
or from --text, and print the result.

An excerpt that lacks key information (sample size, variable types,
grouping) is rejected after the first stage; the missing information is
printed and no question is written.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().String("text", "", "Excerpt text (instead of a file)")
	generateCmd.Flags().Bool("json", false, "Print the result as JSON")
	generateCmd.Flags().Bool("scenario", false, "Also print the rewritten scenario")
	generateCmd.Flags().Int("max-tokens", 0, "Cap each response (0 uses the backend default)")
	generateCmd.Flags().Float64("temperature", 0, "Sampling temperature")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	text, _ := cmd.Flags().GetString("text")
	asJSON, _ := cmd.Flags().GetBool("json")
	showScenario, _ := cmd.Flags().GetBool("scenario")
	maxTokens, _ := cmd.Flags().GetInt("max-tokens")
	temperature, _ := cmd.Flags().GetFloat64("temperature")

	if len(args) == 0 && text == "" {
		args = []string{"-"}
	}
	excerpt, err := readExcerpt(text, args, cmd.InOrStdin())
	if err != nil {
		return err
	}
	if excerpt == "" {
		return errors.New("excerpt is empty")
	}

	env, err := newRunEnv(false, maxTokens, temperature)
	if err != nil {
		return err
	}
	defer env.Close()

	ctx, cancel := withTimeout(cmd.Context())
	defer cancel()

	opts := append(env.opts, pipeline.WithObserver(func(s pipeline.State) {
		env.logger.Info().Stringer("state", s).Msg("pipeline")
	}))
	res, err := pipeline.Generate(ctx, excerpt, opts...)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	printResult(out, res, showScenario)
	return nil
}

// printResult writes a human-readable rendering of res.
func printResult(w io.Writer, res *pipeline.Result, showScenario bool) {
	if res.Rejected() {
		fmt.Fprintln(w, theme.Warning.Render("Excerpt rejected: not enough information for a question."))
		if res.Assessment.MissingInfo != "" {
			fmt.Fprintf(w, "%s %s\n", theme.Label.Render("Missing:"), res.Assessment.MissingInfo)
		}
		return
	}

	width := 88
	wrap := lipgloss.NewStyle().Width(width)
	rule := theme.Dimmed.Render(strings.Repeat("─", width))

	if res.Assessment.PotentialTask != "" {
		fmt.Fprintf(w, "%s %s\n", theme.Label.Render("Task:"), res.Assessment.PotentialTask)
	}
	if showScenario && res.CleanedContext != nil {
		fmt.Fprintln(w, rule)
		fmt.Fprintln(w, theme.Label.Render("Scenario"))
		fmt.Fprintln(w, wrap.Render(*res.CleanedContext))
	}

	q := res.Question
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, wrap.Render(theme.Body.Bold(true).Render(q.Stem)))
	fmt.Fprintln(w)
	for _, k := range q.OptionKeys() {
		line := fmt.Sprintf("  %s)  %s", k, q.Options[k])
		if k == q.Answer {
			line = theme.Correct.Render(line)
		}
		fmt.Fprintln(w, line)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s %s\n", theme.Label.Render("Answer:"), q.Answer)
	fmt.Fprintln(w, theme.Label.Render("Analysis"))
	fmt.Fprintln(w, wrap.Render(q.Analysis))
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, theme.Dimmed.Render("run "+res.RunID))
}
