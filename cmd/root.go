package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/abhisek/questioner/internal/config"
	"github.com/abhisek/questioner/internal/store"
)

// settings holds the CLI-wide values. Flags win over QUESTIONER_* variables.
var settings = viper.New()

var rootCmd = &cobra.Command{
	Use:   "questioner",
	Short: "Turn research excerpts into statistics exam questions",
	Long: `Questioner reads an excerpt from a research paper, checks that it describes
enough of the study to support a question, rewrites it without naming the
statistical method, and writes a four-option method-selection question with
an analysis of every option.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// A local .env may carry credentials; variables already set win.
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("load .env: %w", err)
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("model", "", "Model name (env QUESTIONER_MODEL)")
	pf.String("backend", "", "Backend: openai, openrouter, anthropic or gemini (env QUESTIONER_BACKEND)")
	pf.String("endpoint", "", "API base URL (env QUESTIONER_ENDPOINT)")
	pf.String("profile", "", "Use a named entry from the model file instead of its default")
	pf.String("config", "", "Path to the model file (env QUESTIONER_CONFIG)")
	pf.String("db", "", "Path to the SQLite event log (env QUESTIONER_DB)")
	pf.String("log-file", "", "Write logs to this file instead of stderr")
	pf.BoolP("verbose", "v", false, "Debug logging (env QUESTIONER_VERBOSE)")
	pf.Duration("timeout", 3*time.Minute, "Overall deadline for one run (env QUESTIONER_TIMEOUT)")

	settings.SetEnvPrefix("QUESTIONER")
	settings.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	settings.AutomaticEnv()
	_ = settings.BindPFlags(pf)

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// newLogger builds the CLI logger: a console writer on stderr, or JSON
// lines appended to --log-file. quiet drops everything below warn when no
// log file is set, for commands that own the terminal.
func newLogger(quiet bool) (zerolog.Logger, io.Closer, error) {
	level := zerolog.InfoLevel
	if settings.GetBool("verbose") {
		level = zerolog.DebugLevel
	}

	if path := settings.GetString("log-file"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
		}
		return zerolog.New(f).Level(level).With().Timestamp().Logger(), f, nil
	}

	if quiet {
		return zerolog.Nop(), nil, nil
	}
	w := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil, nil
}

// configPath returns --config, or the default model file location.
func configPath() (string, error) {
	if p := settings.GetString("config"); p != "" {
		return p, nil
	}
	return config.DefaultPath()
}

// resolveDBPath returns the database path using --db (highest priority),
// then QUESTIONER_DB, then the default XDG path.
func resolveDBPath() (string, error) {
	if p := settings.GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore opens the event log at the resolved path.
func openStore() (*store.Store, error) {
	dbPath, err := resolveDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}
