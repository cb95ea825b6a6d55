package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"

	"github.com/spf13/cobra"

	"github.com/abhisek/questioner/internal/config"
	"github.com/abhisek/questioner/internal/pipeline"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and edit the model file",
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the named models in the model file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configPath()
		if err != nil {
			return err
		}
		cfgs, err := config.LoadAll(path)
		if err != nil {
			return err
		}
		def, _ := config.DefaultName(path)

		out := cmd.OutOrStdout()
		if len(cfgs) == 0 {
			fmt.Fprintf(out, "No models in %s.\n", path)
			return nil
		}

		names := make([]string, 0, len(cfgs))
		for n := range cfgs {
			names = append(names, n)
		}
		sort.Strings(names)

		fmt.Fprintf(out, "  %-16s  %-10s  %-28s  %-12s  %s\n", "Name", "Backend", "Model", "Credential", "Endpoint")
		for _, n := range names {
			c := cfgs[n]
			mark := " "
			if n == def {
				mark = "*"
			}
			endpoint := c.Endpoint
			if endpoint == "" {
				endpoint = "(default)"
			}
			fmt.Fprintf(out, "%s %-16s  %-10s  %-28s  %-12s  %s\n",
				mark, truncate(n, 16), c.BackendOrDefault(), truncate(c.ModelName, 28),
				config.MaskCredential(c.Credential), endpoint)
		}
		return nil
	},
}

var configDefaultCmd = &cobra.Command{
	Use:   "default",
	Short: "Show the default model entry",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configPath()
		if err != nil {
			return err
		}
		cfg, err := config.LoadDefault(path)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if cfg == nil {
			fmt.Fprintf(out, "No default set in %s.\n", path)
			return nil
		}
		name, _ := config.DefaultName(path)
		fmt.Fprintf(out, "Name:        %s\n", name)
		printModelConfig(cmd, *cfg, nil)
		return nil
	},
}

var configResolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Show the model a run would use and where each value came from",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, closer, err := newLogger(false)
		if err != nil {
			return err
		}
		if closer != nil {
			defer closer.Close()
		}
		opts, err := modelOptions(logger, 0, 0)
		if err != nil {
			return err
		}

		res, err := pipeline.ResolveModel(opts...)
		if err != nil {
			return err
		}
		printModelConfig(cmd, res.Config, res.Origins)
		return nil
	},
}

var configAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add or replace a named model in the model file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		modelName, _ := cmd.Flags().GetString("model-name")
		backend, _ := cmd.Flags().GetString("backend-name")
		endpoint, _ := cmd.Flags().GetString("url")
		credential, _ := cmd.Flags().GetString("credential")
		makeDefault, _ := cmd.Flags().GetBool("default")

		if modelName == "" {
			return errors.New("--model-name is required")
		}
		if backend != "" && !config.KnownBackend(backend) {
			return fmt.Errorf("unknown backend %q", backend)
		}

		path, err := configPath()
		if err != nil {
			return err
		}

		cfgs, err := config.LoadAll(path)
		def := ""
		switch {
		case err == nil:
			def, _ = config.DefaultName(path)
		case errors.Is(err, fs.ErrNotExist):
			cfgs = map[string]config.ModelConfig{}
		default:
			return err
		}

		cfgs[name] = config.ModelConfig{
			Backend:    backend,
			ModelName:  modelName,
			Credential: credential,
			Endpoint:   endpoint,
		}
		if makeDefault || def == "" {
			def = name
		}

		if err := config.WriteFile(path, cfgs, def); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %q to %s (default: %s)\n", name, path, def)
		return nil
	},
}

func printModelConfig(cmd *cobra.Command, cfg config.ModelConfig, origins map[config.Field]string) {
	out := cmd.OutOrStdout()
	row := func(label, value string, f config.Field) {
		if value == "" {
			value = "(absent)"
		}
		if o, ok := origins[f]; ok {
			value += "  [" + o + "]"
		}
		fmt.Fprintf(out, "%-12s %s\n", label+":", value)
	}
	row("Backend", cfg.BackendOrDefault(), config.FieldBackend)
	row("Model", cfg.ModelName, config.FieldModelName)
	row("Endpoint", cfg.Endpoint, config.FieldEndpoint)
	row("Credential", config.MaskCredential(cfg.Credential), config.FieldCredential)
}

func init() {
	configAddCmd.Flags().String("model-name", "", "Model identifier sent to the backend (required)")
	configAddCmd.Flags().String("backend-name", "", "Backend for this entry (default openai)")
	configAddCmd.Flags().String("url", "", "API base URL for this entry")
	configAddCmd.Flags().String("credential", "", "API key for this entry")
	configAddCmd.Flags().Bool("default", false, "Make this entry the default")

	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configDefaultCmd)
	configCmd.AddCommand(configResolveCmd)
	configCmd.AddCommand(configAddCmd)
}
