package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"llmapi/internal/inference"
	"llmapi/internal/runner"
)

func newModelsCmd(deps Deps, opts *options) *cobra.Command {
	modelsCmd := &cobra.Command{Use: "models", Short: "Inspect and manage runner models", RunE: func(cmd *cobra.Command, args []string) error {
		return fmt.Errorf("models requires a subcommand: list|categorized|pull|delete")
	}}

	// service builds an inference service against the configured runner.
	service := func() (*inference.Service, runner.Runner, error) {
		cfg, err := opts.resolve()
		if err != nil {
			return nil, nil, err
		}
		r, err := deps.NewRunner(cfg.RunnerURL)
		if err != nil {
			return nil, nil, err
		}
		log := newLogger(cfg.LogLevel)
		return inference.New(r, inference.WithLogger(log)), r, nil
	}

	list := &cobra.Command{Use: "list", Short: "List installed models", Args: cobra.NoArgs, RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, err := service()
		if err != nil {
			return err
		}
		for _, name := range svc.ListAvailable(cmd.Context()) {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	}}

	categorized := &cobra.Command{Use: "categorized", Short: "List installed models by category as JSON", Args: cobra.NoArgs, RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, err := service()
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(svc.ListCategorized(cmd.Context()))
	}}

	pull := &cobra.Command{Use: "pull <model>", Short: "Pull a model into the runner", Example: "  llmapi models pull llama3.2", Args: cobra.ExactArgs(1), RunE: func(cmd *cobra.Command, args []string) error {
		_, r, err := service()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		return r.Pull(cmd.Context(), args[0], func(p runner.Progress) error {
			if p.Total > 0 {
				fmt.Fprintf(out, "%s %d/%d\n", p.Status, p.Completed, p.Total)
				return nil
			}
			fmt.Fprintln(out, p.Status)
			return nil
		})
	}}

	del := &cobra.Command{Use: "delete <model>", Aliases: []string{"rm"}, Short: "Delete an installed model", Args: cobra.ExactArgs(1), RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, err := service()
		if err != nil {
			return err
		}
		if err := svc.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Model %s deleted successfully.\n", args[0])
		return nil
	}}

	modelsCmd.AddCommand(list, categorized, pull, del)
	return modelsCmd
}
