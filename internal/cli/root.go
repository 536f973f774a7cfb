// Package cli is the llmapi command tree: the HTTP server plus operator
// commands that reach the model runner directly.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"llmapi/internal/common/fsutil"
	"llmapi/internal/config"
	"llmapi/internal/ingest"
	"llmapi/internal/runner"
)

// Deps are the constructors for collaborators that need native libraries or
// network access. Tests replace them with fakes.
type Deps struct {
	NewRunner     func(baseURL string) (runner.Runner, error)
	NewRecognizer func(languages []string) ingest.Recognizer
}

// options holds raw persistent flag values.
type options struct {
	configPath string
	runnerURL  string
	logLevel   string
}

// Execute runs the command tree with args and returns the process exit code.
func Execute(deps Deps, args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := NewRootCmd(deps)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	return 0
}

// NewRootCmd builds the command tree.
func NewRootCmd(deps Deps) *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "llmapi",
		Short:         "HTTP API over a local model runner",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Persistent flags; env provides defaults.
	root.PersistentFlags().StringVar(&opts.configPath, "config", os.Getenv("LLMAPI_CONFIG"), "Config file (.yaml, .yml, .toml or .json)")
	root.PersistentFlags().StringVar(&opts.runnerURL, "runner-url", runnerURLFromEnv(), "Model runner base URL (defaults OLLAMA_HOST or "+config.DefaultRunnerURL+")")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", os.Getenv("LLMAPI_LOG_LEVEL"), "Log level: trace|debug|info|warn|error|disabled")

	root.AddCommand(
		newServeCmd(deps, opts),
		newModelsCmd(deps, opts),
		newOCRCmd(deps, opts),
		newTrendingCmd(opts),
		newCompletionCmd(root),
	)
	return root
}

// resolve loads the config file, overlays non-empty flag values and applies
// defaults.
func (o *options) resolve() (config.Config, error) {
	var cfg config.Config
	if o.configPath != "" {
		path, err := fsutil.ExpandHome(o.configPath)
		if err != nil {
			return cfg, err
		}
		c, err := config.Load(path)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		cfg = c
	}
	if o.runnerURL != "" {
		cfg.RunnerURL = o.runnerURL
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// runnerURLFromEnv reads OLLAMA_HOST, which may omit the scheme.
func runnerURLFromEnv() string {
	v := strings.TrimSpace(os.Getenv("OLLAMA_HOST"))
	if v == "" {
		return ""
	}
	if !strings.Contains(v, "://") {
		v = "http://" + v
	}
	return v
}

// newLogger builds the process logger: JSON lines on stderr.
func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger()
}

func newCompletionCmd(root *cobra.Command) *cobra.Command {
	completionCmd := &cobra.Command{Use: "completion", Short: "Generate the autocompletion script for the specified shell"}
	completionCmd.AddCommand(
		&cobra.Command{Use: "bash", Short: "Bash completion", RunE: func(cmd *cobra.Command, args []string) error {
			return root.GenBashCompletion(cmd.OutOrStdout())
		}},
		&cobra.Command{Use: "zsh", Short: "Zsh completion", RunE: func(cmd *cobra.Command, args []string) error {
			return root.GenZshCompletion(cmd.OutOrStdout())
		}},
		&cobra.Command{Use: "fish", Short: "Fish completion", RunE: func(cmd *cobra.Command, args []string) error {
			return root.GenFishCompletion(cmd.OutOrStdout(), true)
		}},
		&cobra.Command{Use: "powershell", Short: "PowerShell completion", RunE: func(cmd *cobra.Command, args []string) error {
			return root.GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
		}},
	)
	return completionCmd
}
