package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"llmapi/internal/trending"
)

func newTrendingCmd(opts *options) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "trending",
		Short: "Print popular models from the public library",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.resolve()
			if err != nil {
				return err
			}
			if limit > 0 {
				cfg.TrendingLimit = limit
			}
			s := trending.New(
				trending.WithURL(cfg.TrendingURL),
				trending.WithLimit(cfg.TrendingLimit),
				trending.WithTimeout(time.Duration(cfg.TrendingTimeoutSeconds)*time.Second),
				trending.WithLogger(newLogger(cfg.LogLevel)),
			)
			for _, name := range s.Popular(cmd.Context()) {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of models")
	return cmd
}
