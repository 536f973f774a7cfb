package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"llmapi/internal/common/fsutil"
)

func newOCRCmd(deps Deps, opts *options) *cobra.Command {
	var model, accel string
	cmd := &cobra.Command{
		Use:     "ocr <image>",
		Short:   "Extract text from an image",
		Example: "  llmapi ocr scan.png --accelerator off",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.resolve()
			if err != nil {
				return err
			}
			if model != "" {
				cfg.OCRModel = model
			}
			if accel != "" {
				cfg.OCRAccelerator = accel
			}
			image, err := fsutil.ExpandHome(args[0])
			if err != nil {
				return err
			}
			if !fsutil.Exists(image) {
				return fmt.Errorf("image not found: %s", image)
			}
			r, err := deps.NewRunner(cfg.RunnerURL)
			if err != nil {
				return err
			}
			in, err := buildIngestor(cfg, deps, r, newLogger(cfg.LogLevel))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), in.PerformOCR(cmd.Context(), image))
			return nil
		},
	}
	cmd.Flags().StringVar(&model, "model", "", "Runner OCR model (default glm-ocr)")
	cmd.Flags().StringVar(&accel, "accelerator", "", "Accelerator mode: auto|on|off")
	return cmd
}
