package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/homevalue/backend/internal/estimator"
	"github.com/homevalue/backend/internal/logging"
)

func bootstrapCmd() *cobra.Command {
	var (
		modelPath string
		seed      uint64
		samples   int
		force     bool
	)

	cmd := &cobra.Command{
		Use:   "bootstrap",
		Short: "Fit the local model on synthetic data and save it",
		Long: `Generate the synthetic training set, fit the linear price model and
write it to --model-path. An existing model is kept unless --force is given.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !force {
				if _, err := os.Stat(modelPath); err == nil {
					return fmt.Errorf("model already exists at %s (use --force to overwrite)", modelPath)
				} else if !errors.Is(err, fs.ErrNotExist) {
					return fmt.Errorf("failed to check model file: %w", err)
				}
			}

			model, err := estimator.Bootstrap(seed, samples)
			if err != nil {
				return err
			}
			if err := model.Save(modelPath); err != nil {
				return err
			}

			logging.Info().Str("path", modelPath).Int("samples", model.Samples).Uint64("seed", seed).Msg("Model saved")
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "model written to %s (intercept %.2f)\n", modelPath, model.Intercept)
			return err
		},
	}

	cmd.Flags().StringVar(&modelPath, "model-path", defaultModelPath, "where to write the model")
	cmd.Flags().Uint64Var(&seed, "seed", defaultSeed, "seed for the synthetic training data")
	cmd.Flags().IntVar(&samples, "samples", estimator.DefaultSamples, "number of synthetic training rows")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing model")

	return cmd
}
