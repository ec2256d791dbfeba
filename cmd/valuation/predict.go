package main

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/homevalue/backend/internal/domain"
	"github.com/homevalue/backend/internal/estimator"
	"github.com/homevalue/backend/internal/service"
)

func predictCmd() *cobra.Command {
	var (
		modelPath    string
		seed         uint64
		attrs        domain.PropertyAttributes
		propertyType string
	)

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Value one property and print the result as JSON",
		Long: `Run the prediction pipeline once using the local model. The model is
loaded from --model-path, or fitted and saved there when missing.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if attrs.Sqft <= 0 {
				return errors.New("--sqft must be greater than 0")
			}

			model, err := estimator.LoadOrBootstrap(modelPath, seed)
			if err != nil {
				return err
			}

			attrs.PropertyType = domain.PropertyType(propertyType)
			result, err := service.NewPredictionService(model, service.DefaultRandom()).Predict(cmd.Context(), attrs)
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode result: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}

	f := cmd.Flags()
	f.StringVar(&modelPath, "model-path", defaultModelPath, "model file to load or create")
	f.Uint64Var(&seed, "seed", defaultSeed, "seed used when the model has to be fitted")
	f.Float64Var(&attrs.Sqft, "sqft", 2000, "living area in square feet")
	f.IntVar(&attrs.Bedrooms, "bedrooms", 3, "number of bedrooms")
	f.Float64Var(&attrs.Bathrooms, "bathrooms", 2, "number of bathrooms")
	f.IntVar(&attrs.LocationRating, "location-rating", 7, "location rating (1-10)")
	f.IntVar(&attrs.PropertyAge, "property-age", 10, "age in years")
	f.BoolVar(&attrs.HasGarage, "garage", false, "property has a garage")
	f.BoolVar(&attrs.HasPool, "pool", false, "property has a pool")
	f.IntVar(&attrs.SchoolQuality, "school-quality", 7, "school quality (1-10)")
	f.IntVar(&attrs.CrimeRate, "crime-rate", 3, "crime rate (1-10, lower is better)")
	f.StringVar(&propertyType, "type", string(domain.PropertyTypeSingleFamily), "apartment, townhouse, single_family or condo")

	return cmd
}
