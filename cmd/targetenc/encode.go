package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ShayCichocki/targetenc/internal/config"
	"github.com/ShayCichocki/targetenc/internal/encoder"
	"github.com/ShayCichocki/targetenc/internal/frame"
	"github.com/ShayCichocki/targetenc/pkg/models"
)

var (
	encodeInput          string
	encodeOutput         string
	encodeLabel          string
	encodeColumns        []string
	encodeFoldColumn     string
	encodeHoldout        string
	encodeNoiseAmount    float64
	encodeNoiseSeed      int64
	encodeBlendInflect   float64
	encodeBlendSmoothing float64
	encodeConfigPath     string
)

var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Target-encode columns of a CSV file",
	Long: `Read a CSV file, fit a target encoder on it, and write the frame back
out with one encoded column appended per input column.

Examples:
  targetenc encode --input train.csv --output out.csv --label label --columns color,city
  targetenc encode --input train.csv --output out.csv --label y --columns color \
    --holdout KFold --fold-column fold --blend-inflection 10 --blend-smoothing 20`,
	RunE: runEncode,
}

func init() {
	encodeCmd.Flags().StringVar(&encodeInput, "input", "", "Input CSV file (required)")
	encodeCmd.Flags().StringVar(&encodeOutput, "output", "", "Output CSV file (required)")
	encodeCmd.Flags().StringVar(&encodeLabel, "label", "", "Label column name")
	encodeCmd.Flags().StringSliceVar(&encodeColumns, "columns", nil, "Columns to encode, in order (required)")
	encodeCmd.Flags().StringVar(&encodeFoldColumn, "fold-column", "", "Fold column name, required for KFold holdout")
	encodeCmd.Flags().StringVar(&encodeHoldout, "holdout", "", "Holdout strategy: None, LeaveOneOut, or KFold")
	encodeCmd.Flags().Float64Var(&encodeNoiseAmount, "noise-amount", 0, "Noise amount added to each encoded value")
	encodeCmd.Flags().Int64Var(&encodeNoiseSeed, "noise-seed", models.UnseededNoise, "Noise seed, -1 for nondeterministic")
	encodeCmd.Flags().Float64Var(&encodeBlendInflect, "blend-inflection", 0, "Blending inflection point (group size with equal weights)")
	encodeCmd.Flags().Float64Var(&encodeBlendSmoothing, "blend-smoothing", 0, "Blending transition smoothing")
	encodeCmd.Flags().StringVar(&encodeConfigPath, "config", "", "Stage defaults file (default: nearest .targetenc.yaml)")

	encodeCmd.MarkFlagRequired("input")
	encodeCmd.MarkFlagRequired("output")
	encodeCmd.MarkFlagRequired("columns")
}

func runEncode(cmd *cobra.Command, args []string) error {
	params, err := buildParams(cmd)
	if err != nil {
		return err
	}

	in, err := os.Open(encodeInput)
	if err != nil {
		return fmt.Errorf("opening %s: %w", encodeInput, err)
	}
	defer in.Close()

	fr, err := frame.ReadCSV(in)
	if err != nil {
		return err
	}

	enc := encoder.New(params)
	if err := enc.FitTransform(fr); err != nil {
		return err
	}

	out, err := os.Create(encodeOutput)
	if err != nil {
		return fmt.Errorf("creating %s: %w", encodeOutput, err)
	}
	defer out.Close()

	if err := fr.WriteCSV(out); err != nil {
		return err
	}

	color.Green("✓ Encoded %d rows into %s", fr.NumRows(), encodeOutput)
	for _, name := range params.OutputCols() {
		fmt.Printf("  + %s\n", name)
	}
	return nil
}

// buildParams assembles the stage configuration: file/env defaults first,
// then explicit flag overrides.
func buildParams(cmd *cobra.Command) (*encoder.Params, error) {
	var cfg *config.Config
	var err error
	if encodeConfigPath != "" {
		cfg, err = config.LoadFromPath(encodeConfigPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	params := encoder.NewParams()
	if err := cfg.Apply(params); err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("label") {
		params.SetLabelCol(encodeLabel)
	}
	params.SetInputCols(encodeColumns)
	if cmd.Flags().Changed("fold-column") {
		params.SetFoldCol(encodeFoldColumn)
	}
	if cmd.Flags().Changed("holdout") {
		strategy, err := models.ParseHoldoutStrategy(encodeHoldout)
		if err != nil {
			return nil, err
		}
		if err := params.SetHoldoutStrategy(strategy); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("noise-amount") || cmd.Flags().Changed("noise-seed") {
		// Override only the flag that was given; the other half keeps its
		// file/env value instead of reverting to the flag default.
		amount, seed := params.Noise().Amount, params.Noise().Seed
		if cmd.Flags().Changed("noise-amount") {
			amount = encodeNoiseAmount
		}
		if cmd.Flags().Changed("noise-seed") {
			seed = encodeNoiseSeed
		}
		noise, err := models.NewNoiseSettings(amount, seed)
		if err != nil {
			return nil, err
		}
		params.SetNoise(noise)
	}
	if cmd.Flags().Changed("blend-inflection") || cmd.Flags().Changed("blend-smoothing") {
		blending, err := models.NewBlendingSettings(encodeBlendInflect, encodeBlendSmoothing)
		if err != nil {
			return nil, err
		}
		params.SetBlending(blending)
	}
	return params, nil
}
