package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ShayCichocki/targetenc/internal/encoder"
	"github.com/ShayCichocki/targetenc/internal/frame"
	"github.com/ShayCichocki/targetenc/internal/schema"
)

var (
	schemaInput   string
	schemaFile    string
	schemaLabel   string
	schemaColumns []string
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Validate a schema and print the encoded output schema",
	Long: `Run the stage's pre-flight checks against a schema and print the
output schema as YAML. The schema comes either from a YAML definition
(--schema) or is derived from a CSV file's header and columns (--input).

This is a dry run: no data is encoded.`,
	RunE: runSchema,
}

func init() {
	schemaCmd.Flags().StringVar(&schemaInput, "input", "", "CSV file to derive the input schema from")
	schemaCmd.Flags().StringVar(&schemaFile, "schema", "", "YAML schema definition file")
	schemaCmd.Flags().StringVar(&schemaLabel, "label", encoder.DefaultLabelCol, "Label column name")
	schemaCmd.Flags().StringSliceVar(&schemaColumns, "columns", nil, "Columns to encode, in order (required)")

	schemaCmd.MarkFlagRequired("columns")
}

func runSchema(cmd *cobra.Command, args []string) error {
	var in schema.Schema
	switch {
	case schemaFile != "":
		var err error
		in, err = schema.LoadFile(schemaFile)
		if err != nil {
			return err
		}
	case schemaInput != "":
		f, err := os.Open(schemaInput)
		if err != nil {
			return fmt.Errorf("opening %s: %w", schemaInput, err)
		}
		defer f.Close()
		fr, err := frame.ReadCSV(f)
		if err != nil {
			return err
		}
		in = fr.Schema()
	default:
		return fmt.Errorf("one of --schema or --input is required")
	}

	params := encoder.NewParams()
	params.SetLabelCol(schemaLabel)
	params.SetInputCols(schemaColumns)

	out, err := encoder.ValidateSchema(params, in)
	if err != nil {
		return err
	}

	data, err := out.Marshal()
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	return nil
}
