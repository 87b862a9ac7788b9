package encoder

import (
	"github.com/ShayCichocki/targetenc/internal/schema"
)

// ValidateSchema performs the stage's pre-flight checks against an input
// schema and, on success, returns the output schema: the input schema with
// one nullable numeric field appended per configured input column, in input
// order.
//
// Checks run in order and stop at the first failure: a label column is
// configured, input columns are configured, the label column exists, every
// input column exists, and no input column collides with a derived output
// column name. Existence and collision checks run against the flattened
// schema, so nested fields are addressed by their dotted names; the output
// schema keeps the original nested structure.
//
// ValidateSchema is a pure function of its inputs: no side effects, and the
// same inputs always produce the same result.
func ValidateSchema(p *Params, in schema.Schema) (schema.Schema, error) {
	if p.LabelCol() == "" {
		return schema.Schema{}, &SchemaValidationError{Reason: "label column is not set"}
	}
	inputs := p.InputCols()
	if len(inputs) == 0 {
		return schema.Schema{}, &SchemaValidationError{Reason: "input columns are not set"}
	}
	names := in.NameSet()
	if _, ok := names[p.LabelCol()]; !ok {
		return schema.Schema{}, &SchemaValidationError{
			Reason:  "label column not found in schema",
			Columns: []string{p.LabelCol()},
		}
	}
	for _, col := range inputs {
		if _, ok := names[col]; !ok {
			return schema.Schema{}, &SchemaValidationError{
				Reason:  "input column not found in schema",
				Columns: []string{col},
			}
		}
	}
	outputs := p.OutputCols()
	outSet := make(map[string]struct{}, len(outputs))
	for _, col := range outputs {
		outSet[col] = struct{}{}
	}
	var overlap []string
	for _, col := range inputs {
		if _, ok := outSet[col]; ok {
			overlap = append(overlap, col)
		}
	}
	if len(overlap) > 0 {
		return schema.Schema{}, &SchemaValidationError{
			Reason:  "column names appear as both input and output",
			Columns: overlap,
		}
	}

	appended := make([]schema.Field, len(outputs))
	for i, name := range outputs {
		appended[i] = schema.Field{Name: name, Type: schema.Numeric, Nullable: true}
	}
	return in.Append(appended...), nil
}
