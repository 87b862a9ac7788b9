package encoder

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/ShayCichocki/targetenc/internal/schema"
)

func flatSchema(names ...string) schema.Schema {
	fields := make([]schema.Field, len(names))
	for i, name := range names {
		fields[i] = schema.Field{Name: name, Type: schema.String}
	}
	return schema.New(fields...)
}

func schemaError(t *testing.T, err error) *SchemaValidationError {
	t.Helper()
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	var vErr *SchemaValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected *SchemaValidationError, got %T: %v", err, err)
	}
	return vErr
}

func TestValidateSchema_Success(t *testing.T) {
	p := NewParams()
	p.SetInputCols([]string{"color", "city"})

	out, err := ValidateSchema(p, flatSchema("label", "color", "city"))
	if err != nil {
		t.Fatalf("ValidateSchema failed: %v", err)
	}

	got := out.Names()
	want := []string{"label", "color", "city", "color_te", "city_te"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("output schema names = %v, want %v", got, want)
	}

	for _, f := range out.Fields[3:] {
		if f.Type != schema.Numeric {
			t.Errorf("appended field %s type = %q, want numeric", f.Name, f.Type)
		}
		if !f.Nullable {
			t.Errorf("appended field %s should be nullable", f.Name)
		}
	}
}

func TestValidateSchema_DoesNotModifyInput(t *testing.T) {
	p := NewParams()
	p.SetInputCols([]string{"color"})
	in := flatSchema("label", "color")

	if _, err := ValidateSchema(p, in); err != nil {
		t.Fatalf("ValidateSchema failed: %v", err)
	}

	if len(in.Fields) != 2 {
		t.Errorf("input schema was modified: %v", in.Names())
	}
}

func TestValidateSchema_LabelUnset(t *testing.T) {
	p := NewParams()
	p.SetLabelCol("")
	p.SetInputCols([]string{"color"})

	_, err := ValidateSchema(p, flatSchema("label", "color"))
	vErr := schemaError(t, err)
	if !strings.Contains(vErr.Reason, "label column") {
		t.Errorf("error should mention the label column, got %q", vErr.Reason)
	}
}

func TestValidateSchema_LabelUnsetReportedFirst(t *testing.T) {
	// The label check runs before every other invariant, so an otherwise
	// completely broken configuration still reports the missing label.
	p := NewParams()
	p.SetLabelCol("")

	_, err := ValidateSchema(p, schema.New())
	vErr := schemaError(t, err)
	if !strings.Contains(vErr.Reason, "label column is not set") {
		t.Errorf("got %q, want label-unset error first", vErr.Reason)
	}
}

func TestValidateSchema_EmptyInputCols(t *testing.T) {
	p := NewParams()

	_, err := ValidateSchema(p, flatSchema("label"))
	vErr := schemaError(t, err)
	if !strings.Contains(vErr.Reason, "input columns") {
		t.Errorf("error should mention input columns, got %q", vErr.Reason)
	}
}

func TestValidateSchema_LabelNotInSchema(t *testing.T) {
	p := NewParams()
	p.SetLabelCol("y")
	p.SetInputCols([]string{"color"})

	_, err := ValidateSchema(p, flatSchema("label", "color"))
	vErr := schemaError(t, err)
	if !reflect.DeepEqual(vErr.Columns, []string{"y"}) {
		t.Errorf("error should name column y, got %v", vErr.Columns)
	}
}

func TestValidateSchema_InputColNotInSchema(t *testing.T) {
	p := NewParams()
	p.SetInputCols([]string{"color"})

	_, err := ValidateSchema(p, flatSchema("label", "size"))
	vErr := schemaError(t, err)
	if !reflect.DeepEqual(vErr.Columns, []string{"color"}) {
		t.Errorf("error should name column color, got %v", vErr.Columns)
	}
}

func TestValidateSchema_FirstMissingInputColReported(t *testing.T) {
	p := NewParams()
	p.SetInputCols([]string{"city", "region", "color"})

	_, err := ValidateSchema(p, flatSchema("label", "color"))
	vErr := schemaError(t, err)
	if !reflect.DeepEqual(vErr.Columns, []string{"city"}) {
		t.Errorf("first missing column should be reported, got %v", vErr.Columns)
	}
}

func TestValidateSchema_InputOutputOverlap(t *testing.T) {
	p := NewParams()
	p.SetInputCols([]string{"color_te"})

	_, err := ValidateSchema(p, flatSchema("label", "color_te"))
	vErr := schemaError(t, err)
	if !reflect.DeepEqual(vErr.Columns, []string{"color_te"}) {
		t.Errorf("error should name the overlapping column, got %v", vErr.Columns)
	}
}

func TestValidateSchema_OverlapAcrossColumns(t *testing.T) {
	// "color" derives "color_te", which is itself an input column.
	p := NewParams()
	p.SetInputCols([]string{"color", "color_te"})

	_, err := ValidateSchema(p, flatSchema("label", "color", "color_te"))
	vErr := schemaError(t, err)
	if !reflect.DeepEqual(vErr.Columns, []string{"color_te"}) {
		t.Errorf("error should name color_te, got %v", vErr.Columns)
	}
}

func TestValidateSchema_DuplicateInputColsAccepted(t *testing.T) {
	// Duplicates are not deduplicated or rejected; each produces its own
	// output entry.
	p := NewParams()
	p.SetInputCols([]string{"color", "color"})

	out, err := ValidateSchema(p, flatSchema("label", "color"))
	if err != nil {
		t.Fatalf("ValidateSchema failed: %v", err)
	}

	got := out.Names()
	want := []string{"label", "color", "color_te", "color_te"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("output schema names = %v, want %v", got, want)
	}
}

func TestValidateSchema_NestedSchema(t *testing.T) {
	in := schema.New(
		schema.Field{Name: "label", Type: schema.Numeric},
		schema.Field{Name: "address", Type: schema.Struct, Fields: []schema.Field{
			{Name: "city", Type: schema.String},
		}},
	)

	p := NewParams()
	p.SetInputCols([]string{"address.city"})

	out, err := ValidateSchema(p, in)
	if err != nil {
		t.Fatalf("ValidateSchema failed: %v", err)
	}

	// Nested structure is preserved; the new column is appended at the top
	// level.
	if len(out.Fields) != 3 {
		t.Fatalf("expected 3 top-level fields, got %d", len(out.Fields))
	}
	if out.Fields[1].Type != schema.Struct {
		t.Errorf("nested field should stay a struct, got %q", out.Fields[1].Type)
	}
	if out.Fields[2].Name != "address.city_te" {
		t.Errorf("appended field = %q, want %q", out.Fields[2].Name, "address.city_te")
	}
}

func TestValidateSchema_Idempotent(t *testing.T) {
	p := NewParams()
	p.SetInputCols([]string{"color"})
	in := flatSchema("label", "color")

	first, err := ValidateSchema(p, in)
	if err != nil {
		t.Fatalf("first ValidateSchema failed: %v", err)
	}
	second, err := ValidateSchema(p, in)
	if err != nil {
		t.Fatalf("second ValidateSchema failed: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("repeated validation of the same inputs should give the same result")
	}
}
