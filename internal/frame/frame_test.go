package frame

import (
	"reflect"
	"testing"

	"github.com/ShayCichocki/targetenc/internal/schema"
)

func TestFrame_AddColumns(t *testing.T) {
	fr := New()
	if err := fr.AddStringColumn("color", []string{"a", "b", "a"}); err != nil {
		t.Fatalf("AddStringColumn failed: %v", err)
	}
	if err := fr.AddNumericColumn("price", []float64{1.5, 2, 3}, nil); err != nil {
		t.Fatalf("AddNumericColumn failed: %v", err)
	}

	if fr.NumRows() != 3 {
		t.Errorf("NumRows() = %d, want 3", fr.NumRows())
	}
	if fr.NumCols() != 2 {
		t.Errorf("NumCols() = %d, want 2", fr.NumCols())
	}

	col, ok := fr.Column("price")
	if !ok {
		t.Fatal("price column not found")
	}
	v, err := col.Float(0)
	if err != nil {
		t.Fatalf("Float(0) failed: %v", err)
	}
	if v != 1.5 {
		t.Errorf("price[0] = %v, want 1.5", v)
	}
}

func TestFrame_RowCountMismatch(t *testing.T) {
	fr := New()
	if err := fr.AddStringColumn("color", []string{"a", "b"}); err != nil {
		t.Fatalf("AddStringColumn failed: %v", err)
	}
	if err := fr.AddNumericColumn("price", []float64{1}, nil); err == nil {
		t.Fatal("expected error for mismatched row count")
	}
}

func TestFrame_DuplicateColumn(t *testing.T) {
	fr := New()
	if err := fr.AddStringColumn("color", []string{"a"}); err != nil {
		t.Fatalf("AddStringColumn failed: %v", err)
	}
	if err := fr.AddStringColumn("color", []string{"b"}); err == nil {
		t.Fatal("expected error for duplicate column name")
	}
}

func TestFrame_EmptyCellsAreNull(t *testing.T) {
	fr := New()
	if err := fr.AddStringColumn("color", []string{"a", "", "b"}); err != nil {
		t.Fatalf("AddStringColumn failed: %v", err)
	}

	col, _ := fr.Column("color")
	if col.IsNull(0) || !col.IsNull(1) || col.IsNull(2) {
		t.Error("only the empty cell should be null")
	}
}

func TestFrame_ToCategorical(t *testing.T) {
	fr := New()
	if err := fr.AddStringColumn("color", []string{"red", "blue", "red", ""}); err != nil {
		t.Fatalf("AddStringColumn failed: %v", err)
	}

	if err := fr.ToCategorical("color"); err != nil {
		t.Fatalf("ToCategorical failed: %v", err)
	}

	col, _ := fr.Column("color")
	if col.Type() != Categorical {
		t.Errorf("Type() = %q, want categorical", col.Type())
	}
	// Levels in first-appearance order; nulls contribute no level.
	if !reflect.DeepEqual(col.Levels(), []string{"red", "blue"}) {
		t.Errorf("Levels() = %v, want [red blue]", col.Levels())
	}

	v, err := col.Float(1)
	if err != nil {
		t.Fatalf("Float(1) failed: %v", err)
	}
	if v != 1 {
		t.Errorf("level index of blue = %v, want 1", v)
	}
}

func TestFrame_ToCategorical_Idempotent(t *testing.T) {
	fr := New()
	if err := fr.AddStringColumn("color", []string{"red", "blue"}); err != nil {
		t.Fatalf("AddStringColumn failed: %v", err)
	}

	if err := fr.ToCategorical("color"); err != nil {
		t.Fatalf("first ToCategorical failed: %v", err)
	}
	col, _ := fr.Column("color")
	levels := col.Levels()

	if err := fr.ToCategorical("color"); err != nil {
		t.Fatalf("second ToCategorical failed: %v", err)
	}
	if !reflect.DeepEqual(col.Levels(), levels) {
		t.Errorf("repeat conversion changed levels: %v vs %v", col.Levels(), levels)
	}
}

func TestFrame_ToCategorical_NumericKeepsValues(t *testing.T) {
	fr := New()
	if err := fr.AddNumericColumn("label", []float64{1, 0, 1}, nil); err != nil {
		t.Fatalf("AddNumericColumn failed: %v", err)
	}

	if err := fr.ToCategorical("label"); err != nil {
		t.Fatalf("ToCategorical failed: %v", err)
	}

	// The numeric view of a converted numeric column stays the parsed
	// values, not level indexes.
	col, _ := fr.Column("label")
	v, err := col.Float(2)
	if err != nil {
		t.Fatalf("Float(2) failed: %v", err)
	}
	if v != 1 {
		t.Errorf("Float(2) = %v, want 1", v)
	}
	if col.LevelEncoded() {
		t.Error("LevelEncoded() = true for numeric-origin column, want false")
	}
}

func TestColumn_LevelEncoded(t *testing.T) {
	fr := New()
	if err := fr.AddStringColumn("color", []string{"a", "b"}); err != nil {
		t.Fatalf("AddStringColumn failed: %v", err)
	}
	col, _ := fr.Column("color")
	if col.LevelEncoded() {
		t.Error("LevelEncoded() = true before conversion, want false")
	}
	if err := fr.ToCategorical("color"); err != nil {
		t.Fatalf("ToCategorical failed: %v", err)
	}
	if !col.LevelEncoded() {
		t.Error("LevelEncoded() = false for string-origin categorical, want true")
	}
}

func TestFrame_ToCategorical_Missing(t *testing.T) {
	fr := New()
	if err := fr.ToCategorical("absent"); err == nil {
		t.Fatal("expected error for missing column")
	}
}

func TestFrame_Schema(t *testing.T) {
	fr := New()
	if err := fr.AddStringColumn("color", []string{"a", ""}); err != nil {
		t.Fatalf("AddStringColumn failed: %v", err)
	}
	if err := fr.AddNumericColumn("price", []float64{1, 2}, nil); err != nil {
		t.Fatalf("AddNumericColumn failed: %v", err)
	}
	if err := fr.ToCategorical("color"); err != nil {
		t.Fatalf("ToCategorical failed: %v", err)
	}

	s := fr.Schema()
	want := schema.New(
		schema.Field{Name: "color", Type: schema.Categorical, Nullable: true},
		schema.Field{Name: "price", Type: schema.Numeric},
	)
	if !reflect.DeepEqual(s, want) {
		t.Errorf("Schema() = %+v, want %+v", s, want)
	}
}

func TestColumn_FloatOnString(t *testing.T) {
	fr := New()
	if err := fr.AddStringColumn("color", []string{"a"}); err != nil {
		t.Fatalf("AddStringColumn failed: %v", err)
	}

	col, _ := fr.Column("color")
	if _, err := col.Float(0); err == nil {
		t.Fatal("expected error: string columns have no numeric view")
	}
}

func TestColumn_FloatOnNull(t *testing.T) {
	fr := New()
	if err := fr.AddNumericColumn("price", []float64{0}, []bool{true}); err != nil {
		t.Fatalf("AddNumericColumn failed: %v", err)
	}

	col, _ := fr.Column("price")
	if _, err := col.Float(0); err == nil {
		t.Fatal("expected error for null cell")
	}
}
