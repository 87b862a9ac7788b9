package encoder

import "fmt"

// CategoricalConverter is the frame-side operation the stage needs before
// encoding: convert the named column to a categorical column. The operation
// is expected to be idempotent.
type CategoricalConverter interface {
	ToCategorical(name string) error
}

// MarkCategorical converts every configured input column, in configured
// order, and then the label column. It performs no validation of its own;
// callers run ValidateSchema first.
func MarkCategorical(p *Params, fr CategoricalConverter) error {
	for _, name := range p.InputCols() {
		if err := fr.ToCategorical(name); err != nil {
			return fmt.Errorf("marking column %s categorical: %w", name, err)
		}
	}
	if err := fr.ToCategorical(p.LabelCol()); err != nil {
		return fmt.Errorf("marking label column %s categorical: %w", p.LabelCol(), err)
	}
	return nil
}
