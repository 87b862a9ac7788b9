package encoder

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"

	"github.com/ShayCichocki/targetenc/internal/frame"
	"github.com/ShayCichocki/targetenc/internal/schema"
	"github.com/ShayCichocki/targetenc/pkg/models"
)

// TargetEncoder learns per-category label statistics from a frame and
// appends one encoded column per configured input column. Configuration is
// read from its Params; Fit validates the frame's schema before touching
// any data.
type TargetEncoder struct {
	// ID identifies this stage instance.
	ID string

	params *Params
	fitted *model
}

// model is the fitted state: label statistics grouped by category, per
// distinct input column.
type model struct {
	globalMean float64
	columns    map[string]*fittedColumn
	outSchema  schema.Schema

	// labelLevels freezes the fit frame's level numbering for string
	// labels. Leave-one-out subtraction on another frame must encode that
	// frame's labels with the fitted numbering, not its own.
	labelLevels map[string]int
}

type fittedColumn struct {
	groups map[string]*groupStats
}

// groupStats accumulates the label sum and row count for one category.
// folds holds per-fold partial sums when a fold column is configured, so
// out-of-fold statistics can be derived by subtraction.
type groupStats struct {
	sum   float64
	count float64
	folds map[string]*foldStats
}

type foldStats struct {
	sum   float64
	count float64
}

// New creates a target encoder stage around the given configuration.
func New(p *Params) *TargetEncoder {
	return &TargetEncoder{ID: uuid.NewString(), params: p}
}

// Params returns the stage configuration.
func (e *TargetEncoder) Params() *Params { return e.params }

// OutputSchema returns the schema produced at fit time, and false if the
// encoder has not been fitted yet.
func (e *TargetEncoder) OutputSchema() (schema.Schema, bool) {
	if e.fitted == nil {
		return schema.Schema{}, false
	}
	return e.fitted.outSchema, true
}

// Fit validates the frame's schema, marks the input and label columns
// categorical, and learns per-category label statistics. Rows with a null
// label are left out of every statistic.
func (e *TargetEncoder) Fit(fr *frame.Frame) error {
	p := e.params
	outSchema, err := ValidateSchema(p, fr.Schema())
	if err != nil {
		return err
	}
	if p.HoldoutStrategy() == models.HoldoutKFold && p.FoldCol() == "" {
		return &models.ConfigurationError{
			Option: "foldCol",
			Reason: "required when holdoutStrategy is KFold",
		}
	}
	var foldCol *frame.Column
	if p.FoldCol() != "" {
		var ok bool
		foldCol, ok = fr.Column(p.FoldCol())
		if !ok {
			return &SchemaValidationError{
				Reason:  "fold column not found in schema",
				Columns: []string{p.FoldCol()},
			}
		}
	}

	labels, labelOK, err := labelValues(fr, p.LabelCol(), nil)
	if err != nil {
		return err
	}
	if err := MarkCategorical(p, fr); err != nil {
		return err
	}
	var labelLevels map[string]int
	if col, ok := fr.Column(p.LabelCol()); ok && col.LevelEncoded() {
		labelLevels = make(map[string]int, len(col.Levels()))
		for i, level := range col.Levels() {
			labelLevels[level] = i
		}
	}

	var present []float64
	for i, ok := range labelOK {
		if ok {
			present = append(present, labels[i])
		}
	}
	if len(present) == 0 {
		return fmt.Errorf("fitting %s: no non-null label values", p.LabelCol())
	}

	m := &model{
		globalMean:  stat.Mean(present, nil),
		columns:     make(map[string]*fittedColumn),
		outSchema:   outSchema,
		labelLevels: labelLevels,
	}
	for _, name := range p.InputCols() {
		if _, done := m.columns[name]; done {
			continue
		}
		col, ok := fr.Column(name)
		if !ok {
			return fmt.Errorf("fitting %s: column not found", name)
		}
		fc := &fittedColumn{groups: make(map[string]*groupStats)}
		for i := 0; i < fr.NumRows(); i++ {
			if col.IsNull(i) || !labelOK[i] {
				continue
			}
			cat := col.Value(i)
			g := fc.groups[cat]
			if g == nil {
				g = &groupStats{}
				if foldCol != nil {
					g.folds = make(map[string]*foldStats)
				}
				fc.groups[cat] = g
			}
			g.sum += labels[i]
			g.count++
			if foldCol != nil {
				fv := foldCol.Value(i)
				fs := g.folds[fv]
				if fs == nil {
					fs = &foldStats{}
					g.folds[fv] = fs
				}
				fs.sum += labels[i]
				fs.count++
			}
		}
		m.columns[name] = fc
	}
	e.fitted = m
	return nil
}

// Transform appends the encoded columns to the frame, honoring the
// configured holdout strategy, blending, and noise. The frame must carry
// every input column; LeaveOneOut additionally needs the label column and
// KFold the fold column, since both subtract the current row's or fold's
// contribution.
func (e *TargetEncoder) Transform(fr *frame.Frame) error {
	if e.fitted == nil {
		return fmt.Errorf("transform called before fit")
	}
	p := e.params

	var labels []float64
	var labelOK []bool
	if p.HoldoutStrategy() == models.HoldoutLeaveOneOut {
		var err error
		labels, labelOK, err = labelValues(fr, p.LabelCol(), e.fitted.labelLevels)
		if err != nil {
			return err
		}
	}
	var foldCol *frame.Column
	if p.HoldoutStrategy() == models.HoldoutKFold {
		var ok bool
		foldCol, ok = fr.Column(p.FoldCol())
		if !ok {
			return &SchemaValidationError{
				Reason:  "fold column not found in schema",
				Columns: []string{p.FoldCol()},
			}
		}
	}

	rng := newNoiseRand(p.Noise())
	blending, blend := p.Blending()
	outputs := p.OutputCols()

	for idx, name := range p.InputCols() {
		col, ok := fr.Column(name)
		if !ok {
			return fmt.Errorf("transforming %s: column not found", name)
		}
		fc := e.fitted.columns[name]
		if fc == nil {
			return fmt.Errorf("transforming %s: column was not fitted", name)
		}
		vals := make([]float64, fr.NumRows())
		nulls := make([]bool, fr.NumRows())
		for i := 0; i < fr.NumRows(); i++ {
			if col.IsNull(i) {
				nulls[i] = true
				continue
			}
			var sum, count float64
			if g := fc.groups[col.Value(i)]; g != nil {
				sum, count = g.sum, g.count
				switch p.HoldoutStrategy() {
				case models.HoldoutLeaveOneOut:
					if labelOK[i] {
						sum -= labels[i]
						count--
					}
				case models.HoldoutKFold:
					if fs := g.folds[foldCol.Value(i)]; fs != nil {
						sum -= fs.sum
						count -= fs.count
					}
				}
			}
			encoded := e.fitted.globalMean
			if count > 0 {
				encoded = sum / count
			}
			if blend {
				w := blendWeight(count, blending)
				encoded = w*encoded + (1-w)*e.fitted.globalMean
			}
			if p.Noise().Amount > 0 {
				encoded += (rng.Float64()*2 - 1) * p.Noise().Amount
			}
			vals[i] = encoded
		}
		if err := fr.AddNumericColumn(outputs[idx], vals, nulls); err != nil {
			return fmt.Errorf("transforming %s: %w", name, err)
		}
	}
	return nil
}

// FitTransform fits on the frame and transforms it in one step.
func (e *TargetEncoder) FitTransform(fr *frame.Frame) error {
	if err := e.Fit(fr); err != nil {
		return err
	}
	return e.Transform(fr)
}

// blendWeight is the logistic weight given to the group statistic: 0.5 when
// the group size equals the inflection point, approaching 1 for larger
// groups at a rate controlled by the smoothing.
func blendWeight(count float64, b models.BlendingSettings) float64 {
	return 1 / (1 + math.Exp(-(count-b.InflectionPoint)/b.Smoothing))
}

// newNoiseRand builds the noise source; an unseeded setting draws a fresh
// seed per call.
func newNoiseRand(n models.NoiseSettings) *rand.Rand {
	seed := n.Seed
	if seed == models.UnseededNoise {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// labelValues extracts the numeric view of the label column: parsed values
// for numeric columns, level indexes for categorical ones. Null cells are
// flagged rather than valued. A non-nil levels map replays a previously
// learned numbering: raw cells are looked up in it instead of the column's
// own levels, and cells it does not cover are flagged like nulls.
func labelValues(fr *frame.Frame, name string, levels map[string]int) ([]float64, []bool, error) {
	col, ok := fr.Column(name)
	if !ok {
		return nil, nil, fmt.Errorf("label column %s not found", name)
	}
	vals := make([]float64, col.Len())
	present := make([]bool, col.Len())
	if levels != nil {
		for i := 0; i < col.Len(); i++ {
			if col.IsNull(i) {
				continue
			}
			if v, ok := levels[col.Value(i)]; ok {
				vals[i] = float64(v)
				present[i] = true
			}
		}
		return vals, present, nil
	}
	if col.Type() == frame.String {
		// Label levels are only assigned once the column is categorical.
		if err := fr.ToCategorical(name); err != nil {
			return nil, nil, err
		}
	}
	for i := 0; i < col.Len(); i++ {
		if col.IsNull(i) {
			continue
		}
		v, err := col.Float(i)
		if err != nil {
			return nil, nil, fmt.Errorf("label column %s: %w", name, err)
		}
		vals[i] = v
		present[i] = true
	}
	return vals, present, nil
}
