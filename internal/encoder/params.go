// Package encoder configures, validates, and runs the target-encoder
// transform stage: it replaces categorical columns with a statistic of a
// label column computed over the rows sharing each category.
package encoder

import (
	"github.com/ShayCichocki/targetenc/pkg/models"
)

// OutputSuffix is appended to each input column name to derive the name of
// its encoded output column.
const OutputSuffix = "_te"

// DefaultLabelCol is the label column name used when none is configured.
const DefaultLabelCol = "label"

// Params holds the stage configuration. Every stage instance owns its own
// Params; defaults are filled in by NewParams and overwritten by the
// setters. Setters do not re-validate cross-field rules, that is
// ValidateSchema's job; only the holdout setter rejects values, because the
// enum's variant set and predicate are checked at set time.
//
// Params is not safe for concurrent mutation. Callers sharing one instance
// across pipeline branches must treat it as read-only after setup.
type Params struct {
	labelCol  string
	foldCol   string
	inputCols []string
	holdout   models.HoldoutStrategy
	accepts   models.StrategyPredicate
	blending  *models.BlendingSettings
	noise     models.NoiseSettings
}

// NewParams returns a Params with stage defaults: label column "label", no
// input columns, holdout None, default noise, blending and fold column
// unset, and every strategy accepted.
func NewParams() *Params {
	return NewParamsWithPredicate(models.AnyStrategy)
}

// NewParamsWithPredicate is NewParams with a custom strategy predicate. The
// predicate narrows which holdout strategies SetHoldoutStrategy accepts; a
// nil predicate accepts every strategy.
func NewParamsWithPredicate(accepts models.StrategyPredicate) *Params {
	if accepts == nil {
		accepts = models.AnyStrategy
	}
	return &Params{
		labelCol: DefaultLabelCol,
		holdout:  models.HoldoutNone,
		accepts:  accepts,
		noise:    models.DefaultNoiseSettings(),
	}
}

// SetLabelCol sets the label column name. An empty name unsets the label
// column; validation will then fail.
func (p *Params) SetLabelCol(name string) { p.labelCol = name }

// LabelCol returns the configured label column name, "" when unset.
func (p *Params) LabelCol() string { return p.labelCol }

// SetFoldCol sets the fold column name. An empty name unsets it.
func (p *Params) SetFoldCol(name string) { p.foldCol = name }

// FoldCol returns the configured fold column name, "" when unset.
func (p *Params) FoldCol() string { return p.foldCol }

// SetInputCols sets the columns to encode, in order. Duplicates are kept
// as-is; they are neither rejected nor deduplicated.
func (p *Params) SetInputCols(names []string) { p.inputCols = names }

// InputCols returns the configured input columns in order. The returned
// slice is the stored one; callers must not modify it.
func (p *Params) InputCols() []string { return p.inputCols }

// OutputCols derives the encoded output column names: each input column
// plus OutputSuffix, in input order. The result is recomputed on every call
// so it can never drift from the current input columns.
func (p *Params) OutputCols() []string {
	out := make([]string, len(p.inputCols))
	for i, name := range p.inputCols {
		out[i] = name + OutputSuffix
	}
	return out
}

// SetHoldoutStrategy sets the holdout strategy. Values outside the variant
// set, and values the stage's predicate refuses, are rejected with a
// ConfigurationError.
func (p *Params) SetHoldoutStrategy(s models.HoldoutStrategy) error {
	if !s.Valid() {
		_, err := models.ParseHoldoutStrategy(string(s))
		return err
	}
	if !p.accepts(s) {
		return &models.ConfigurationError{
			Option: "holdoutStrategy",
			Reason: "value " + string(s) + " is not accepted by this stage",
		}
	}
	p.holdout = s
	return nil
}

// HoldoutStrategy returns the configured holdout strategy.
func (p *Params) HoldoutStrategy() models.HoldoutStrategy { return p.holdout }

// SetBlending enables blending with the given settings.
func (p *Params) SetBlending(b models.BlendingSettings) { p.blending = &b }

// ClearBlending disables blending. This is the default state.
func (p *Params) ClearBlending() { p.blending = nil }

// Blending returns the blending settings and whether blending is enabled.
// Unset is distinct from a zero-valued settings instance.
func (p *Params) Blending() (models.BlendingSettings, bool) {
	if p.blending == nil {
		return models.BlendingSettings{}, false
	}
	return *p.blending, true
}

// SetNoise sets the noise settings.
func (p *Params) SetNoise(n models.NoiseSettings) { p.noise = n }

// Noise returns the noise settings, defaulting per DefaultNoiseSettings.
func (p *Params) Noise() models.NoiseSettings { return p.noise }
