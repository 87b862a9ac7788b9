package models

import "fmt"

// UnseededNoise is the seed value meaning "draw a fresh seed on every run".
const UnseededNoise int64 = -1

// BlendingSettings controls how a per-group statistic is mixed with the
// global statistic. Larger groups weight toward the group value;
// InflectionPoint is the group size at which both get equal weight and
// Smoothing sets how sharp the transition around that point is.
type BlendingSettings struct {
	InflectionPoint float64
	Smoothing       float64
}

// NewBlendingSettings builds BlendingSettings. Both fields must be positive.
func NewBlendingSettings(inflectionPoint, smoothing float64) (BlendingSettings, error) {
	if inflectionPoint <= 0 {
		return BlendingSettings{}, &ConfigurationError{
			Option: "blending.inflectionPoint",
			Reason: fmt.Sprintf("must be positive, got %v", inflectionPoint),
		}
	}
	if smoothing <= 0 {
		return BlendingSettings{}, &ConfigurationError{
			Option: "blending.smoothing",
			Reason: fmt.Sprintf("must be positive, got %v", smoothing),
		}
	}
	return BlendingSettings{InflectionPoint: inflectionPoint, Smoothing: smoothing}, nil
}

// NoiseSettings controls the random perturbation added to every encoded
// value to reduce target leakage.
type NoiseSettings struct {
	// Amount scales the noise; zero disables it.
	Amount float64
	// Seed makes the noise reproducible. UnseededNoise means a fresh,
	// nondeterministic seed is used.
	Seed int64
}

// NewNoiseSettings builds NoiseSettings. Amount must be non-negative.
func NewNoiseSettings(amount float64, seed int64) (NoiseSettings, error) {
	if amount < 0 {
		return NoiseSettings{}, &ConfigurationError{
			Option: "noise.amount",
			Reason: fmt.Sprintf("must be non-negative, got %v", amount),
		}
	}
	return NoiseSettings{Amount: amount, Seed: seed}, nil
}

// DefaultNoiseSettings returns the stage default: a small unseeded jitter.
func DefaultNoiseSettings() NoiseSettings {
	return NoiseSettings{Amount: 0.01, Seed: UnseededNoise}
}
