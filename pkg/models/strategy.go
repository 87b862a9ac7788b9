package models

import (
	"fmt"
	"strings"
)

// HoldoutStrategy selects which rows are excluded from a group's label
// statistic when a target encoding is computed.
type HoldoutStrategy string

const (
	// HoldoutNone uses every row of the group, including the current row.
	HoldoutNone HoldoutStrategy = "None"
	// HoldoutLeaveOneOut excludes only the current row.
	HoldoutLeaveOneOut HoldoutStrategy = "LeaveOneOut"
	// HoldoutKFold excludes all rows sharing the current row's fold.
	// Requires a fold column to be configured on the stage.
	HoldoutKFold HoldoutStrategy = "KFold"
)

// HoldoutStrategies lists every known strategy in declaration order.
var HoldoutStrategies = []HoldoutStrategy{HoldoutNone, HoldoutLeaveOneOut, HoldoutKFold}

// Valid returns true if the strategy is a known value. Matching is
// case-sensitive.
func (s HoldoutStrategy) Valid() bool {
	switch s {
	case HoldoutNone, HoldoutLeaveOneOut, HoldoutKFold:
		return true
	default:
		return false
	}
}

// StrategyPredicate restricts which strategies a stage accepts beyond the
// closed variant set.
type StrategyPredicate func(HoldoutStrategy) bool

// AnyStrategy accepts every known strategy.
func AnyStrategy(HoldoutStrategy) bool { return true }

// ParseHoldoutStrategy converts a string to a HoldoutStrategy. Matching is
// exact and case-sensitive; any other input fails with an error listing the
// valid names.
func ParseHoldoutStrategy(s string) (HoldoutStrategy, error) {
	hs := HoldoutStrategy(s)
	if !hs.Valid() {
		return "", &ConfigurationError{
			Option: "holdoutStrategy",
			Reason: fmt.Sprintf("unknown value %q, valid values are %s", s, strategyNames()),
		}
	}
	return hs, nil
}

func strategyNames() string {
	names := make([]string, len(HoldoutStrategies))
	for i, s := range HoldoutStrategies {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
