// Package label derives the recommendation flags stored alongside each
// daily signal.
//
// Policy for rows that were NOT recommended: when the ground-truth success
// flag is known, a "prediction success" means the model correctly predicted
// down/no-move, so ActualIsUp is the logical complement of the flag. IsHit
// stays null because a row that was never recommended is never graded.
package label

import "strings"

// Labels holds the derived recommendation flags. ActualIsUp and IsHit are
// nil when the ground-truth outcome is unknown; IsHit is also nil whenever
// the row was not recommended.
type Labels struct {
	IsRecommended bool
	ActualIsUp    *bool
	IsHit         *bool
}

// Derive computes the stored flags from a positive ratio, the binarization
// threshold and an optional ground-truth success flag.
func Derive(positiveRatio, threshold float64, wasSuccess *bool) Labels {
	// Strict inequality: equal-to-threshold is not a recommendation.
	isRecommended := positiveRatio > threshold

	labels := Labels{IsRecommended: isRecommended}
	if wasSuccess == nil {
		return labels
	}

	actualIsUp := *wasSuccess
	if !isRecommended {
		actualIsUp = !*wasSuccess
	}
	labels.ActualIsUp = &actualIsUp

	if isRecommended {
		isHit := *wasSuccess
		labels.IsHit = &isHit
	}
	return labels
}

// ParseSuccessFlag maps the CSV's Prediction_Success column to a tri-state
// flag: "success" -> true, "fail" -> false, anything else -> unknown.
func ParseSuccessFlag(raw string) *bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "success":
		v := true
		return &v
	case "fail":
		v := false
		return &v
	default:
		return nil
	}
}
