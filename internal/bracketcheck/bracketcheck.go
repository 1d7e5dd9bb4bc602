// Package bracketcheck validates bracket edits before they are sent to the
// API. The original console saved anything; whether overlapping ranges should
// be rejected was never settled server-side, so the policy is configurable.
package bracketcheck

import (
	"fmt"

	"pratico-web/internal/adminapi"
)

type Policy string

const (
	// PolicyOff accepts every edit (the historical behavior).
	PolicyOff Policy = "off"
	// PolicyOrdered rejects edits where range_from exceeds range_to.
	PolicyOrdered Policy = "ordered"
	// PolicyStrict additionally rejects overlap with the table's other
	// active brackets.
	PolicyStrict Policy = "strict"
)

func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicyOff, PolicyOrdered, PolicyStrict:
		return Policy(s), nil
	case "":
		return PolicyOff, nil
	}
	return "", fmt.Errorf("unknown bracket policy %q", s)
}

// Check applies the policy to an edited bracket. siblings is the bracket list
// as loaded on the detail page; the edited bracket itself is skipped by id.
// Bounds are inclusive on both ends, so ranges sharing an endpoint overlap.
func Check(p Policy, edited adminapi.FeeBracket, siblings []adminapi.FeeBracket) error {
	if p == PolicyOff {
		return nil
	}
	if edited.RangeFrom > edited.RangeTo {
		return fmt.Errorf("range_from %.2f greater than range_to %.2f", edited.RangeFrom, edited.RangeTo)
	}
	if p != PolicyStrict || !edited.Active {
		return nil
	}
	for _, s := range siblings {
		if s.ID == edited.ID || !s.Active {
			continue
		}
		if edited.RangeFrom <= s.RangeTo && s.RangeFrom <= edited.RangeTo {
			return fmt.Errorf("range %.2f-%.2f overlaps bracket %s (%.2f-%.2f)",
				edited.RangeFrom, edited.RangeTo, s.ID, s.RangeFrom, s.RangeTo)
		}
	}
	return nil
}
