package leave

import (
	"fmt"
	"time"
)

// Resolve ranks the overrides that apply to date. Only approved overrides
// covering the date participate. The full-day winner follows
// FullDayPrecedence; among partial permissions the earliest exit and the
// latest entry win.
//
// When more than one full-day kind covers the date the highest-ranked one is
// still returned, together with ErrAmbiguousOverride so the caller can report
// the data-integrity problem.
func Resolve(date time.Time, overrides []Override) (Resolution, error) {
	var res Resolution
	present := make(map[OverrideKind]bool, len(FullDayPrecedence))

	for _, o := range overrides {
		if !o.IsApproved() || !o.Covers(date) {
			continue
		}
		switch {
		case o.Kind.IsFullDay():
			present[o.Kind] = true
		case o.Kind.IsPartialDay() && o.Time != nil:
			t := *o.Time
			if o.Kind == OverrideEarlyExit && (res.EarlyExit == nil || t < *res.EarlyExit) {
				res.EarlyExit = &t
			}
			if o.Kind == OverrideLateEntry && (res.LateEntry == nil || t > *res.LateEntry) {
				res.LateEntry = &t
			}
		}
	}

	for _, kind := range FullDayPrecedence {
		if !present[kind] {
			continue
		}
		if res.FullDay == "" {
			res.FullDay = kind
		}
		res.Conflicting = append(res.Conflicting, kind)
	}

	if len(res.Conflicting) > 1 {
		return res, fmt.Errorf("%w: %v on %s", ErrAmbiguousOverride, res.Conflicting, date.Format("2006-01-02"))
	}
	res.Conflicting = nil
	return res, nil
}
