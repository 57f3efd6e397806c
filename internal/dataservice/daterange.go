// CommerceLens - E-commerce Analytics Dashboard
// Copyright 2026 CommerceLens Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commercelens/commercelens

package dataservice

import (
	"fmt"
	"time"
)

// maxRangeDays bounds a report date range; beyond this the warehouse scans
// become unreasonably expensive for an interactive dashboard.
const maxRangeDays = 730

const dateLayout = "2006-01-02"

// DateRange carries report parameters: an inclusive start/end date pair
// (YYYY-MM-DD) and, for trend reports, a trailing-days window.
type DateRange struct {
	Start string
	End   string
	Days  int
}

// Validate checks a date range for well-formedness: valid dates, start not
// after end, end not in the future, span at most two years.
func (r DateRange) Validate() error {
	if r.Start == "" && r.End == "" {
		return nil
	}

	start, err := time.Parse(dateLayout, r.Start)
	if err != nil {
		return fmt.Errorf("invalid start date %q: expected YYYY-MM-DD", r.Start)
	}
	end, err := time.Parse(dateLayout, r.End)
	if err != nil {
		return fmt.Errorf("invalid end date %q: expected YYYY-MM-DD", r.End)
	}

	if start.After(end) {
		return fmt.Errorf("start date must be before end date")
	}
	if end.After(time.Now()) {
		return fmt.Errorf("end date cannot be in the future")
	}
	if end.Sub(start) > maxRangeDays*24*time.Hour {
		return fmt.Errorf("date range cannot exceed %d days", maxRangeDays)
	}
	return nil
}

// DefaultRange returns the trailing 90-day range ending today.
func DefaultRange() DateRange {
	now := time.Now()
	return DateRange{
		Start: now.AddDate(0, 0, -90).Format(dateLayout),
		End:   now.Format(dateLayout),
		Days:  90,
	}
}
