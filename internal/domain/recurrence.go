package domain

import "time"

// Occurrences expands a planned payment's recurrence into the ordered list of
// calendar dates falling inside [start, end]. It is a pure function of its
// inputs.
//
// A non-recurring payment occupies exactly its anchor date. Recurring
// payments generate from the anchor at the rule's cadence: daily is every
// day, weekly every 7 days, monthly the anchor's day-of-month in each
// calendar month (clamped to the month's length). Occurrences before start
// are discarded; an unrecognized rule yields nil so a malformed payment stays
// inert instead of failing the whole forecast.
func (p *PlannedPayment) Occurrences(start, end time.Time) []time.Time {
	start = DateOnly(start)
	end = DateOnly(end)
	anchor := DateOnly(p.AnchorDate)

	if end.Before(start) {
		return nil
	}

	if !p.Recurring {
		if anchor.Before(start) || anchor.After(end) {
			return nil
		}
		return []time.Time{anchor}
	}

	if anchor.After(end) {
		return nil
	}

	var dates []time.Time

	switch p.Rule {
	case RecurDaily:
		for d := anchor; !d.After(end); d = d.AddDate(0, 0, 1) {
			if !d.Before(start) {
				dates = append(dates, d)
			}
		}

	case RecurWeekly:
		for d := anchor; !d.After(end); d = d.AddDate(0, 0, 7) {
			if !d.Before(start) {
				dates = append(dates, d)
			}
		}

	case RecurMonthly:
		// Walk month by month from the anchor's month so that a day-31
		// anchor lands on the 30th (or 28th/29th) of shorter months
		// instead of spilling into the next month.
		year, month := anchor.Year(), anchor.Month()
		for {
			d := monthOccurrence(year, month, anchor.Day(), anchor.Location())
			if d.After(end) {
				break
			}
			if !d.Before(start) && !d.Before(anchor) {
				dates = append(dates, d)
			}

			month++
			if month > time.December {
				month = time.January
				year++
			}
		}

	default:
		return nil
	}

	return dates
}

// monthOccurrence places day-of-month in the given month, clamped to the
// month's last day.
func monthOccurrence(year int, month time.Month, day int, loc *time.Location) time.Time {
	lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
	if day > lastDay {
		day = lastDay
	}

	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}

// DateOnly truncates a timestamp to midnight in its own location.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
