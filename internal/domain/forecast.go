package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CalendarEntry is one planned-payment occurrence contributing to a
// forecast day.
type CalendarEntry struct {
	PaymentID   string
	Description string
	Flow        FlowType
	Amount      decimal.Decimal
}

// CalendarDay is one simulated day of the payment calendar. A day whose
// closing balance is negative is flagged as a cash gap.
type CalendarDay struct {
	Date    time.Time
	Opening decimal.Decimal
	Income  decimal.Decimal
	Expense decimal.Decimal
	Closing decimal.Decimal
	CashGap bool
	Entries []CalendarEntry
}

// CalendarForecast is a day-by-day balance simulation over a date window.
// It is a pure function of (current balances, planned payments) at call time
// and can always be re-derived.
type CalendarForecast struct {
	StartDate      time.Time
	EndDate        time.Time
	OpeningBalance decimal.Decimal
	Days           []CalendarDay
	ClosingBalance decimal.Decimal
}

// SimulateCalendar expands the given payments over [start, end] and runs the
// daily balance simulation: every calendar day in order, closing = opening +
// income − expense, next day's opening = today's closing.
func SimulateCalendar(opening decimal.Decimal, payments []*PlannedPayment, start, end time.Time) CalendarForecast {
	start = DateOnly(start)
	end = DateOnly(end)

	// Keyed by formatted date so payments anchored in a different time
	// location still land on the right calendar day.
	byDay := make(map[string][]CalendarEntry)
	for _, p := range payments {
		for _, date := range p.Occurrences(start, end) {
			key := date.Format(time.DateOnly)
			byDay[key] = append(byDay[key], CalendarEntry{
				PaymentID:   p.ID,
				Description: p.Description,
				Flow:        p.Flow,
				Amount:      p.Amount,
			})
		}
	}

	forecast := CalendarForecast{
		StartDate:      start,
		EndDate:        end,
		OpeningBalance: opening,
		ClosingBalance: opening,
	}

	balance := opening
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		day := CalendarDay{
			Date:    d,
			Opening: balance,
			Income:  decimal.Zero,
			Expense: decimal.Zero,
			Entries: byDay[d.Format(time.DateOnly)],
		}

		for _, e := range day.Entries {
			switch e.Flow {
			case FlowIncome:
				day.Income = day.Income.Add(e.Amount)
			case FlowExpense:
				day.Expense = day.Expense.Add(e.Amount)
			}
		}

		balance = balance.Add(day.Income).Sub(day.Expense)
		day.Closing = balance
		day.CashGap = balance.IsNegative()

		forecast.Days = append(forecast.Days, day)
	}

	forecast.ClosingBalance = balance

	return forecast
}
