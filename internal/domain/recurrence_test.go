package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPlannedPayment_Occurrences(t *testing.T) {
	tests := []struct {
		name    string
		payment PlannedPayment
		start   time.Time
		end     time.Time
		want    []time.Time
	}{
		{
			name:    "non-recurring inside window",
			payment: PlannedPayment{AnchorDate: date(2026, 3, 15)},
			start:   date(2026, 3, 1),
			end:     date(2026, 3, 31),
			want:    []time.Time{date(2026, 3, 15)},
		},
		{
			name:    "non-recurring before window",
			payment: PlannedPayment{AnchorDate: date(2026, 2, 28)},
			start:   date(2026, 3, 1),
			end:     date(2026, 3, 31),
			want:    nil,
		},
		{
			name:    "non-recurring after window",
			payment: PlannedPayment{AnchorDate: date(2026, 4, 1)},
			start:   date(2026, 3, 1),
			end:     date(2026, 3, 31),
			want:    nil,
		},
		{
			name:    "daily from anchor",
			payment: PlannedPayment{AnchorDate: date(2026, 3, 29), Recurring: true, Rule: RecurDaily},
			start:   date(2026, 3, 28),
			end:     date(2026, 4, 1),
			want:    []time.Time{date(2026, 3, 29), date(2026, 3, 30), date(2026, 3, 31), date(2026, 4, 1)},
		},
		{
			name:    "weekly skips to window",
			payment: PlannedPayment{AnchorDate: date(2026, 3, 2), Recurring: true, Rule: RecurWeekly},
			start:   date(2026, 3, 10),
			end:     date(2026, 3, 31),
			want:    []time.Time{date(2026, 3, 16), date(2026, 3, 23), date(2026, 3, 30)},
		},
		{
			name:    "monthly same day",
			payment: PlannedPayment{AnchorDate: date(2026, 1, 10), Recurring: true, Rule: RecurMonthly},
			start:   date(2026, 1, 1),
			end:     date(2026, 3, 31),
			want:    []time.Time{date(2026, 1, 10), date(2026, 2, 10), date(2026, 3, 10)},
		},
		{
			name:    "monthly day 31 clamps to short months",
			payment: PlannedPayment{AnchorDate: date(2026, 1, 31), Recurring: true, Rule: RecurMonthly},
			start:   date(2026, 1, 1),
			end:     date(2026, 4, 30),
			want:    []time.Time{date(2026, 1, 31), date(2026, 2, 28), date(2026, 3, 31), date(2026, 4, 30)},
		},
		{
			name:    "monthly clamps to leap day",
			payment: PlannedPayment{AnchorDate: date(2028, 1, 30), Recurring: true, Rule: RecurMonthly},
			start:   date(2028, 2, 1),
			end:     date(2028, 2, 29),
			want:    []time.Time{date(2028, 2, 29)},
		},
		{
			name:    "monthly across year boundary",
			payment: PlannedPayment{AnchorDate: date(2026, 11, 15), Recurring: true, Rule: RecurMonthly},
			start:   date(2026, 11, 1),
			end:     date(2027, 1, 31),
			want:    []time.Time{date(2026, 11, 15), date(2026, 12, 15), date(2027, 1, 15)},
		},
		{
			name:    "recurring anchor after window",
			payment: PlannedPayment{AnchorDate: date(2026, 5, 1), Recurring: true, Rule: RecurDaily},
			start:   date(2026, 3, 1),
			end:     date(2026, 3, 31),
			want:    nil,
		},
		{
			name:    "unknown rule yields nothing",
			payment: PlannedPayment{AnchorDate: date(2026, 3, 1), Recurring: true, Rule: RecurrenceRule("yearly")},
			start:   date(2026, 3, 1),
			end:     date(2026, 12, 31),
			want:    nil,
		},
		{
			name:    "inverted window",
			payment: PlannedPayment{AnchorDate: date(2026, 3, 15), Recurring: true, Rule: RecurDaily},
			start:   date(2026, 3, 31),
			end:     date(2026, 3, 1),
			want:    nil,
		},
		{
			name:    "single day window hits daily",
			payment: PlannedPayment{AnchorDate: date(2026, 3, 1), Recurring: true, Rule: RecurDaily},
			start:   date(2026, 3, 15),
			end:     date(2026, 3, 15),
			want:    []time.Time{date(2026, 3, 15)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.payment.Occurrences(tt.start, tt.end)

			if len(got) != len(tt.want) {
				t.Fatalf("expected %d occurrences, got %d: %v", len(tt.want), len(got), got)
			}
			for i := range got {
				if !got[i].Equal(tt.want[i]) {
					t.Fatalf("occurrence %d: expected %s, got %s", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestPlannedPayment_Occurrences_TruncatesTimeOfDay(t *testing.T) {
	p := PlannedPayment{
		AnchorDate: time.Date(2026, 3, 15, 17, 45, 3, 0, time.UTC),
	}

	got := p.Occurrences(
		time.Date(2026, 3, 15, 23, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 15, 1, 0, 0, 0, time.UTC),
	)

	if len(got) != 1 {
		t.Fatalf("expected 1 occurrence, got %d", len(got))
	}
	if !got[0].Equal(date(2026, 3, 15)) {
		t.Fatalf("expected midnight date, got %s", got[0])
	}
}

func TestPlannedPayment_Validate(t *testing.T) {
	tests := []struct {
		name        string
		payment     PlannedPayment
		expectedErr error
	}{
		{
			name:    "valid expense",
			payment: PlannedPayment{Amount: decimal.NewFromInt(10), Flow: FlowExpense},
		},
		{
			name:    "valid income",
			payment: PlannedPayment{Amount: decimal.NewFromInt(10), Flow: FlowIncome},
		},
		{
			name:        "zero amount",
			payment:     PlannedPayment{Amount: decimal.Zero, Flow: FlowExpense},
			expectedErr: ErrInvalidAmount,
		},
		{
			name:        "transfer flow rejected",
			payment:     PlannedPayment{Amount: decimal.NewFromInt(10), Flow: FlowTransfer},
			expectedErr: ErrInvalidTransactionShape,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.payment.Validate()

			if tt.expectedErr != nil {
				if err != tt.expectedErr {
					t.Fatalf("expected error %v, got %v", tt.expectedErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
