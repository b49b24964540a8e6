package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectError bool
	}{
		{name: "valid name", input: "Checking"},
		{name: "empty name", input: "", expectError: true},
		{name: "whitespace only", input: "   ", expectError: true},
		{name: "max length", input: strings.Repeat("a", MaxNameLength)},
		{name: "too long", input: strings.Repeat("a", MaxNameLength+1), expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)

			if tt.expectError {
				if !errors.Is(err, ErrInvalidName) {
					t.Fatalf("expected ErrInvalidName, got %v", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateCurrency(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectError bool
	}{
		{name: "valid USD", input: "USD"},
		{name: "lowercase accepted", input: "eur"},
		{name: "padded accepted", input: " GBP "},
		{name: "unknown code", input: "XYZ", expectError: true},
		{name: "empty", input: "", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCurrency(tt.input)

			if tt.expectError {
				if !errors.Is(err, ErrInvalidCurrency) {
					t.Fatalf("expected ErrInvalidCurrency, got %v", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateAmount(t *testing.T) {
	maxAmount, _ := decimal.NewFromString(MaxAmount)

	tests := []struct {
		name        string
		amount      decimal.Decimal
		expectedErr error
	}{
		{name: "positive", amount: decimal.NewFromInt(100)},
		{name: "max allowed", amount: maxAmount},
		{name: "zero", amount: decimal.Zero, expectedErr: ErrInvalidAmount},
		{name: "negative", amount: decimal.NewFromInt(-1), expectedErr: ErrInvalidAmount},
		{name: "over max", amount: maxAmount.Add(decimal.NewFromInt(1)), expectedErr: ErrAmountTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAmount(tt.amount)

			if tt.expectedErr != nil {
				if !errors.Is(err, tt.expectedErr) {
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

func TestValidatePagination(t *testing.T) {
	tests := []struct {
		name       string
		limit      int
		offset     int
		wantLimit  int
		wantOffset int
	}{
		{name: "defaults", limit: 0, offset: 0, wantLimit: 50, wantOffset: 0},
		{name: "negative limit", limit: -1, offset: 5, wantLimit: 50, wantOffset: 5},
		{name: "capped limit", limit: 5000, offset: 0, wantLimit: 1000, wantOffset: 0},
		{name: "negative offset", limit: 10, offset: -3, wantLimit: 10, wantOffset: 0},
		{name: "passthrough", limit: 25, offset: 100, wantLimit: 25, wantOffset: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit, offset := ValidatePagination(tt.limit, tt.offset)

			if limit != tt.wantLimit || offset != tt.wantOffset {
				t.Fatalf("expected (%d, %d), got (%d, %d)", tt.wantLimit, tt.wantOffset, limit, offset)
			}
		})
	}
}
