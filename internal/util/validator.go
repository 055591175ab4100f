package util

import (
	"fmt"
	"time"
)

// dateLayouts accepted for expense dates, most specific first.
var dateLayouts = []string{
	time.RFC3339,          // 2024-01-15T00:00:00Z
	"2006-01-02T15:04:05", // 2024-01-15T00:00:00
	"2006-01-02",          // 2024-01-15
}

// ValidateAmount checks that an amount is positive and below the sanity cap.
func ValidateAmount(amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be positive, got %f", amount)
	}
	if amount >= 10000000 {
		return fmt.Errorf("amount too large, got %f", amount)
	}
	return nil
}

// ParseDate parses an expense date and truncates it to a UTC calendar day.
// An empty string yields today.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return DateOnly(time.Now()), nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateOnly(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date format: %q", s)
}

// DateOnly drops the time-of-day portion, keeping the UTC calendar date.
// Storing all expense dates at midnight UTC is what makes per-day grouping
// in the stats queries line up.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ValidateCategory checks the category against the fixed set handled by the caller;
// here it only enforces presence and length.
func ValidateCategory(category string) error {
	if category == "" {
		return fmt.Errorf("category is empty")
	}
	if len(category) > 50 {
		return fmt.Errorf("category too long, max 50 characters")
	}
	return nil
}
