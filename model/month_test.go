package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonthKey_SheetName(t *testing.T) {
	assert.Equal(t, "2025-02", MonthKey{Year: 2025, Month: time.February}.SheetName())
	assert.Equal(t, "2025-12", MonthKey{Year: 2025, Month: time.December}.SheetName())
}

func TestMonthKey_Days(t *testing.T) {
	tests := []struct {
		name     string
		key      MonthKey
		expected int
	}{
		{"february non-leap", MonthKey{2025, time.February}, 28},
		{"february leap", MonthKey{2024, time.February}, 29},
		{"thirty days", MonthKey{2025, time.April}, 30},
		{"thirty-one days", MonthKey{2025, time.March}, 31},
		{"december", MonthKey{2025, time.December}, 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.key.Days())
		})
	}
}

func TestMonthKey_PrevNext(t *testing.T) {
	mid := MonthKey{2025, time.June}
	assert.Equal(t, MonthKey{2025, time.May}, mid.Prev())
	assert.Equal(t, MonthKey{2025, time.July}, mid.Next())

	jan := MonthKey{2025, time.January}
	assert.Equal(t, MonthKey{2024, time.December}, jan.Prev())

	dec := MonthKey{2025, time.December}
	assert.Equal(t, MonthKey{2026, time.January}, dec.Next())
}

func TestMonthKey_IsLastDay(t *testing.T) {
	feb := MonthKey{2025, time.February}
	assert.False(t, feb.IsLastDay(27))
	assert.True(t, feb.IsLastDay(28))
}

func TestMonthKeyFor(t *testing.T) {
	now := time.Date(2025, time.March, 15, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, MonthKey{2025, time.March}, MonthKeyFor(now))
}
