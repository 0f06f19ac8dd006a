package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestPeriodFraming(t *testing.T) {
	tests := []struct {
		name string
		p    Period
		want Framing
	}{
		{"instant", NewInstant(date("2023-12-31")), FramingInstant},
		{"calendar quarter", NewDuration(date("2024-01-01"), date("2024-03-31")), FramingQuarterly},
		{"53-week quarter", NewDuration(date("2023-10-01"), date("2023-12-30")), FramingQuarterly},
		{"calendar year", NewDuration(date("2023-01-01"), date("2023-12-31")), FramingAnnual},
		{"52-week fiscal year", NewDuration(date("2022-09-25"), date("2023-09-30")), FramingAnnual},
		{"nine months", NewDuration(date("2023-01-01"), date("2023-09-30")), FramingYTD},
		{"half year", NewDuration(date("2023-01-01"), date("2023-06-30")), FramingYTD},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.p.Framing())
		})
	}
}

func TestPeriodKeyDistinguishesFraming(t *testing.T) {
	quarter := NewDuration(date("2023-10-01"), date("2023-12-31"))
	year := NewDuration(date("2023-01-01"), date("2023-12-31"))
	instant := NewInstant(date("2023-12-31"))

	// Same end date, three distinct periods.
	assert.NotEqual(t, quarter.Key(), year.Key())
	assert.NotEqual(t, quarter.Key(), instant.Key())
	assert.NotEqual(t, year.Key(), instant.Key())
}

func TestPeriodSameAcrossDateFormats(t *testing.T) {
	// Filers reporting the same period with different timestamps normalize
	// to the same identity.
	a := NewDuration(date("2023-01-01"), date("2023-12-31"))
	b := NewDuration(
		time.Date(2023, 1, 1, 23, 0, 0, 0, time.UTC),
		time.Date(2023, 12, 31, 5, 30, 0, 0, time.UTC),
	)
	assert.True(t, a.Same(b))
}

func TestPeriodLabel(t *testing.T) {
	tests := []struct {
		name string
		p    Period
		want string
	}{
		{"annual", NewDuration(date("2023-01-01"), date("2023-12-31")), "FY 2023"},
		{"january fiscal year end", NewDuration(date("2023-02-01"), date("2024-01-31")), "FY 2023"},
		{"first quarter", NewDuration(date("2024-01-01"), date("2024-03-31")), "Q1 2024"},
		{"fourth quarter", NewDuration(date("2023-10-01"), date("2023-12-31")), "Q4 2023"},
		{"instant", NewInstant(date("2023-12-31")), "2023-12-31"},
		{"ytd falls back to end date", NewDuration(date("2023-01-01"), date("2023-09-30")), "2023-09-30"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.p.Label())
		})
	}
}

func TestPeriodBefore(t *testing.T) {
	fy22 := NewDuration(date("2022-01-01"), date("2022-12-31"))
	fy23 := NewDuration(date("2023-01-01"), date("2023-12-31"))
	inst23 := NewInstant(date("2023-12-31"))

	assert.True(t, fy22.Before(fy23))
	assert.False(t, fy23.Before(fy22))
	// Duration sorts ahead of the instant closing the same date.
	assert.True(t, fy23.Before(inst23))
	assert.False(t, inst23.Before(fy23))
}

func TestPeriodZero(t *testing.T) {
	assert.True(t, Period{}.Zero())
	assert.False(t, NewInstant(date("2023-12-31")).Zero())
}
