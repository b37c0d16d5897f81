package tradetree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		want string
	}{
		{"same instant", "2023-01-01T00:00:00", "2023-01-01T00:00:00", "0 days"},
		{"partial day", "2023-01-01T00:00:00", "2023-01-01T23:00:00", "0 days"},
		{"one day", "2023-01-01T00:00:00", "2023-01-02T00:00:00", "1 day"},
		{"under a month", "2023-01-01T00:00:00", "2023-01-30T00:00:00", "29 days"},
		{"thirty days inside one calendar month", "2023-01-01T00:00:00", "2023-01-31T00:00:00", "30 days"},
		{"one month", "2023-01-31T00:00:00", "2023-03-02T00:00:00", "1 mo"},
		{"months", "2023-01-01T00:00:00", "2023-06-01T00:00:00", "5 mos"},
		{"short of a full month", "2023-01-15T00:00:00", "2023-06-14T00:00:00", "4 mos"},
		{"year and months", "2022-01-01T00:00:00", "2023-04-15T00:00:00", "1 yr, 3 mos"},
		{"year and one month", "2022-01-01T00:00:00", "2023-02-01T00:00:00", "1 yr, 1 mo"},
		{"whole years", "2021-03-01T00:00:00", "2023-03-01T00:00:00", "2 yrs"},
		{"one year", "2022-03-01T00:00:00", "2023-03-01T00:00:00", "1 yr"},
		{"negative clamps", "2023-06-01T00:00:00", "2023-01-01T00:00:00", "0 days"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDuration(at(tt.from), at(tt.to)))
		})
	}
}

func TestWholeDays_NeverNegative(t *testing.T) {
	assert.Equal(t, 0, WholeDays(at("2023-06-01T00:00:00"), at("2023-01-01T00:00:00")))
	assert.Equal(t, 151, WholeDays(at("2023-01-01T00:00:00"), at("2023-06-01T00:00:00")))
}
