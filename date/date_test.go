package date

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.time() != d2.time() {
		// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
		// tests also checks that the property remain true
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestParse(t *testing.T) {
	testCases := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{"2019-01-01", New(2019, time.January, 1), false},
		{"2025-7-1", New(2025, time.July, 1), false},
		{"2019-03-01T00:00:00.000Z", New(2019, time.March, 1), false},
		{"2019-03-01T23:30:00-05:00", New(2019, time.March, 2), false},
		{"01/03/2019", Date{}, true},
		{"", Date{}, true},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := Parse(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestISOWeekday(t *testing.T) {
	// 2024-06-03 is a Monday.
	monday := New(2024, time.June, 3)
	for i := 0; i < 7; i++ {
		d := monday.Add(i)
		assert.Equal(t, i+1, d.ISOWeekday(), d.String())
		assert.Equal(t, i >= 5, d.IsWeekend(), d.String())
	}
}

func TestCompare(t *testing.T) {
	a, b := New(2024, time.December, 31), New(2025, time.January, 1)
	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.Equal(t, 0, a.Compare(New(2024, 12, 31)))
	assert.Equal(t, b, Max(a, b))
	assert.Equal(t, b, Max(b, a))
}

func TestDateAsJSONKey(t *testing.T) {
	m := map[Date]int{New(2019, 1, 4): 2, New(2019, 1, 1): 1}
	b, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"2019-01-01":1,"2019-01-04":2}`, string(b))

	var back map[Date]int
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, m, back)
}

func TestPeriodBoundaries(t *testing.T) {
	// Wednesday 2025-08-13
	on := New(2025, time.August, 13)
	testCases := []struct {
		period     Period
		start, end Date
	}{
		{Daily, on, on},
		{Weekly, New(2025, time.August, 11), New(2025, time.August, 17)},
		{Monthly, New(2025, time.August, 1), New(2025, time.August, 31)},
		{Quarterly, New(2025, time.July, 1), New(2025, time.September, 30)},
		{Yearly, New(2025, time.January, 1), New(2025, time.December, 31)},
	}
	for _, tc := range testCases {
		t.Run(tc.period.String(), func(t *testing.T) {
			assert.Equal(t, tc.start, on.StartOf(tc.period))
			assert.Equal(t, tc.end, on.EndOf(tc.period))
			r := NewRange(on, tc.period)
			p, ok := r.Period()
			assert.True(t, ok)
			assert.Equal(t, tc.period, p)
			assert.True(t, r.Contains(on))
		})
	}
}

func TestRange_Identifier(t *testing.T) {
	testCases := []struct {
		name string
		in   Range
		want string
	}{
		{"Daily Identifier", NewRange(New(2025, time.September, 8), Daily), "2025-09-08"},
		{"Weekly Identifier", NewRange(New(2025, time.September, 8), Weekly), "2025-W37"},
		{"Early Week Identifier", NewRange(New(2025, time.January, 6), Weekly), "2025-W02"},
		{"Monthly Identifier", NewRange(New(2025, time.September, 1), Monthly), "2025-09"},
		{"Quarterly Identifier", NewRange(New(2025, time.July, 1), Quarterly), "2025-Q3"},
		{"Yearly Identifier", NewRange(New(2025, time.January, 1), Yearly), "2025"},
		{"Custom Range Identifier", Range{From: New(2025, time.September, 2), To: New(2025, time.September, 10)}, "2025-09-02_2025-09-10"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.in.Identifier(); got != tc.want {
				t.Errorf("Identifier() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestParsePeriod(t *testing.T) {
	testCases := []struct {
		in      string
		want    Period
		wantErr bool
	}{
		{"daily", Daily, false},
		{"week", Weekly, false},
		{"Monthly", Monthly, false},
		{"quarter", Quarterly, false},
		{"yearly", Yearly, false},
		{"unknown", Daily, true},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParsePeriod(tc.in)
			if (err != nil) != tc.wantErr {
				t.Errorf("ParsePeriod() error = %v, wantErr %v", err, tc.wantErr)
				return
			}
			if got != tc.want {
				t.Errorf("ParsePeriod() = %v, want %v", got, tc.want)
			}
		})
	}
}
