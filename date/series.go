package date

import (
	"iter"
	"maps"
	"slices"
)

// Series is a dense date-indexed mapping of daily values.
type Series map[Date]float64

// Align converts a sparse daily array into a Series.
//
// The i-th value belongs to from+i days. Nil values consume their day but
// produce no entry, so the result has at most len(values) entries.
func Align(from Date, values []*float64) Series {
	s := make(Series, len(values))
	on := from
	for _, v := range values {
		if v != nil {
			s[on] = *v
		}
		on = on.Add(1)
	}
	return s
}

// Dates returns the series days in ascending order.
func (s Series) Dates() []Date {
	return Sorted(maps.Keys(s))
}

// Get returns the value at 'day' and true or zero value and false.
func (s Series) Get(day Date) (float64, bool) {
	v, ok := s[day]
	return v, ok
}

// Sorted collects the dates and returns them in ascending order.
func Sorted(dates iter.Seq[Date]) []Date {
	return slices.SortedFunc(dates, Date.Compare)
}
