package domain

import "time"

// dateLayout is the canonical calendar-date format ("2006-01-02").
const dateLayout = "2006-01-02"

// Date is a calendar day without a time zone. Streak transitions compare
// calendar days, not timestamps, so callers resolve "today" in whatever
// zone the school operates in and pass the result here.
type Date string

// DateOf truncates a time to its calendar day.
func DateOf(t time.Time) Date {
	return Date(t.Format(dateLayout))
}

// Today returns the current calendar day in local time.
func Today() Date {
	return DateOf(time.Now())
}

// Valid reports whether d parses as a calendar date.
func (d Date) Valid() bool {
	_, err := time.Parse(dateLayout, string(d))
	return err == nil
}

// Prev returns the previous calendar day.
func (d Date) Prev() Date {
	t, err := time.Parse(dateLayout, string(d))
	if err != nil {
		return ""
	}
	return DateOf(t.AddDate(0, 0, -1))
}

// Next returns the following calendar day.
func (d Date) Next() Date {
	t, err := time.Parse(dateLayout, string(d))
	if err != nil {
		return ""
	}
	return DateOf(t.AddDate(0, 0, 1))
}

// IsZero reports whether no date has been recorded.
func (d Date) IsZero() bool {
	return d == ""
}

func (d Date) String() string {
	return string(d)
}
