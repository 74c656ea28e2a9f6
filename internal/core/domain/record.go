package domain

import (
	"errors"
	"sort"
	"time"
)

var (
	ErrFlagCountMismatch = errors.New("completion flags must match the number of habits")
	ErrInvalidDate       = errors.New("invalid date (expected YYYY-MM-DD)")
)

const DateLayout = "2006-01-02"

// Records maps a YYYY-MM-DD date to one completion flag per habit, aligned
// with the habit list as it was when the day was recorded. A record shorter
// than the habit list leaves the trailing habits unknown for that day.
type Records map[string][]bool

func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

func ParseDateKey(key string) (time.Time, error) {
	t, err := time.Parse(DateLayout, key)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// Flag reports the value recorded for habitIndex on date. known is false
// when the date has no record or the record is too short.
func (r Records) Flag(date string, habitIndex int) (value bool, known bool) {
	flags, ok := r[date]
	if !ok || habitIndex < 0 || habitIndex >= len(flags) {
		return false, false
	}
	return flags[habitIndex], true
}

// DatesDescending returns the record keys most recent first. Keys that are
// not valid dates cannot be placed on the calendar and are left out.
func (r Records) DatesDescending() []string {
	type dated struct {
		key string
		at  time.Time
	}

	list := make([]dated, 0, len(r))
	for key := range r {
		at, err := ParseDateKey(key)
		if err != nil {
			continue
		}
		list = append(list, dated{key: key, at: at})
	}

	sort.Slice(list, func(i, j int) bool {
		return list[i].at.After(list[j].at)
	})

	keys := make([]string, len(list))
	for i, d := range list {
		keys[i] = d.key
	}
	return keys
}

func (r Records) Clone() Records {
	out := make(Records, len(r))
	for date, flags := range r {
		cp := make([]bool, len(flags))
		copy(cp, flags)
		out[date] = cp
	}
	return out
}
