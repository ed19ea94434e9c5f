package domain

import (
	"fmt"
	"time"

	"github.com/tsinsights/timesheet_insights_app/internal/apperrors"
)

// Date-range tokens accepted by the sync endpoint.
const (
	RangeLast7Days = "Last 7 days"
	RangeThisMonth = "This month"
	RangeLastMonth = "Last month"
	RangeCustom    = "Custom range"
)

// DateRange is a closed calendar-date interval [Start, End].
type DateRange struct {
	Start time.Time
	End   time.Time
}

// IsValidRangeToken reports whether token is one of the accepted range tokens.
func IsValidRangeToken(token string) bool {
	switch token {
	case RangeLast7Days, RangeThisMonth, RangeLastMonth, RangeCustom:
		return true
	}
	return false
}

// ResolveDateRange turns a range token into a concrete interval relative to
// now. "Custom range" requires explicit from/to bounds in YYYY-MM-DD form;
// the bounds are inclusive.
func ResolveDateRange(token string, now time.Time, from, to string) (DateRange, error) {
	today := truncateToDay(now)

	switch token {
	case RangeLast7Days:
		return DateRange{Start: today.AddDate(0, 0, -6), End: today}, nil
	case RangeThisMonth:
		start := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		return DateRange{Start: start, End: today}, nil
	case RangeLastMonth:
		firstOfThis := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		start := firstOfThis.AddDate(0, -1, 0)
		end := firstOfThis.AddDate(0, 0, -1)
		return DateRange{Start: start, End: end}, nil
	case RangeCustom:
		if from == "" || to == "" {
			return DateRange{}, fmt.Errorf("%w: custom range requires from and to dates", apperrors.ErrValidation)
		}
		start, err := time.ParseInLocation("2006-01-02", from, now.Location())
		if err != nil {
			return DateRange{}, fmt.Errorf("%w: invalid from date %q", apperrors.ErrValidation, from)
		}
		end, err := time.ParseInLocation("2006-01-02", to, now.Location())
		if err != nil {
			return DateRange{}, fmt.Errorf("%w: invalid to date %q", apperrors.ErrValidation, to)
		}
		if end.Before(start) {
			return DateRange{}, fmt.Errorf("%w: to date precedes from date", apperrors.ErrValidation)
		}
		return DateRange{Start: start, End: end}, nil
	default:
		return DateRange{}, fmt.Errorf("%w: unknown date range %q", apperrors.ErrValidation, token)
	}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
