package report

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ridloal/lux-storefront/internal/ledger/domain"
)

var ErrUnknownPeriod = errors.New("unknown report period")

type Period string

const (
	PeriodToday Period = "today"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"

	DefaultPeriod = PeriodMonth
)

// ParsePeriod accepts the period names case-insensitively. An empty string
// selects DefaultPeriod.
func ParsePeriod(s string) (Period, error) {
	switch p := Period(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return DefaultPeriod, nil
	case PeriodToday, PeriodWeek, PeriodMonth, PeriodYear:
		return p, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPeriod, s)
}

// Calendar fixes the week start and time zone used to compute windows.
type Calendar struct {
	WeekStart time.Weekday
	Location  *time.Location
}

func (c Calendar) location() *time.Location {
	if c.Location == nil {
		return time.Local
	}
	return c.Location
}

// Window returns the calendar period containing now. Both ends are inclusive;
// end is the last nanosecond of the period.
func Window(p Period, now time.Time, cal Calendar) (start, end time.Time, err error) {
	now = now.In(cal.location())
	y, m, d := now.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, now.Location())

	switch p {
	case PeriodToday:
		start = midnight
		end = start.AddDate(0, 0, 1)
	case PeriodWeek:
		offset := (int(now.Weekday()) - int(cal.WeekStart) + 7) % 7
		start = midnight.AddDate(0, 0, -offset)
		end = start.AddDate(0, 0, 7)
	case PeriodMonth:
		start = time.Date(y, m, 1, 0, 0, 0, 0, now.Location())
		end = start.AddDate(0, 1, 0)
	case PeriodYear:
		start = time.Date(y, time.January, 1, 0, 0, 0, 0, now.Location())
		end = start.AddDate(1, 0, 0)
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %q", ErrUnknownPeriod, string(p))
	}
	return start, end.Add(-time.Nanosecond), nil
}

// FilterByPeriod keeps sales whose SoldAt lies inside the period window.
// Sales without a timestamp are dropped.
func FilterByPeriod(sales []domain.SaleWithProduct, p Period, now time.Time, cal Calendar) ([]domain.SaleWithProduct, error) {
	start, end, err := Window(p, now, cal)
	if err != nil {
		return nil, err
	}
	out := make([]domain.SaleWithProduct, 0, len(sales))
	for _, s := range sales {
		if s.SoldAt.IsZero() || s.SoldAt.Before(start) || s.SoldAt.After(end) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}
