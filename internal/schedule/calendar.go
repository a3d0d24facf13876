package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateKeyLayout is the canonical day-level date string used everywhere a
// date is compared or persisted.
const DateKeyLayout = "2006-01-02"

// DateKey normalizes a time to its canonical day string.
func DateKey(t time.Time) string {
	return t.Format(DateKeyLayout)
}

// ParseDateKey converts a yyyy-mm-dd string into a local-midnight time.
func ParseDateKey(dateStr string) (time.Time, error) {
	parts := strings.Split(dateStr, "-")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("invalid date format, expected yyyy-mm-dd")
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid year: %v", err)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month: %v", err)
	}
	day, err := strconv.Atoi(parts[2])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day: %v", err)
	}

	if month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("month must be between 1 and 12")
	}
	if day < 1 || day > DaysInMonth(year, time.Month(month)) {
		return time.Time{}, fmt.Errorf("day %d out of range for %04d-%02d", day, year, month)
	}

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local), nil
}

// NextDay returns the canonical key of the day after the given one.
func NextDay(dateStr string) (string, error) {
	t, err := ParseDateKey(dateStr)
	if err != nil {
		return "", err
	}
	return DateKey(t.AddDate(0, 0, 1)), nil
}

// DaysInMonth returns the number of days in a given month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.Local).Day()
}

// Midnight truncates a time to local midnight.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}

// IsPastDay reports whether the given day is strictly before today's
// local midnight.
func IsPastDay(day, today time.Time) bool {
	return Midnight(day).Before(Midnight(today))
}

// CalendarMode selects the navigation rules for a month view.
type CalendarMode int

const (
	// ModeBooking floors backward navigation at the current month.
	ModeBooking CalendarMode = iota
	// ModeAvailability allows free backward navigation (the listing
	// wizard); past days still cannot be selected.
	ModeAvailability
)

// MonthCursor is a month/year position in a calendar view.
type MonthCursor struct {
	Year  int
	Month time.Month
}

// CursorFor returns the cursor for the month containing t.
func CursorFor(t time.Time) MonthCursor {
	return MonthCursor{Year: t.Year(), Month: t.Month()}
}

func (c MonthCursor) Next() MonthCursor {
	t := time.Date(c.Year, c.Month, 1, 0, 0, 0, 0, time.Local).AddDate(0, 1, 0)
	return CursorFor(t)
}

func (c MonthCursor) Prev() MonthCursor {
	t := time.Date(c.Year, c.Month, 1, 0, 0, 0, 0, time.Local).AddDate(0, -1, 0)
	return CursorFor(t)
}

// Before reports whether c is an earlier month than other.
func (c MonthCursor) Before(other MonthCursor) bool {
	if c.Year != other.Year {
		return c.Year < other.Year
	}
	return c.Month < other.Month
}

// CanNavigateBack reports whether the view may move to the previous
// month. The booking surface never navigates before the current month;
// the availability wizard may.
func CanNavigateBack(c MonthCursor, today time.Time, mode CalendarMode) bool {
	if mode == ModeAvailability {
		return true
	}
	return CursorFor(today).Before(c)
}

// DayCell is the render state of one day in a month view.
type DayCell struct {
	Day        int    `json:"day"`
	Date       string `json:"date"`
	IsPast     bool   `json:"is_past"`
	IsToday    bool   `json:"is_today"`
	IsBooked   bool   `json:"is_booked"`
	IsSelected bool   `json:"is_selected"`
}

// Selectable reports whether a renter may pick this day. Past and
// booked days both block selection.
func (d DayCell) Selectable() bool {
	return !d.IsPast && !d.IsBooked
}

// MonthView computes the render state of every day in the cursor month.
// locked holds canonical date keys carrying a confirmed booking,
// selected is the currently chosen day key (may be empty), today is
// injected so the view is a pure function of its inputs.
func MonthView(c MonthCursor, locked map[string]bool, selected string, today time.Time) []DayCell {
	days := make([]DayCell, 0, DaysInMonth(c.Year, c.Month))
	todayKey := DateKey(today)
	for day := 1; day <= DaysInMonth(c.Year, c.Month); day++ {
		date := time.Date(c.Year, c.Month, day, 0, 0, 0, 0, time.Local)
		key := DateKey(date)
		days = append(days, DayCell{
			Day:        day,
			Date:       key,
			IsPast:     IsPastDay(date, today),
			IsToday:    key == todayKey,
			IsBooked:   locked[key],
			IsSelected: key == selected,
		})
	}
	return days
}

// DayStatusFor derives the tri-state status for a single day. Past wins
// over booked for display purposes.
func DayStatusFor(date string, locked map[string]bool, today time.Time) (string, error) {
	day, err := ParseDateKey(date)
	if err != nil {
		return "", err
	}
	switch {
	case IsPastDay(day, today):
		return "past", nil
	case locked[date]:
		return "booked", nil
	default:
		return "free", nil
	}
}
