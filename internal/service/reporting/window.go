package reporting

import (
	"fmt"
	"strings"
	"time"

	"github.com/sebaaaap/Dashboard-prueba1/internal/domain/models"
	"github.com/sebaaaap/Dashboard-prueba1/internal/repository"
)

// Window is an inclusive range of calendar days, each held as UTC midnight like stored dates.
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow validates an explicit window.
func NewWindow(start, end time.Time) (Window, error) {
	w := Window{Start: truncateDay(start), End: truncateDay(end)}
	if w.End.Before(w.Start) {
		return Window{}, fmt.Errorf("%w: fecha_fin %s is before fecha_inicio %s", models.ErrValidation, w.End.Format(dateLayout), w.Start.Format(dateLayout))
	}
	return w, nil
}

// Range converts the window to a store filter.
func (w Window) Range() repository.DateRange {
	return repository.Between(w.Start, w.End)
}

// ParseDate reads a YYYY-MM-DD query value.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not a YYYY-MM-DD date", models.ErrValidation, value)
	}
	return t, nil
}

// Period names accepted by the period reports.
const (
	PeriodToday  = "today"
	PeriodWeek   = "week"
	PeriodMonth  = "month"
	PeriodCustom = "custom"
)

// PeriodRequest selects a window by name or by explicit dates.
type PeriodRequest struct {
	Period string
	Start  *time.Time
	End    *time.Time
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// today is the current calendar date in the reporting timezone, as UTC midnight.
func (s *Service) today() time.Time {
	return truncateDay(s.now().In(s.loc))
}

// wallClock is the current local date and time with the UTC location attached,
// so it compares with stored dates the way a naive local timestamp would.
func (s *Service) wallClock() time.Time {
	n := s.now().In(s.loc)
	return time.Date(n.Year(), n.Month(), n.Day(), n.Hour(), n.Minute(), n.Second(), 0, time.UTC)
}

func weekStart(day time.Time) time.Time {
	daysSinceMonday := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -daysSinceMonday)
}

func monthStart(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func (s *Service) todayWindow() Window {
	t := s.today()
	return Window{Start: t, End: t}
}

func (s *Service) thisWeek() Window {
	t := s.today()
	return Window{Start: weekStart(t), End: t}
}

func (s *Service) thisMonth() Window {
	t := s.today()
	return Window{Start: monthStart(t), End: t}
}

func (s *Service) previousWeek() Window {
	start := weekStart(s.today())
	return Window{Start: start.AddDate(0, 0, -7), End: start.AddDate(0, 0, -1)}
}

// lookback is the window [today-days, today].
func (s *Service) lookback(days int) Window {
	t := s.today()
	return Window{Start: t.AddDate(0, 0, -days), End: t}
}

// ResolvePeriod turns a request into a window and its label. Explicit dates win over the name;
// without either the current month is used.
func (s *Service) ResolvePeriod(req PeriodRequest) (Window, string, error) {
	switch {
	case req.Start != nil && req.End != nil:
		w, err := NewWindow(*req.Start, *req.End)
		return w, PeriodCustom, err
	case req.Start != nil || req.End != nil:
		return Window{}, "", fmt.Errorf("%w: fecha_inicio and fecha_fin must be given together", models.ErrValidation)
	}

	switch strings.ToLower(strings.TrimSpace(req.Period)) {
	case PeriodToday, "hoy":
		return s.todayWindow(), PeriodToday, nil
	case PeriodWeek, "semana":
		return s.thisWeek(), PeriodWeek, nil
	case PeriodMonth, "mes", "":
		return s.thisMonth(), PeriodMonth, nil
	default:
		return Window{}, "", fmt.Errorf("%w: unknown period %q", models.ErrValidation, req.Period)
	}
}
