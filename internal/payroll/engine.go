// Package payroll derives monthly pay lines for crew members from
// completed-flight counts.  The computation is a pure function of its
// inputs: same users, same counts and same pay scale always produce the
// same lines.
package payroll

import (
	"errors"
	"time"

	"github.com/aeroreserva/airline-reservation/internal/config"
	"github.com/aeroreserva/airline-reservation/internal/model"
	"github.com/aeroreserva/airline-reservation/internal/repository"
)

// ErrInvalidPeriod is returned when the month is outside 1..12 or the
// year is not positive.
var ErrInvalidPeriod = errors.New("invalid payroll period")

// MonthWindow returns the inclusive window [1st 00:00:00, last day
// 23:59:59] in UTC for a 1-based month and year.
func MonthWindow(month, year int) (time.Time, time.Time, error) {
	if month < 1 || month > 12 || year < 1 {
		return time.Time{}, time.Time{}, ErrInvalidPeriod
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Second)
	return start, end, nil
}

// WeekWindow returns the ISO week (Monday 00:00:00 through Sunday
// 23:59:59, UTC) containing t.
func WeekWindow(t time.Time) (time.Time, time.Time) {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	// time.Weekday puts Sunday at 0; shift so Monday is the week start.
	offset := (int(day.Weekday()) + 6) % 7
	start := day.AddDate(0, 0, -offset)
	end := start.AddDate(0, 0, 7).Add(-time.Second)
	return start, end
}

// YearWindow returns the calendar year (Jan 1 00:00:00 through Dec 31
// 23:59:59, UTC) containing t.
func YearWindow(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.UTC().Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0).Add(-time.Second)
	return start, end
}

// PilotLines builds one line per pilot.  Pilots with no completed
// flights in the window get a base-pay-only line.  Flights flown as
// pilot of record earn the flight bonus; flights served as copilot earn
// the copilot bonus on top.
func PilotLines(pilots []model.User, counts map[uint64]repository.CrewFlightCounts, scale config.PayScale) []model.PayrollLineItem {
	lines := make([]model.PayrollLineItem, 0, len(pilots))
	for _, p := range pilots {
		c := counts[p.ID]
		flightBonus := int64(c.AsPilot) * scale.PilotFlightBonusCents
		copilotBonus := int64(c.AsCopilot) * scale.CopilotBonusCents
		lines = append(lines, model.PayrollLineItem{
			UserID:            p.ID,
			Name:              p.Name,
			Role:              model.RolePiloto,
			CompletedFlights:  c.AsPilot,
			BasePayCents:      scale.PilotBaseCents,
			FlightBonusCents:  flightBonus,
			CopilotBonusCents: copilotBonus,
			TotalPayCents:     scale.PilotBaseCents + flightBonus + copilotBonus,
		})
	}
	return lines
}

// AttendantLines builds one line per attendant.  Attendants with no
// completed flights in the window get a base-pay-only line.
func AttendantLines(attendants []model.User, counts map[uint64]repository.CrewFlightCounts, scale config.PayScale) []model.PayrollLineItem {
	lines := make([]model.PayrollLineItem, 0, len(attendants))
	for _, a := range attendants {
		c := counts[a.ID]
		flightBonus := int64(c.AsAttendant) * scale.AttendantFlightBonusCents
		lines = append(lines, model.PayrollLineItem{
			UserID:           a.ID,
			Name:             a.Name,
			Role:             model.RoleAzafata,
			CompletedFlights: c.AsAttendant,
			BasePayCents:     scale.AttendantBaseCents,
			FlightBonusCents: flightBonus,
			TotalPayCents:    scale.AttendantBaseCents + flightBonus,
		})
	}
	return lines
}
