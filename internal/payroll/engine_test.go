package payroll

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aeroreserva/airline-reservation/internal/config"
	"github.com/aeroreserva/airline-reservation/internal/model"
	"github.com/aeroreserva/airline-reservation/internal/repository"
)

var testScale = config.PayScale{
	PilotBaseCents:            3_000_000,
	PilotFlightBonusCents:     250_000,
	CopilotBonusCents:         150_000,
	AttendantBaseCents:        1_500_000,
	AttendantFlightBonusCents: 100_000,
}

func TestMonthWindow(t *testing.T) {
	tests := []struct {
		name      string
		month     int
		year      int
		wantStart time.Time
		wantEnd   time.Time
		wantErr   bool
	}{
		{
			name:      "june 2025",
			month:     6,
			year:      2025,
			wantStart: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, 6, 30, 23, 59, 59, 0, time.UTC),
		},
		{
			name:      "february leap year",
			month:     2,
			year:      2024,
			wantStart: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC),
		},
		{
			name:      "december rolls into next year",
			month:     12,
			year:      2025,
			wantStart: time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC),
		},
		{name: "month zero", month: 0, year: 2025, wantErr: true},
		{name: "month thirteen", month: 13, year: 2025, wantErr: true},
		{name: "year zero", month: 6, year: 0, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := MonthWindow(tt.month, tt.year)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPeriod)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestWeekWindow(t *testing.T) {
	// Wednesday 2025-06-18 -> week Monday 16th .. Sunday 22nd.
	start, end := WeekWindow(time.Date(2025, 6, 18, 15, 30, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 6, 22, 23, 59, 59, 0, time.UTC), end)

	// A Monday stays at its own 00:00.
	start, _ = WeekWindow(time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC), start)

	// A Sunday belongs to the week that started six days earlier.
	start, end = WeekWindow(time.Date(2025, 6, 22, 23, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 6, 22, 23, 59, 59, 0, time.UTC), end)
}

func TestYearWindow(t *testing.T) {
	start, end := YearWindow(time.Date(2025, 7, 4, 12, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC), end)
}

func TestPilotLines_ZeroFlightsGetsBaseOnly(t *testing.T) {
	pilots := []model.User{{ID: 7, Name: "Marta", Role: model.RolePiloto}}
	lines := PilotLines(pilots, map[uint64]repository.CrewFlightCounts{}, testScale)
	require.Len(t, lines, 1)
	assert.Equal(t, 0, lines[0].CompletedFlights)
	assert.Equal(t, testScale.PilotBaseCents, lines[0].TotalPayCents)
}

func TestPilotLines_CopilotBonusAdditivity(t *testing.T) {
	// Pilot of record on 1 flight, copilot on 2:
	// base + 1*flightBonus + 2*copilotBonus.
	pilots := []model.User{{ID: 3, Name: "Luis", Role: model.RolePiloto}}
	counts := map[uint64]repository.CrewFlightCounts{
		3: {AsPilot: 1, AsCopilot: 2},
	}
	lines := PilotLines(pilots, counts, testScale)
	require.Len(t, lines, 1)
	want := testScale.PilotBaseCents + 1*testScale.PilotFlightBonusCents + 2*testScale.CopilotBonusCents
	assert.Equal(t, want, lines[0].TotalPayCents)
	assert.Equal(t, 1, lines[0].CompletedFlights)
	assert.Equal(t, 2*testScale.CopilotBonusCents, lines[0].CopilotBonusCents)
}

func TestPilotLines_Deterministic(t *testing.T) {
	pilots := []model.User{
		{ID: 1, Name: "Ana", Role: model.RolePiloto},
		{ID: 2, Name: "Beto", Role: model.RolePiloto},
	}
	counts := map[uint64]repository.CrewFlightCounts{
		1: {AsPilot: 4},
		2: {AsPilot: 2, AsCopilot: 1},
	}
	first := PilotLines(pilots, counts, testScale)
	second := PilotLines(pilots, counts, testScale)
	assert.Equal(t, first, second)
}

func TestAttendantLines(t *testing.T) {
	attendants := []model.User{
		{ID: 10, Name: "Carla", Role: model.RoleAzafata},
		{ID: 11, Name: "Dora", Role: model.RoleAzafata},
	}
	counts := map[uint64]repository.CrewFlightCounts{
		10: {AsAttendant: 3},
	}
	lines := AttendantLines(attendants, counts, testScale)
	require.Len(t, lines, 2)
	assert.Equal(t, testScale.AttendantBaseCents+3*testScale.AttendantFlightBonusCents, lines[0].TotalPayCents)
	// Zero flights still yields a base-pay line.
	assert.Equal(t, testScale.AttendantBaseCents, lines[1].TotalPayCents)
	assert.Zero(t, lines[1].CopilotBonusCents)
}
