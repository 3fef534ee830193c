package config

import (
	"os"
	"strconv"
)

// PayScale fixes the crew compensation constants used by the payroll
// engine.  All amounts are in cents.  The values are process-wide
// configuration rather than literals in the engine so alternate scales
// can be injected in tests or per deployment.
type PayScale struct {
	PilotBaseCents            int64 // monthly base pay for a pilot
	PilotFlightBonusCents     int64 // bonus per completed flight as pilot of record
	CopilotBonusCents         int64 // bonus per completed flight served as copilot
	AttendantBaseCents        int64 // monthly base pay for a flight attendant
	AttendantFlightBonusCents int64 // bonus per completed flight as attendant
}

// LoadPayScale reads the pay scale from environment variables, falling
// back to the standard scale when a variable is unset or malformed.
func LoadPayScale() PayScale {
	return PayScale{
		PilotBaseCents:            envInt64("PAYROLL_PILOT_BASE_CENTS", 3_000_000),
		PilotFlightBonusCents:     envInt64("PAYROLL_PILOT_FLIGHT_BONUS_CENTS", 250_000),
		CopilotBonusCents:         envInt64("PAYROLL_COPILOT_BONUS_CENTS", 150_000),
		AttendantBaseCents:        envInt64("PAYROLL_ATTENDANT_BASE_CENTS", 1_500_000),
		AttendantFlightBonusCents: envInt64("PAYROLL_ATTENDANT_FLIGHT_BONUS_CENTS", 100_000),
	}
}

func envInt64(k string, d int64) int64 {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		return n
	}
	return d
}
