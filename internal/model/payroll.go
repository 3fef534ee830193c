package model

// PayrollLineItem is the computed monthly pay breakdown for one crew
// member.  It is derived on demand per (month, year, role) and never
// persisted.  For pilots, CopilotBonusCents carries the extra bonus for
// flights served as copilot; for attendants it is always zero.
type PayrollLineItem struct {
	UserID            uint64 `json:"user_id"`
	Name              string `json:"name"`
	Role              string `json:"role"`
	CompletedFlights  int    `json:"completed_flights"`
	BasePayCents      int64  `json:"base_pay_cents"`
	FlightBonusCents  int64  `json:"flight_bonus_cents"`
	CopilotBonusCents int64  `json:"copilot_bonus_cents,omitempty"`
	TotalPayCents     int64  `json:"total_pay_cents"`
}
