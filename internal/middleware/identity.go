package middleware

// identity.go defines helpers shared across middleware files.  The cache
// and rate-limit key strategies use userID to partition per caller; when
// no claim is available the request is treated as a guest.

import (
	"fmt"

	"github.com/labstack/echo/v4"
)

// userID returns a string identifier for the authenticated caller, or
// "guest" when the context carries no usable user_id claim.
func userID(c echo.Context) string {
	switch v := c.Get("user_id").(type) {
	case string:
		if v != "" {
			return v
		}
	case float64:
		return fmt.Sprintf("%.0f", v)
	case uint64:
		return fmt.Sprintf("%d", v)
	case int64:
		return fmt.Sprintf("%d", v)
	}
	return "guest"
}
