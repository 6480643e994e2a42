package constants

import "time"

const (
	// AbortShake is how long a row or form shows its error state after a
	// failed remote call before handing control back to the user.
	AbortShake = 600 * time.Millisecond

	// NewPointID keys the creation form wherever an id is required.
	NewPointID = "__new_point__"
)
