package components

import "time"

const (
	// StatusMessageDuration is how long success and error messages stay on
	// the status line before they are cleared.
	StatusMessageDuration = 5 * time.Second

	// ReservedLines is the chrome around the body: header, blank line and
	// status line.
	ReservedLines = 3
)
