package loop

// Session tunables that are not part of the game rules.

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Max render resolution. Larger terminals get a centered, bordered view.
const (
	MaxTermWidth  = 200
	MaxTermHeight = 60
)
