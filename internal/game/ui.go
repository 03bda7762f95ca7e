package game

//go:generate go tool mockgen -destination=mocks/mock_ui.go -package=mocks github.com/tomz197/fps/internal/game UI

// UI is the display surface the simulation pushes its values to. The
// simulation never formats text itself.
type UI interface {
	// SetStats shows the current health, score and ammo.
	SetStats(health, score, ammo int)
	// SetEndScreen shows or hides the game over screen.
	SetEndScreen(visible bool, finalScore, bestScore int)
	// SetInstructions shows or hides the title screen instructions.
	SetInstructions(visible bool)
	// ReleasePointer gives up any pointer or input capture.
	ReleasePointer()
}

// NopUI discards everything. Used when no display is attached.
type NopUI struct{}

func (NopUI) SetStats(int, int, int)      {}
func (NopUI) SetEndScreen(bool, int, int) {}
func (NopUI) SetInstructions(bool)        {}
func (NopUI) ReleasePointer()             {}
