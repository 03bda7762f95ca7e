package loop

import (
	"fmt"
	"time"

	"github.com/tomz197/fps/internal/draw"
	"github.com/tomz197/fps/internal/game"
	"github.com/tomz197/fps/internal/input"
)

// HUD is the terminal user interface around the first-person view. The
// simulation drives it through game.UI; the renderer draws it as an overlay.
type HUD struct {
	canvas *draw.Canvas

	health int
	score  int
	ammo   int

	instructions bool
	endScreen    bool
	finalScore   int
	bestScore    int

	// Pending pointer capture/release sequence, written with the next frame.
	pointer string

	// Session notices, set by the terminal driver.
	inactiveFor time.Duration // Zero when the user is active
	shutdownIn  time.Duration // Zero when no shutdown is pending
	players     int           // Live sessions on this server, 0 when standalone
}

var _ game.UI = (*HUD)(nil)

// NewHUD creates a HUD drawing over canvas. The instructions screen is shown
// until the game starts.
func NewHUD(canvas *draw.Canvas) *HUD {
	return &HUD{canvas: canvas, instructions: true}
}

// SetStats implements game.UI.
func (h *HUD) SetStats(health, score, ammo int) {
	h.health = health
	h.score = score
	h.ammo = ammo
}

// SetEndScreen implements game.UI.
func (h *HUD) SetEndScreen(visible bool, finalScore, bestScore int) {
	h.endScreen = visible
	h.finalScore = finalScore
	h.bestScore = bestScore
}

// SetInstructions implements game.UI. Hiding the instructions means play
// begins, so the pointer is captured for looking around.
func (h *HUD) SetInstructions(visible bool) {
	h.instructions = visible
	if !visible {
		h.pointer = input.CapturePointer
	}
}

// ReleasePointer implements game.UI.
func (h *HUD) ReleasePointer() {
	h.pointer = input.ReleasePointer
}

// Draw writes the HUD for the current frame. It is a draw.Overlay.
func (h *HUD) Draw(cw *draw.ChunkWriter, v game.View) {
	if h.pointer != "" {
		cw.WriteString(h.pointer)
		h.pointer = ""
	}

	termWidth := h.canvas.TerminalWidth()
	termHeight := h.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	switch {
	case h.shutdownIn > 0:
		h.drawShutdownScreen(cw, centerX, centerY)
	case h.inactiveFor > 0:
		h.drawInactivityScreen(cw, centerX, centerY)
	case h.endScreen:
		h.drawEndScreen(cw, centerX, centerY)
	case h.instructions:
		h.drawInstructions(cw, centerX, centerY)
	default:
		h.drawPlayingHUD(cw, termWidth, termHeight, v)
	}
}

// text writes s at a canvas position and marks the cells dirty, so the canvas
// cleans them up next frame if the text goes away.
func (h *HUD) text(cw *draw.ChunkWriter, col, row int, s string) {
	cw.WriteAt(col, row, s)
	h.canvas.MarkTextDirty(col, row, len([]rune(s)))
}

func (h *HUD) centered(cw *draw.ChunkWriter, centerX, row int, s string) {
	col := max(centerX-len([]rune(s))/2, 1)
	h.text(cw, col, row, s)
}

// blinkOn toggles every 600ms for prompts.
func blinkOn() bool {
	return time.Now().UnixMilli()/600%2 == 0
}

// drawInstructions draws the title screen.
func (h *HUD) drawInstructions(cw *draw.ChunkWriter, centerX, centerY int) {
	titleArt := []string{
		` ___ ___  ___     _   ___ ___ _  _   _   `,
		`| __| _ \/ __|   /_\ | _ \ __| \| | /_\  `,
		`| _||  _/\__ \  / _ \|   / _|| .' |/ _ \ `,
		`|_| |_|  |___/ /_/ \_\_|_\___|_|\_/_/ \_\`,
	}
	titleStartY := centerY - 8
	for i, line := range titleArt {
		h.centered(cw, centerX, titleStartY+i, line)
	}

	subtitle := "~ Survive the horde ~"
	h.centered(cw, centerX, titleStartY+len(titleArt)+1, subtitle)

	controlsY := titleStartY + len(titleArt) + 3
	h.centered(cw, centerX, controlsY, "Controls")
	controlLines := []string{
		"W A S D  . . . . . .  Move",
		"Mouse / Arrows / IJKL  Look",
		"SPACE / Click  . . .  Shoot",
		"R  . . . . . . . .  Reload",
		"Q  . . . . . . . . .  Quit",
	}
	for i, line := range controlLines {
		h.centered(cw, centerX, controlsY+1+i, line)
	}

	if blinkOn() {
		h.centered(cw, centerX, controlsY+len(controlLines)+2, ">>  Press ENTER to Start  <<")
	}
}

// drawPlayingHUD draws health, score and ammo. Text fields use fixed-width
// formatting so shrinking values don't leave residual characters on screen.
func (h *HUD) drawPlayingHUD(cw *draw.ChunkWriter, termWidth, termHeight int, v game.View) {
	healthText := fmt.Sprintf("Health: %-4d", h.health)
	if h.health <= 30 {
		healthText = draw.ColorRed + healthText + draw.ColorReset
	}
	cw.WriteAt(2, 1, healthText)
	h.canvas.MarkTextDirty(2, 1, len("Health: ")+4)

	h.text(cw, 2, 2, fmt.Sprintf("Score: %-8d", h.score))

	ammoText := fmt.Sprintf("Ammo: %3d/%-3d", h.ammo, v.Stats.MaxAmmo)
	h.text(cw, termWidth-len(ammoText)-1, 1, ammoText)

	if h.ammo == 0 && blinkOn() {
		h.centered(cw, termWidth/2, termHeight/2+3, "Press R to reload")
	}

	h.text(cw, 2, termHeight, fmt.Sprintf("Kills: %-6d", v.Stats.Kills))
	if h.players > 0 {
		playersText := fmt.Sprintf("Players: %-4d", h.players)
		h.text(cw, termWidth-len(playersText)-1, termHeight, playersText)
	}
}

// drawEndScreen draws the game over screen.
func (h *HUD) drawEndScreen(cw *draw.ChunkWriter, centerX, centerY int) {
	titleArt := []string{
		`   ___   _   __  __ ___    _____   _____ ___  `,
		`  / __| /_\ |  \/  | __|  / _ \ \ / / __| _ \ `,
		` | (_ |/ _ \| |\/| | _|  | (_) \ V /| _||   / `,
		`  \___/_/ \_\_|  |_|___|  \___/ \_/ |___|_|_\ `,
	}
	titleStartY := centerY - 6
	for i, line := range titleArt {
		h.centered(cw, centerX, titleStartY+i, line)
	}

	row := titleStartY + len(titleArt) + 1
	h.centered(cw, centerX, row, fmt.Sprintf("Final Score: %d", h.finalScore))
	best := fmt.Sprintf("Best: %d", h.bestScore)
	if h.finalScore > 0 && h.finalScore >= h.bestScore {
		best = "New best score!"
	}
	h.centered(cw, centerX, row+2, best)

	if blinkOn() {
		h.centered(cw, centerX, row+4, ">>  Press ENTER to Restart  <<")
	}
}

// drawInactivityScreen draws the inactivity warning screen.
func (h *HUD) drawInactivityScreen(cw *draw.ChunkWriter, centerX, centerY int) {
	h.centered(cw, centerX, centerY-2, "INACTIVITY WARNING")
	remaining := int((time.Duration(InactivityDisconnectUser)*time.Second - h.inactiveFor).Seconds())
	msg := fmt.Sprintf("You have been inactive for too long. You will be disconnected in %d seconds.", max(remaining, 0))
	h.centered(cw, centerX, centerY, msg)
	h.centered(cw, centerX, centerY+2, "Press any key to continue")
}

// drawShutdownScreen draws the server shutdown notification screen.
func (h *HUD) drawShutdownScreen(cw *draw.ChunkWriter, centerX, centerY int) {
	h.centered(cw, centerX, centerY-3, "SERVER SHUTTING DOWN")
	h.centered(cw, centerX, centerY-1, "The server is restarting for maintenance.")
	h.centered(cw, centerX, centerY, "Please reconnect in a moment.")
	remaining := int(h.shutdownIn.Seconds()) + 1
	h.centered(cw, centerX, centerY+2, fmt.Sprintf("Disconnecting in %d seconds...", remaining))
	h.centered(cw, centerX, centerY+4, "Press Q to disconnect now")
}
