// Package game wires the roster data, the battle session and the chosen
// front end together and runs them.
package game

// Mode selects the front end the battle is played through.
type Mode int

const (
	// ModeTerminal draws the battle with tcell and reads the keyboard and mouse.
	ModeTerminal Mode = iota
	// ModeHeadless logs the battle and lets an autopilot play the heroes.
	ModeHeadless
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	switch m {
	case ModeTerminal:
		return "terminal"
	case ModeHeadless:
		return "headless"
	default:
		return "unknown"
	}
}
