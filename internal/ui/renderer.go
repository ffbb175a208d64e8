package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/skirmish/internal/battle"
	"github.com/samdwyer/skirmish/internal/combat"
)

// Arena layout. Players line up on the left, enemies on the right.
const (
	playerColumn = 2
	enemyColumn  = 44
	columnWidth  = 38
	firstRow     = 3
	rowSpacing   = 2
	barWidth     = 10
)

// Renderer handles drawing the battle view to the screen.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Render draws one frame of v.
func (r *Renderer) Render(v *view) {
	r.screen.Draw(func() {
		header := tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
		r.text(playerColumn, 0, "== "+v.phase+" ==", header)
		r.text(playerColumn, 1, "Heroes", tcell.StyleDefault.Foreground(tcell.ColorGray))
		r.text(enemyColumn, 1, "Enemies", tcell.StyleDefault.Foreground(tcell.ColorGray))

		for i := range v.units {
			r.renderUnit(v, i)
		}

		bottom := v.bottomRow()
		r.text(playerColumn, bottom, v.message, tcell.StyleDefault.Foreground(tcell.ColorWhite))
		r.renderMenu(v, bottom+2)
	})
}

func (r *Renderer) renderUnit(v *view, i int) {
	u := &v.units[i]
	style := r.getUnitStyle(u)

	marker := ' '
	if v.targeting && v.cursorUnit() == i {
		marker = '>'
	}
	r.screen.SetContent(u.x-1, u.y, marker, tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true))

	glyph := u.glyph
	if u.dead {
		glyph = 'x'
	}
	r.screen.SetContent(u.x, u.y, glyph, style)
	if u.airborne {
		r.screen.SetContent(u.x+1, u.y, '^', style)
	}

	label := u.name
	if n := v.candidateNumber(i); n > 0 {
		label = strconv.Itoa(n) + ". " + label
	}
	nameStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	if u.dead {
		nameStyle = nameStyle.Foreground(tcell.ColorDarkGray)
	}
	if v.highlighted[i] {
		nameStyle = nameStyle.Reverse(true)
	}
	r.text(u.x+3, u.y, label, nameStyle)

	bar := fmt.Sprintf("%s %s/%s", hpBar(u.hp, u.hpMax), formatHP(u.hp), formatHP(u.hpMax))
	if u.anim != battle.AnimIdle {
		bar += " " + u.anim.String()
	}
	r.text(u.x+3, u.y+1, bar, r.getBarStyle(u))
}

func (r *Renderer) renderMenu(v *view, y int) {
	if v.targeting {
		r.text(playerColumn, y, "Choose a target: arrows/Tab move, Enter or 1-9 select, click a name",
			tcell.StyleDefault.Foreground(tcell.ColorYellow))
		return
	}

	style := tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	if v.actionsEnabled {
		style = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	}
	r.text(playerColumn, y, "[a] Attack  [m] Magic  [d] Defend  [i] Item", style)
	r.text(playerColumn, y+1, "[q] Quit", tcell.StyleDefault.Foreground(tcell.ColorGray))
}

// getUnitStyle returns the glyph style for a unit.
func (r *Renderer) getUnitStyle(u *unitView) tcell.Style {
	if u.dead {
		return tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	}
	return tcell.StyleDefault.Foreground(u.color).Bold(true)
}

// getBarStyle colours the health bar by remaining health.
func (r *Renderer) getBarStyle(u *unitView) tcell.Style {
	switch {
	case u.dead:
		return tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	case u.hp*4 <= u.hpMax:
		return tcell.StyleDefault.Foreground(tcell.ColorRed)
	case u.hp*2 <= u.hpMax:
		return tcell.StyleDefault.Foreground(tcell.ColorYellow)
	default:
		return tcell.StyleDefault.Foreground(tcell.ColorGreen)
	}
}

// text writes s starting at (x, y).
func (r *Renderer) text(x, y int, s string, style tcell.Style) {
	for i, ch := range []rune(s) {
		r.screen.SetContent(x+i, y, ch, style)
	}
}

// hpBar renders hp as a fixed-width bar like "[#####-----]".
func hpBar(hp, hpMax float64) string {
	filled := 0
	if hpMax > 0 {
		filled = int(hp / hpMax * barWidth)
	}
	if hp > 0 && filled == 0 {
		filled = 1
	}
	if filled > barWidth {
		filled = barWidth
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", barWidth-filled) + "]"
}

func formatHP(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// columnFor returns the arena column of side.
func columnFor(side combat.Side) int {
	if side == combat.SidePlayer {
		return playerColumn
	}
	return enemyColumn
}
