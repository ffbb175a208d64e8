package ui

import (
	"sort"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/skirmish/internal/battle"
	"github.com/samdwyer/skirmish/internal/combat"
	"github.com/samdwyer/skirmish/internal/entity"
	"github.com/samdwyer/skirmish/internal/gamedata"
)

// unitView is the terminal's copy of one unit. The event pump reads only
// these copies; unit is kept as an identity to hand back to the session.
type unitView struct {
	unit     *entity.Unit
	name     string
	glyph    rune
	color    tcell.Color
	side     combat.Side
	hp       float64
	hpMax    float64
	dead     bool
	airborne bool
	anim     battle.Animation
	x, y     int
}

// view is everything the renderer draws. Guarded by Terminal.mu.
type view struct {
	phase          string
	message        string
	actionsEnabled bool
	units          []unitView
	highlighted    map[int]bool

	targeting  bool
	candidates []int // indices into units, in selection order
	cursor     int
}

func newView(players, enemies []*entity.Unit) *view {
	v := &view{highlighted: make(map[int]bool)}
	for _, group := range [][]*entity.Unit{players, enemies} {
		for row, u := range group {
			uv := unitView{
				unit:  u,
				glyph: u.Glyph,
				color: gamedata.ColorOr(u.Color, defaultColor(u.Side)),
				x:     columnFor(u.Side),
				y:     firstRow + row*rowSpacing,
			}
			uv.refresh(u)
			v.units = append(v.units, uv)
		}
	}
	return v
}

func defaultColor(side combat.Side) tcell.Color {
	if side == combat.SidePlayer {
		return tcell.ColorYellow
	}
	return tcell.ColorRed
}

// refresh copies the unit's current state. Called on the battle goroutine.
func (uv *unitView) refresh(u *entity.Unit) {
	uv.name = u.Name
	uv.side = u.Side
	uv.hp = u.HP
	uv.hpMax = u.HPMax
	uv.dead = u.Dead
	uv.airborne = u.Airborne
}

// index returns the position of u in units, or -1.
func (v *view) index(u *entity.Unit) int {
	for i := range v.units {
		if v.units[i].unit == u {
			return i
		}
	}
	return -1
}

// indices maps units to view positions, dropping unknown ones, and orders
// them top to bottom with players before enemies.
func (v *view) indices(units []*entity.Unit) []int {
	out := make([]int, 0, len(units))
	for _, u := range units {
		if i := v.index(u); i >= 0 {
			out = append(out, i)
		}
	}
	sort.SliceStable(out, func(a, b int) bool {
		ua, ub := v.units[out[a]], v.units[out[b]]
		if ua.x != ub.x {
			return ua.x < ub.x
		}
		return ua.y < ub.y
	})
	return out
}

// bottomRow is the first free row below the tallest column.
func (v *view) bottomRow() int {
	last := firstRow
	for _, u := range v.units {
		if u.y+2 > last {
			last = u.y + 2
		}
	}
	return last + 1
}

// cursorUnit returns the unit under the target cursor, or -1.
func (v *view) cursorUnit() int {
	if !v.targeting || len(v.candidates) == 0 {
		return -1
	}
	return v.candidates[v.cursor]
}

// candidateNumber returns the 1-based selection number of unit i while
// targeting, or 0.
func (v *view) candidateNumber(i int) int {
	if !v.targeting {
		return 0
	}
	for n, c := range v.candidates {
		if c == i {
			return n + 1
		}
	}
	return 0
}

// move steps the cursor by delta, skipping candidates that have died.
func (v *view) move(delta int) {
	n := len(v.candidates)
	if !v.targeting || n == 0 {
		return
	}
	for step := 0; step < n; step++ {
		v.cursor = ((v.cursor+delta)%n + n) % n
		if !v.units[v.candidates[v.cursor]].dead {
			return
		}
	}
}

// unitAt returns the unit drawn at screen position (x, y), or -1.
func (v *view) unitAt(x, y int) int {
	for i, u := range v.units {
		if y >= u.y && y <= u.y+1 && x >= u.x-1 && x < u.x+columnWidth {
			return i
		}
	}
	return -1
}

// selectable reports whether unit i may be picked as a target right now.
func (v *view) selectable(i int) bool {
	if !v.targeting || i < 0 || i >= len(v.units) || v.units[i].dead {
		return false
	}
	for _, c := range v.candidates {
		if c == i {
			return true
		}
	}
	return false
}
