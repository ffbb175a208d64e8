package entity

import (
	"github.com/samdwyer/skirmish/internal/combat"
	"github.com/samdwyer/skirmish/internal/gamedata"
)

// Roster represents the ordered set of units fighting for one side.
type Roster struct {
	Side    combat.Side
	Members []*Unit
}

// NewRoster creates a roster for side. Members keep the given order.
func NewRoster(side combat.Side, members ...*Unit) *Roster {
	for _, m := range members {
		m.Side = side
	}
	return &Roster{Side: side, Members: members}
}

// NewRosterFromDefs builds one unit per definition.
func NewRosterFromDefs(side combat.Side, defs []gamedata.UnitDef) *Roster {
	members := make([]*Unit, 0, len(defs))
	for i := range defs {
		members = append(members, NewUnitFromDef(&defs[i], side))
	}
	return &Roster{Side: side, Members: members}
}

// Alive returns the members that are not dead, in roster order.
// The slice is rebuilt on every call.
func (r *Roster) Alive() []*Unit {
	alive := make([]*Unit, 0, len(r.Members))
	for _, m := range r.Members {
		if !m.Dead {
			alive = append(alive, m)
		}
	}
	return alive
}

// AliveCount returns the number of members still standing.
func (r *Roster) AliveCount() int {
	count := 0
	for _, m := range r.Members {
		if !m.Dead {
			count++
		}
	}
	return count
}

// IsDefeated returns true when every member is dead.
func (r *Roster) IsDefeated() bool {
	return r.AliveCount() == 0
}

// RecoverAll restores every member to full health.
func (r *Roster) RecoverAll() {
	for _, m := range r.Members {
		m.Recover()
	}
}
