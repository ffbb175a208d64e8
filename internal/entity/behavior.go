package entity

import "github.com/samdwyer/skirmish/internal/gamedata"

// Behavior is the archetype-specific part of dying and recovering.
// HP and the dead flag are handled by Unit; a Behavior only adjusts the
// extra state its archetype carries.
type Behavior interface {
	Die(u *Unit)
	Recover(u *Unit)
}

// Grounded units have no extra death or recovery state.
type Grounded struct{}

func (Grounded) Die(*Unit)     {}
func (Grounded) Recover(*Unit) {}

// Flyer units hover while alive, drop to the ground when they die and rise
// again when they recover.
type Flyer struct{}

func (Flyer) Die(u *Unit)     { u.Airborne = false }
func (Flyer) Recover(u *Unit) { u.Airborne = true }

// BehaviorFor returns the behavior registered for an archetype name.
// Unknown or empty names fall back to Grounded.
func BehaviorFor(archetype string) Behavior {
	switch archetype {
	case gamedata.ArchetypeFlyer:
		return Flyer{}
	default:
		return Grounded{}
	}
}
