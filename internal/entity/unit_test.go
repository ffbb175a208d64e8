package entity

import (
	"testing"

	"github.com/samdwyer/skirmish/internal/combat"
	"github.com/samdwyer/skirmish/internal/gamedata"
)

func TestTakeDamage(t *testing.T) {
	tests := []struct {
		name       string
		hp         float64
		damage     float64
		wantHP     float64
		wantLethal bool
	}{
		{"partial", 10, 3, 7, false},
		{"exact", 10, 10, 0, true},
		{"overkill", 5, 7, 0, true},
		{"zero", 10, 0, 10, false},
		{"negative is ignored", 10, -4, 10, false},
		{"fractional", 10, 2.5, 7.5, false},
	}

	for _, tt := range tests {
		u := NewUnit("Knight", combat.SidePlayer, tt.hp, 5, 3, 10)
		lethal := u.TakeDamage(tt.damage)

		if lethal != tt.wantLethal {
			t.Errorf("%s: TakeDamage(%v) lethal = %v, want %v", tt.name, tt.damage, lethal, tt.wantLethal)
		}
		if u.HP != tt.wantHP {
			t.Errorf("%s: HP = %v, want %v", tt.name, u.HP, tt.wantHP)
		}
		if u.Dead != (u.HP == 0) {
			t.Errorf("%s: Dead = %v with HP %v", tt.name, u.Dead, u.HP)
		}
		if u.HP < 0 || u.HP > u.HPMax {
			t.Errorf("%s: HP %v out of [0, %v]", tt.name, u.HP, u.HPMax)
		}
	}
}

func TestTakeDamageRepeated(t *testing.T) {
	u := NewUnit("Knight", combat.SidePlayer, 10, 5, 3, 10)

	hp := u.HP
	for _, d := range []float64{4, 4, 4, 4} {
		u.TakeDamage(d)
		want := hp - d
		if want < 0 {
			want = 0
		}
		if u.HP != want {
			t.Fatalf("after TakeDamage(%v) HP = %v, want %v", d, u.HP, want)
		}
		hp = u.HP
	}
	if !u.IsDead() {
		t.Error("unit should be dead after 16 damage on 10 HP")
	}
}

func TestRecover(t *testing.T) {
	u := NewUnit("Knight", combat.SidePlayer, 10, 5, 3, 10)

	// Recover from full health, wounded and dead; calling twice is harmless.
	u.Recover()
	if u.HP != 10 || u.Dead {
		t.Errorf("Recover() at full health: HP %v, Dead %v", u.HP, u.Dead)
	}

	u.TakeDamage(4)
	u.Recover()
	if u.HP != 10 || u.Dead {
		t.Errorf("Recover() wounded: HP %v, Dead %v", u.HP, u.Dead)
	}

	u.TakeDamage(100)
	u.Recover()
	u.Recover()
	if u.HP != u.HPMax {
		t.Errorf("Recover() dead: HP %v, want %v", u.HP, u.HPMax)
	}
	if u.Dead {
		t.Error("Recover() should clear Dead")
	}
}

func TestFlyerBehavior(t *testing.T) {
	def := &gamedata.UnitDef{ID: "eye", Name: "Flying Eye", Glyph: "e", Archetype: gamedata.ArchetypeFlyer, HP: 5, Attack: 0, Defense: 3, Speed: 1}
	u := NewUnitFromDef(def, combat.SideEnemy)

	if !u.Airborne {
		t.Fatal("flyer should start airborne")
	}

	u.TakeDamage(5)
	if u.Airborne {
		t.Error("flyer should drop to the ground on death")
	}

	u.Recover()
	if !u.Airborne {
		t.Error("flyer should rise again on recovery")
	}
}

// countingBehavior records how often each hook runs.
type countingBehavior struct {
	deaths, recoveries int
}

func (b *countingBehavior) Die(*Unit)     { b.deaths++ }
func (b *countingBehavior) Recover(*Unit) { b.recoveries++ }

func TestBehaviorDieRunsOnce(t *testing.T) {
	u := NewUnit("Knight", combat.SidePlayer, 5, 5, 3, 10)
	b := &countingBehavior{}
	u.SetBehavior(b)

	u.TakeDamage(5)
	u.TakeDamage(5)

	if b.deaths != 1 {
		t.Errorf("Die hook ran %d times, want 1", b.deaths)
	}
}

func TestNewUnitFromDef(t *testing.T) {
	def := &gamedata.UnitDef{ID: "knight", Name: "Knight", Glyph: "K", Color: "#FFFFFF", HP: 30, Attack: 8, Defense: 3, Speed: 12}
	u := NewUnitFromDef(def, combat.SidePlayer)

	if u.Name != "Knight" || u.Glyph != 'K' || u.Side != combat.SidePlayer {
		t.Errorf("unexpected identity: %+v", u)
	}
	if u.HP != 30 || u.HPMax != 30 {
		t.Errorf("unit should start at full health, got %v/%v", u.HP, u.HPMax)
	}
	if u.Level != 1 {
		t.Errorf("missing level should default to 1, got %v", u.Level)
	}
	if _, ok := u.Behavior().(Grounded); !ok {
		t.Errorf("empty archetype should be grounded, got %T", u.Behavior())
	}
}
