package combat

import "sort"

// TurnQueue holds the action order for one round.
//
// The queue is a stack: combatants are pushed slowest first, so the fastest
// is on top. Equal speeds keep insertion order, the earlier combatant acting
// first. A queue is never edited in place; it is drained with Pop and
// refilled with Rebuild.
type TurnQueue[T Combatant] struct {
	stack  []T
	rounds int
}

// NewTurnQueue creates a queue ordered for the given combatants.
func NewTurnQueue[T Combatant](combatants []T) *TurnQueue[T] {
	q := &TurnQueue[T]{}
	q.Rebuild(combatants)
	return q
}

// Rebuild discards whatever is left and orders every combatant by speed.
// Dead combatants are included; the caller skips them when popped.
func (q *TurnQueue[T]) Rebuild(combatants []T) {
	order := make([]T, len(combatants))
	copy(order, combatants)

	// Fastest first, ties in insertion order.
	sort.SliceStable(order, func(i, j int) bool {
		return order[i].GetSpeed() > order[j].GetSpeed()
	})

	// Push slowest first so the fastest ends up on top.
	q.stack = q.stack[:0]
	for i := len(order) - 1; i >= 0; i-- {
		q.stack = append(q.stack, order[i])
	}
	q.rounds++
}

// Pop removes and returns the combatant on top of the queue.
// It returns false when the round is exhausted.
func (q *TurnQueue[T]) Pop() (T, bool) {
	var zero T
	if len(q.stack) == 0 {
		return zero, false
	}
	top := q.stack[len(q.stack)-1]
	q.stack[len(q.stack)-1] = zero
	q.stack = q.stack[:len(q.stack)-1]
	return top, true
}

// Len returns the number of combatants left in the round.
func (q *TurnQueue[T]) Len() int {
	return len(q.stack)
}

// Rounds returns how many times the queue has been built.
func (q *TurnQueue[T]) Rounds() int {
	return q.rounds
}
