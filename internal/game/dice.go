package game

import (
	"math/rand"
	"time"
)

// Dice rolls server-side dice for solo play. Multiplayer clients roll
// locally and report values, which the session stores verbatim.
type Dice struct {
	values []int
	rng    *rand.Rand
}

// NewDice creates count dice, all showing zero until the first roll.
func NewDice(count int) *Dice {
	return &Dice{
		values: make([]int, count),
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Roll rerolls every die and returns the new values.
func (d *Dice) Roll() []int {
	for i := range d.values {
		d.values[i] = d.rng.Intn(6) + 1
	}
	return d.Values()
}

// RollKept rerolls only the dice whose kept flag is false.
func (d *Dice) RollKept(kept []bool) []int {
	for i := range d.values {
		if i < len(kept) && kept[i] {
			continue
		}
		d.values[i] = d.rng.Intn(6) + 1
	}
	return d.Values()
}

// Values returns a copy of the current faces.
func (d *Dice) Values() []int {
	out := make([]int, len(d.values))
	copy(out, d.values)
	return out
}

// Reset sets all dice back to zero.
func (d *Dice) Reset() {
	for i := range d.values {
		d.values[i] = 0
	}
}
