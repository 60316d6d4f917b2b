package world

import (
	"math/rand"

	"go.uber.org/zap"
)

// Scenario exposes the scenario-controlled knobs the population reads.
type Scenario interface {
	// MaxGuests is the park's guest cap; OnNewDay spawns nothing at or above it.
	MaxGuests() int
	// SpawnProbability returns the numerator of the daily guest spawn chance,
	// out of 1024, capped at resolution.
	SpawnProbability(resolution int) int
}

// Finances receives wage payments. Fire-and-forget from the roster's view.
type Finances interface {
	PayStaffWages(amount int64)
}

// Context bundles the external collaborators every population component
// needs. It replaces the original's implicit globals: the top-level driver
// constructs one and hands it to Guests and Staff.
type Context struct {
	Map      ParkMap
	Scenario Scenario
	Inbox    Inbox
	Finances Finances
	Rides    RideLookup
	Log      *zap.Logger
}

// Random is the simulation's random source. Deterministic under a fixed seed
// so scenarios can be replayed.
type Random struct {
	r *rand.Rand
}

func NewRandom(seed int64) *Random {
	return &Random{r: rand.New(rand.NewSource(seed))}
}

// Success1024 draws one trial that succeeds with probability prob/1024.
func (r *Random) Success1024(prob int) bool {
	return r.r.Intn(1024) < prob
}

// Uniform returns a uniformly distributed value in [0, n).
func (r *Random) Uniform(n int) int {
	return r.r.Intn(n)
}
