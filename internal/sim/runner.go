// Package sim drives the simulation heartbeat: per-frame animation,
// per-tick work, and the day/month calendar derived from tick counts.
package sim

// Component is anything that participates in the simulation heartbeat.
// All calls arrive on the single simulation goroutine.
type Component interface {
	OnAnimate(delayMS int)
	OnTick()
	OnNewDay()
	OnNewMonth()
}

// Runner fans the heartbeat out to registered components and keeps the
// simulated calendar. Components run in registration order.
type Runner struct {
	components []Component

	ticksPerDay  int
	daysPerMonth int
	tickOfDay    int
	dayOfMonth   int
}

func NewRunner(ticksPerDay, daysPerMonth int) *Runner {
	return &Runner{
		components:   make([]Component, 0, 4),
		ticksPerDay:  ticksPerDay,
		daysPerMonth: daysPerMonth,
	}
}

func (r *Runner) Register(c Component) {
	r.components = append(r.components, c)
}

// Animate runs one animation frame of delayMS milliseconds.
func (r *Runner) Animate(delayMS int) {
	for _, c := range r.components {
		c.OnAnimate(delayMS)
	}
}

// Tick runs one simulated tick, firing day and month rollovers when the
// calendar wraps.
func (r *Runner) Tick() {
	for _, c := range r.components {
		c.OnTick()
	}
	r.tickOfDay++
	if r.tickOfDay < r.ticksPerDay {
		return
	}
	r.tickOfDay = 0
	for _, c := range r.components {
		c.OnNewDay()
	}
	r.dayOfMonth++
	if r.dayOfMonth < r.daysPerMonth {
		return
	}
	r.dayOfMonth = 0
	for _, c := range r.components {
		c.OnNewMonth()
	}
}
