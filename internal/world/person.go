package world

import "fmt"

// PersonType identifies what kind of person occupies a Person value.
type PersonType uint8

const (
	PersonGuest PersonType = iota
	PersonMechanic
	PersonHandyman
	PersonGuard
	PersonEntertainer
	PersonAny // pseudo type for Staff.Count only, never stored on a person
)

// staffRoleCount is the number of real staff roles (mechanic..entertainer).
const staffRoleCount = 4

// roleIndex maps a staff PersonType to its slot in role-indexed tables.
// Calling it with a non-staff type is a programming error.
func roleIndex(t PersonType) int {
	if t < PersonMechanic || t > PersonEntertainer {
		panic(fmt.Sprintf("world: %v is not a staff role", t))
	}
	return int(t - PersonMechanic)
}

func (t PersonType) String() string {
	switch t {
	case PersonGuest:
		return "guest"
	case PersonMechanic:
		return "mechanic"
	case PersonHandyman:
		return "handyman"
	case PersonGuard:
		return "guard"
	case PersonEntertainer:
		return "entertainer"
	case PersonAny:
		return "any"
	}
	return fmt.Sprintf("PersonType(%d)", uint8(t))
}

// AnimateResult is the outcome of one per-frame animation step.
type AnimateResult uint8

const (
	AnimateOK         AnimateResult = iota // nothing special happened
	AnimateRemove                          // person walked off the map edge
	AnimateDeactivate                      // person must be removed immediately
)

// XYZ16 is a voxel position. The world is small enough for 16-bit coordinates.
type XYZ16 struct {
	X, Y, Z int16
}

// Point16 is an x/y tile coordinate, used for the guest entry point cache.
type Point16 struct {
	X, Y int16
}

// Person is the state shared by guests and staff members.
// Accessed only from the simulation goroutine — no locks.
type Person struct {
	ID   uint16 // stable identity; never changes after assignment
	Type PersonType
	Name string
	Pos  XYZ16

	active  bool
	index   int // slot index in the guest block; -1 for staff
	walkAcc int // milliseconds accumulated towards the next walk step
}

// IsActive reports whether the person currently exists in the world.
func (p *Person) IsActive() bool { return p.active }

// Activate brings the person into the world at the given position.
func (p *Person) Activate(pos XYZ16, t PersonType) {
	p.Type = t
	p.Pos = pos
	p.walkAcc = 0
	p.active = true
}

// DeActivate removes the person from the world. The slot identity survives.
func (p *Person) DeActivate(AnimateResult) {
	p.active = false
}

// walkStepMS is how long one walk step takes. Purely a pacing constant;
// real pathfinding lives outside this subsystem.
const walkStepMS = 300

// stepTowards moves one axis one tile closer to dest and reports arrival.
func (p *Person) stepTowards(dest XYZ16) bool {
	switch {
	case p.Pos.X < dest.X:
		p.Pos.X++
	case p.Pos.X > dest.X:
		p.Pos.X--
	case p.Pos.Y < dest.Y:
		p.Pos.Y++
	case p.Pos.Y > dest.Y:
		p.Pos.Y--
	case p.Pos.Z < dest.Z:
		p.Pos.Z++
	case p.Pos.Z > dest.Z:
		p.Pos.Z--
	default:
		return true
	}
	return false
}

// Guest is one visitor. The behavioral model here is deliberately shallow:
// the population container only needs Activate/DeActivate/OnAnimate/
// DailyUpdate plus a persistable payload.
type Guest struct {
	Person

	InPark    bool
	Happiness uint16 // 0..100; at 0 the guest heads for the exit
	Hunger    uint8  // 0..255, grows daily
	Thirst    uint8
	Waste     uint8

	leaving bool
	exit    XYZ16 // where to walk when leaving
	target  Ride  // ride the guest plans to visit next (nil = none)
}

// PlanRide sets the ride the guest intends to visit next.
func (g *Guest) PlanRide(r Ride) { g.target = r }

// PlannedRide returns the guest's next planned ride, or nil.
func (g *Guest) PlannedRide() Ride { return g.target }

// NotifyRideDeletion drops the ride from the guest's plans if present.
func (g *Guest) NotifyRideDeletion(r Ride) {
	if g.target == r {
		g.target = nil
	}
}

// Activate initializes a fresh guest at the park entry point.
func (g *Guest) Activate(pos XYZ16, t PersonType) {
	g.Person.Activate(pos, t)
	g.Name = fmt.Sprintf("Guest %d", g.ID)
	g.InPark = true
	g.Happiness = 50 + uint16(g.ID%50)
	g.Hunger = 0
	g.Thirst = 0
	g.Waste = 0
	g.leaving = false
	g.exit = pos
	g.target = nil
}

// OnAnimate advances the guest by delay milliseconds of animation.
// A leaving guest walks back to the entry tile and then off the map.
func (g *Guest) OnAnimate(delay int) AnimateResult {
	g.walkAcc += delay
	for g.walkAcc >= walkStepMS {
		g.walkAcc -= walkStepMS
		if !g.leaving {
			continue
		}
		if g.stepTowards(g.exit) {
			if g.InPark {
				g.InPark = false
				continue
			}
			return AnimateRemove
		}
	}
	return AnimateOK
}

// DailyUpdate performs the once-per-day upkeep for this guest.
// Returns false when the guest should be removed from the world.
func (g *Guest) DailyUpdate(pop *Guests) bool {
	if g.Hunger < 250 {
		g.Hunger += 6
	}
	if g.Thirst < 250 {
		g.Thirst += 8
	}
	if g.Hunger > 100 {
		g.Waste = min8(g.Waste+4, 250)
	}

	if g.Hunger > 150 {
		pop.ComplainHunger()
		g.Happiness = sub16(g.Happiness, 4)
	}
	if g.Thirst > 150 {
		pop.ComplainThirst()
		g.Happiness = sub16(g.Happiness, 4)
	}
	if g.Waste > 120 {
		pop.ComplainWaste()
		g.Happiness = sub16(g.Happiness, 2)
	}
	g.Happiness = sub16(g.Happiness, 2)

	if g.Happiness == 0 {
		g.leaving = true
	}
	if g.leaving && !g.InPark {
		return false // already walked out; drop the guest
	}
	return true
}

func min8(v, cap uint8) uint8 {
	if v > cap {
		return cap
	}
	return v
}

func sub16(v uint16, d uint16) uint16 {
	if v <= d {
		return 0
	}
	return v - d
}

// StaffMember is one employed worker. Mechanics can hold a ride assignment;
// the other roles only wander and animate.
type StaffMember struct {
	Person

	ride Ride // mechanics: ride currently being serviced (nil = unassigned)
}

// CurrentRide returns the ride this member is assigned to, or nil.
func (m *StaffMember) CurrentRide() Ride { return m.ride }

// Assign sends the member to service a ride.
func (m *StaffMember) Assign(r Ride) {
	m.ride = r
}

// OnAnimate advances the member by delay milliseconds. An assigned mechanic
// walks towards the ride's mechanic entrance and drops the assignment on
// arrival; everyone else just burns walk time in place.
func (m *StaffMember) OnAnimate(delay int) {
	m.walkAcc += delay
	for m.walkAcc >= walkStepMS {
		m.walkAcc -= walkStepMS
		if m.ride == nil {
			continue
		}
		if m.stepTowards(m.ride.MechanicEntrance()) {
			m.ride = nil // service done; await the next dispatch
		}
	}
}

// NotifyRideDeletion drops the assignment if it points at the removed ride.
func (m *StaffMember) NotifyRideDeletion(r Ride) {
	if m.ride == r {
		m.ride = nil
	}
}
