package world

import "fmt"

// StaffBaseID is the id the staff counter counts down from. Guest ids count
// up from zero, so the two populations never share a number.
const StaffBaseID uint16 = 0xFFFF

// RoleInfo is the hiring template for one staff role.
type RoleInfo struct {
	NameFormat string // fmt template with one %d (hire ordinal)
	Salary     int64  // monthly wage per head
	HirePos    XYZ16  // where a fresh hire appears
}

// RoleTable holds one RoleInfo per staff role, indexed by roleIndex.
type RoleTable [staffRoleCount]RoleInfo

// DefaultRoleTable returns the built-in hiring templates, used when no
// roles file is configured.
func DefaultRoleTable() RoleTable {
	pos := XYZ16{X: 9, Y: 2}
	var t RoleTable
	t.SetRole(PersonMechanic, RoleInfo{NameFormat: "Mechanic %d", Salary: 1350, HirePos: pos})
	t.SetRole(PersonHandyman, RoleInfo{NameFormat: "Handyman %d", Salary: 750, HirePos: pos})
	t.SetRole(PersonGuard, RoleInfo{NameFormat: "Guard %d", Salary: 1050, HirePos: pos})
	t.SetRole(PersonEntertainer, RoleInfo{NameFormat: "Entertainer %d", Salary: 900, HirePos: pos})
	return t
}

// Role returns the template for a staff role.
func (t RoleTable) Role(pt PersonType) RoleInfo {
	return t[roleIndex(pt)]
}

// SetRole replaces the template for a staff role.
func (t *RoleTable) SetRole(pt PersonType, info RoleInfo) {
	t[roleIndex(pt)] = info
}

// Staff is the employee roster: one collection per role, plus the FIFO
// queue of rides waiting for a mechanic.
// Accessed only from the simulation goroutine — no locks.
type Staff struct {
	ctx   *Context
	roles RoleTable

	members [staffRoleCount][]*StaffMember

	// Pending ride-service requests, oldest first. Rides are not owned and
	// appear at most once per outstanding need (callers keep it that way).
	mechanicRequests []Ride

	lastPersonID uint16 // next hire gets lastPersonID-1
}

// NewStaff creates an empty roster.
func NewStaff(ctx *Context, roles RoleTable) *Staff {
	return &Staff{
		ctx:          ctx,
		roles:        roles,
		lastPersonID: StaffBaseID,
	}
}

// Uninitialize dismisses everyone and clears all pending requests.
func (s *Staff) Uninitialize() {
	for r := range s.members {
		s.members[r] = nil
	}
	s.mechanicRequests = nil
	s.lastPersonID = StaffBaseID
}

// generateID returns a fresh unique staff id, counting down from the base.
func (s *Staff) generateID() uint16 {
	s.lastPersonID--
	return s.lastPersonID
}

// Hire employs a new staff member of the given role. The roster owns the
// returned member until Dismiss.
func (s *Staff) Hire(t PersonType) *StaffMember {
	info := s.roles.Role(t)

	m := &StaffMember{}
	m.ID = s.generateID()
	m.index = -1
	m.Activate(info.HirePos, t)
	m.Name = fmt.Sprintf(info.NameFormat, StaffBaseID-m.ID)

	r := roleIndex(t)
	s.members[r] = append(s.members[r], m)
	return m
}

// Dismiss removes a member from its role collection. The member must be
// present there; anything else is a programming error.
func (s *Staff) Dismiss(m *StaffMember) {
	r := roleIndex(m.Type)
	for i, cur := range s.members[r] {
		if cur == m {
			s.members[r] = append(s.members[r][:i], s.members[r][i+1:]...)
			return
		}
	}
	panic(fmt.Sprintf("world: dismissing %s %d not on the roster", m.Type, m.ID))
}

// Count returns the headcount of one role, or of all roles for PersonAny.
func (s *Staff) Count(t PersonType) int {
	if t == PersonAny {
		total := 0
		for r := range s.members {
			total += len(s.members[r])
		}
		return total
	}
	return len(s.members[roleIndex(t)])
}

// Get returns the listIndex-th member of a role, in insertion order.
func (s *Staff) Get(t PersonType, listIndex int) *StaffMember {
	return s.members[roleIndex(t)][listIndex]
}

// RequestMechanic queues a ride for inspection or repair. Duplicate
// suppression is the caller's job.
func (s *Staff) RequestMechanic(ride Ride) {
	s.mechanicRequests = append(s.mechanicRequests, ride)
}

// PendingRequests returns the number of queued service requests.
func (s *Staff) PendingRequests() int {
	return len(s.mechanicRequests)
}

// OnTick assigns at most one queued service request to the nearest
// unassigned mechanic. One dispatch per tick is pacing, not a limitation.
func (s *Staff) OnTick() {
	mechanics := s.members[roleIndex(PersonMechanic)]
	if len(s.mechanicRequests) == 0 || len(mechanics) == 0 {
		return
	}

	dest := s.mechanicRequests[0].MechanicEntrance()
	var best *StaffMember
	bestDist := 0
	for _, m := range mechanics {
		if m.CurrentRide() != nil {
			continue
		}
		d := manhattan(m.Pos, dest)
		if best == nil || d < bestDist {
			best = m
			bestDist = d
		}
	}
	if best != nil {
		best.Assign(s.mechanicRequests[0])
		s.mechanicRequests = s.mechanicRequests[1:]
	}
}

// manhattan is the 3-axis Manhattan distance between two voxel positions.
func manhattan(a, b XYZ16) int {
	return abs16(a.X-b.X) + abs16(a.Y-b.Y) + abs16(a.Z-b.Z)
}

func abs16(v int16) int {
	if v < 0 {
		return int(-v)
	}
	return int(v)
}

// OnNewDay has no roster work yet.
func (s *Staff) OnNewDay() {
}

// OnNewMonth pays wages: one payment per role, salary times headcount.
func (s *Staff) OnNewMonth() {
	for _, t := range []PersonType{PersonMechanic, PersonHandyman, PersonGuard, PersonEntertainer} {
		s.ctx.Finances.PayStaffWages(s.roles.Role(t).Salary * int64(s.Count(t)))
	}
}

// OnAnimate advances every member's animation.
func (s *Staff) OnAnimate(delay int) {
	for r := range s.members {
		for _, m := range s.members[r] {
			m.OnAnimate(delay)
		}
	}
}

// NotifyRideDeletion tells every member the ride is going away. Pending
// service requests for it are dropped as well; dispatching a mechanic to a
// deleted ride helps nobody.
func (s *Staff) NotifyRideDeletion(ride Ride) {
	for r := range s.members {
		for _, m := range s.members[r] {
			m.NotifyRideDeletion(ride)
		}
	}
	kept := s.mechanicRequests[:0]
	for _, r := range s.mechanicRequests {
		if r != ride {
			kept = append(kept, r)
		}
	}
	s.mechanicRequests = kept
}
