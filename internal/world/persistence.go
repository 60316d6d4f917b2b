package world

import "github.com/openpark/server/internal/save"

// Pattern versions currently written. Loaders accept these and everything
// older; anything newer is a hard load failure.
const (
	guestsPatternVersion uint32 = 2 // "GSTS"
	staffPatternVersion  uint32 = 3 // "STAF"
)

// noRide marks an unassigned mechanic in a save.
const noRide uint16 = 0xFFFF

// Save writes the guest population as a GSTS pattern.
func (g *Guests) Save(svr *save.Saver) {
	svr.CheckNoOpenPattern()
	svr.StartPattern("GSTS", guestsPatternVersion)
	svr.PutWord(uint16(g.startVoxel.X))
	svr.PutWord(uint16(g.startVoxel.Y))
	svr.PutWord(uint16(g.dailyFrac))
	svr.PutWord(uint16(g.nextDailyIndex))
	svr.PutLong(uint32(g.freeIdx))

	for c := complaintCategory(0); c < numComplaints; c++ {
		svr.PutWord(g.complaintCounter[c])
	}
	for c := complaintCategory(0); c < numComplaints; c++ {
		svr.PutLong(g.timeSinceComplaint[c])
	}

	svr.PutLong(uint32(g.CountActiveGuests()))
	for i := 0; i < g.block.Size(); i++ {
		p := g.block.Get(i)
		if p.IsActive() {
			svr.PutWord(p.ID)
			p.save(svr)
		}
	}
	svr.EndPattern()
}

// Load reads a GSTS pattern, replacing the population's bookkeeping and
// slot states. An unsupported version fails before anything is touched.
func (g *Guests) Load(ldr *save.Loader) error {
	version := ldr.OpenPattern("GSTS")
	if err := ldr.Err(); err != nil {
		return err
	}
	switch version {
	case 0:
		// Empty block; nothing was saved.
	case 1, 2:
		g.startVoxel.X = int16(ldr.GetWord())
		g.startVoxel.Y = int16(ldr.GetWord())
		g.dailyFrac = int(ldr.GetWord())
		g.nextDailyIndex = int(ldr.GetWord())
		g.freeIdx = int(ldr.GetLong())

		if version > 1 {
			for c := complaintCategory(0); c < numComplaints; c++ {
				g.complaintCounter[c] = ldr.GetWord()
			}
			for c := complaintCategory(0); c < numComplaints; c++ {
				g.timeSinceComplaint[c] = ldr.GetLong()
			}
		}

		for i := ldr.GetLong(); i > 0 && ldr.Err() == nil; i-- {
			id := ldr.GetWord()
			if int(id) >= g.block.Size() {
				ldr.Corrupt("guest slot id %d outside block of %d", id, g.block.Size())
				break
			}
			g.block.Get(int(id)).load(ldr)
		}
	default:
		ldr.VersionMismatch(version, guestsPatternVersion)
	}
	ldr.ClosePattern()
	return ldr.Err()
}

// save writes one guest's payload (the slot id is written by the caller).
func (g *Guest) save(svr *save.Saver) {
	svr.PutWord(uint16(g.Pos.X))
	svr.PutWord(uint16(g.Pos.Y))
	svr.PutWord(uint16(g.Pos.Z))
	svr.PutByte(boolByte(g.InPark))
	svr.PutByte(boolByte(g.leaving))
	svr.PutWord(g.Happiness)
	svr.PutByte(g.Hunger)
	svr.PutByte(g.Thirst)
	svr.PutByte(g.Waste)
	svr.PutString(g.Name)
}

// load reads one guest's payload and reactivates the slot.
func (g *Guest) load(ldr *save.Loader) {
	g.Pos.X = int16(ldr.GetWord())
	g.Pos.Y = int16(ldr.GetWord())
	g.Pos.Z = int16(ldr.GetWord())
	g.InPark = ldr.GetByte() != 0
	g.leaving = ldr.GetByte() != 0
	g.Happiness = ldr.GetWord()
	g.Hunger = ldr.GetByte()
	g.Thirst = ldr.GetByte()
	g.Waste = ldr.GetByte()
	g.Name = ldr.GetString()
	g.Type = PersonGuest
	g.exit = g.Pos
	g.target = nil
	g.walkAcc = 0
	g.active = true
}

// Save writes the staff roster as a STAF pattern.
func (s *Staff) Save(svr *save.Saver) {
	svr.CheckNoOpenPattern()
	svr.StartPattern("STAF", staffPatternVersion)
	svr.PutWord(s.lastPersonID)

	svr.PutLong(uint32(len(s.mechanicRequests)))
	for _, r := range s.mechanicRequests {
		svr.PutWord(r.Index())
	}
	for _, t := range []PersonType{PersonMechanic, PersonHandyman, PersonGuard, PersonEntertainer} {
		list := s.members[roleIndex(t)]
		svr.PutLong(uint32(len(list)))
		for _, m := range list {
			m.save(svr)
		}
	}
	svr.EndPattern()
}

// Load reads a STAF pattern, replacing the roster. An unsupported version
// fails before anything is touched.
func (s *Staff) Load(ldr *save.Loader) error {
	version := ldr.OpenPattern("STAF")
	if err := ldr.Err(); err != nil {
		return err
	}
	switch version {
	case 0:
		// Empty block; nothing was saved.
	case 1, 2, 3:
		if version >= 3 {
			s.lastPersonID = ldr.GetWord()
		}
		for i := ldr.GetLong(); i > 0 && ldr.Err() == nil; i-- {
			idx := ldr.GetWord()
			ride := s.ctx.Rides.ByIndex(idx)
			if ride == nil {
				ldr.Corrupt("pending request for unknown ride %d", idx)
				break
			}
			s.mechanicRequests = append(s.mechanicRequests, ride)
		}
		if version >= 2 {
			s.loadRole(ldr, PersonMechanic)
		}
		if version >= 3 {
			s.loadRole(ldr, PersonHandyman)
			s.loadRole(ldr, PersonGuard)
			s.loadRole(ldr, PersonEntertainer)
		}
	default:
		ldr.VersionMismatch(version, staffPatternVersion)
	}
	ldr.ClosePattern()
	return ldr.Err()
}

// loadRole reads one role's count-prefixed member list.
func (s *Staff) loadRole(ldr *save.Loader, t PersonType) {
	r := roleIndex(t)
	for i := ldr.GetLong(); i > 0 && ldr.Err() == nil; i-- {
		m := &StaffMember{}
		m.index = -1
		m.load(ldr, t, s.ctx.Rides)
		s.members[r] = append(s.members[r], m)
	}
}

// save writes one staff member's payload.
func (m *StaffMember) save(svr *save.Saver) {
	svr.PutWord(m.ID)
	svr.PutWord(uint16(m.Pos.X))
	svr.PutWord(uint16(m.Pos.Y))
	svr.PutWord(uint16(m.Pos.Z))
	svr.PutString(m.Name)
	if m.ride != nil {
		svr.PutWord(m.ride.Index())
	} else {
		svr.PutWord(noRide)
	}
}

// load reads one staff member's payload.
func (m *StaffMember) load(ldr *save.Loader, t PersonType, rides RideLookup) {
	m.ID = ldr.GetWord()
	m.Pos.X = int16(ldr.GetWord())
	m.Pos.Y = int16(ldr.GetWord())
	m.Pos.Z = int16(ldr.GetWord())
	m.Name = ldr.GetString()
	m.Type = t
	m.active = true
	if idx := ldr.GetWord(); idx != noRide {
		if ride := rides.ByIndex(idx); ride != nil {
			m.ride = ride
		} else {
			ldr.Corrupt("%s %d assigned to unknown ride %d", t, m.ID, idx)
		}
	}
}

func boolByte(v bool) byte {
	if v {
		return 1
	}
	return 0
}
