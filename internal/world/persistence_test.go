package world

import (
	"errors"
	"testing"

	"github.com/openpark/server/internal/save"
)

func TestGuestsSaveLoadRoundTrip(t *testing.T) {
	g, _ := newTestGuests(16, 10)

	// Build a mixed population: active slots interleaved with holes.
	for i := 0; i < 6; i++ {
		g.GetFree().Activate(XYZ16{X: 2, Y: 0}, PersonGuest)
	}
	hole := g.Block().Get(2)
	hole.DeActivate(AnimateRemove)
	g.AddFree(hole)

	p := g.Block().Get(4)
	p.Pos = XYZ16{X: 7, Y: 3, Z: 1}
	p.InPark = false
	p.leaving = true
	p.Happiness = 12
	p.Hunger = 200
	p.Thirst = 130
	p.Waste = 90

	// Some complaint history and a part-finished day.
	g.OnAnimate(1)
	for i := 0; i < 80; i++ {
		g.ComplainHunger() // fires once, resetting counter and timer
	}
	for i := 0; i < 10; i++ {
		g.ComplainLitter()
	}
	g.OnTick()
	g.OnTick()

	svr := save.NewSaver()
	g.Save(svr)

	fresh, _ := newTestGuests(16, 10)
	ldr := save.NewLoader(svr.Bytes())
	if err := fresh.Load(ldr); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ldr.Remaining() != 0 {
		t.Fatalf("%d bytes left after load", ldr.Remaining())
	}

	if got, want := fresh.CountActiveGuests(), g.CountActiveGuests(); got != want {
		t.Fatalf("active after load = %d, want %d", got, want)
	}
	if fresh.dailyFrac != g.dailyFrac || fresh.nextDailyIndex != g.nextDailyIndex {
		t.Fatalf("daily cursors = (%d, %d), want (%d, %d)",
			fresh.dailyFrac, fresh.nextDailyIndex, g.dailyFrac, g.nextDailyIndex)
	}
	if fresh.startVoxel != g.startVoxel {
		t.Fatalf("entry cache = %+v, want %+v", fresh.startVoxel, g.startVoxel)
	}
	if fresh.complaintCounter != g.complaintCounter {
		t.Fatalf("complaint counters = %v, want %v", fresh.complaintCounter, g.complaintCounter)
	}
	if fresh.timeSinceComplaint != g.timeSinceComplaint {
		t.Fatalf("complaint timers = %v, want %v", fresh.timeSinceComplaint, g.timeSinceComplaint)
	}

	if fresh.Block().Get(2).IsActive() {
		t.Fatal("hole slot came back active")
	}
	q := fresh.Block().Get(4)
	if q.Pos != p.Pos || q.InPark != p.InPark || q.leaving != p.leaving {
		t.Fatalf("guest 4 state = %+v in=%v leaving=%v", q.Pos, q.InPark, q.leaving)
	}
	if q.Happiness != 12 || q.Hunger != 200 || q.Thirst != 130 || q.Waste != 90 {
		t.Fatalf("guest 4 needs = %d/%d/%d/%d", q.Happiness, q.Hunger, q.Thirst, q.Waste)
	}
	if q.Name != p.Name {
		t.Fatalf("guest 4 name = %q, want %q", q.Name, p.Name)
	}

	// The rebuilt free cursor must hand out the hole first.
	if idx := fresh.Block().Index(fresh.GetFree()); idx != 2 {
		t.Fatalf("first free slot after load = %d, want 2", idx)
	}
}

func TestGuestsLoadRejectsFutureVersion(t *testing.T) {
	svr := save.NewSaver()
	svr.StartPattern("GSTS", guestsPatternVersion+1)
	svr.EndPattern()

	g, _ := newTestGuests(8, 10)
	g.dailyFrac = 3 // sentinel; must survive the failed load untouched

	err := g.Load(save.NewLoader(svr.Bytes()))
	if !errors.Is(err, save.ErrVersionMismatch) {
		t.Fatalf("err = %v, want ErrVersionMismatch", err)
	}
	if g.dailyFrac != 3 {
		t.Fatal("state mutated by a rejected load")
	}
	if g.CountActiveGuests() != 0 {
		t.Fatal("guests appeared from a rejected load")
	}
}

func TestGuestsLoadRejectsOutOfRangeSlot(t *testing.T) {
	g, _ := newTestGuests(16, 10)
	g.GetFree().Activate(XYZ16{X: 2, Y: 0}, PersonGuest)
	svr := save.NewSaver()
	g.Save(svr)

	// A smaller park cannot hold slot ids from the bigger block.
	tiny, _ := newTestGuests(0, 10)
	if err := tiny.Load(save.NewLoader(svr.Bytes())); err == nil {
		t.Fatal("load into an undersized block succeeded")
	}
}

func TestGuestsLoadRejectsWrongTag(t *testing.T) {
	svr := save.NewSaver()
	svr.StartPattern("STAF", 1)
	svr.EndPattern()

	g, _ := newTestGuests(8, 10)
	if err := g.Load(save.NewLoader(svr.Bytes())); err == nil {
		t.Fatal("GSTS loader accepted a STAF pattern")
	}
}

func TestStaffSaveLoadRoundTrip(t *testing.T) {
	ctx, _, _ := testContext()
	r1 := &fakeRide{index: 1, entrance: XYZ16{X: 4, Y: 4}}
	r2 := &fakeRide{index: 2, entrance: XYZ16{X: 8, Y: 8}}
	ctx.Rides = rideTable{1: r1, 2: r2}

	s := NewStaff(ctx, DefaultRoleTable())
	mech := s.Hire(PersonMechanic)
	mech.Pos = XYZ16{X: 3, Y: 1}
	mech.Assign(r1)
	s.Hire(PersonHandyman)
	s.Hire(PersonGuard)
	s.Hire(PersonGuard)
	s.Hire(PersonEntertainer)
	s.RequestMechanic(r2)
	s.RequestMechanic(r1)

	svr := save.NewSaver()
	s.Save(svr)

	fresh := NewStaff(ctx, DefaultRoleTable())
	ldr := save.NewLoader(svr.Bytes())
	if err := fresh.Load(ldr); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ldr.Remaining() != 0 {
		t.Fatalf("%d bytes left after load", ldr.Remaining())
	}

	if fresh.lastPersonID != s.lastPersonID {
		t.Fatalf("lastPersonID = %d, want %d", fresh.lastPersonID, s.lastPersonID)
	}
	for _, pt := range []PersonType{PersonMechanic, PersonHandyman, PersonGuard, PersonEntertainer} {
		if fresh.Count(pt) != s.Count(pt) {
			t.Fatalf("%v headcount = %d, want %d", pt, fresh.Count(pt), s.Count(pt))
		}
	}

	m := fresh.Get(PersonMechanic, 0)
	if m.ID != mech.ID || m.Name != mech.Name || m.Pos != mech.Pos {
		t.Fatalf("mechanic = id %d %q at %+v", m.ID, m.Name, m.Pos)
	}
	if m.CurrentRide() != r1 {
		t.Fatalf("mechanic assignment = %v, want ride 1", m.CurrentRide())
	}
	if !m.IsActive() {
		t.Fatal("loaded member not active")
	}

	// Queue order survives.
	if fresh.PendingRequests() != 2 {
		t.Fatalf("pending = %d, want 2", fresh.PendingRequests())
	}
	if fresh.mechanicRequests[0] != r2 || fresh.mechanicRequests[1] != r1 {
		t.Fatal("request queue order lost")
	}

	// New hires continue the id countdown where the save left off.
	next := fresh.Hire(PersonMechanic)
	if next.ID != s.lastPersonID-1 {
		t.Fatalf("post-load hire id = %d, want %d", next.ID, s.lastPersonID-1)
	}
}

func TestStaffLoadRejectsFutureVersion(t *testing.T) {
	svr := save.NewSaver()
	svr.StartPattern("STAF", staffPatternVersion+1)
	svr.EndPattern()

	s, _ := newTestStaff()
	err := s.Load(save.NewLoader(svr.Bytes()))
	if !errors.Is(err, save.ErrVersionMismatch) {
		t.Fatalf("err = %v, want ErrVersionMismatch", err)
	}
	if s.Count(PersonAny) != 0 || s.PendingRequests() != 0 {
		t.Fatal("roster mutated by a rejected load")
	}
	if s.lastPersonID != StaffBaseID {
		t.Fatal("id counter mutated by a rejected load")
	}
}

func TestStaffLoadRejectsUnknownRide(t *testing.T) {
	ctx, _, _ := testContext()
	ride := &fakeRide{index: 5}
	ctx.Rides = rideTable{5: ride}

	s := NewStaff(ctx, DefaultRoleTable())
	s.RequestMechanic(ride)
	svr := save.NewSaver()
	s.Save(svr)

	// Load into a world where ride 5 no longer exists.
	bare, _ := newTestStaff()
	if err := bare.Load(save.NewLoader(svr.Bytes())); err == nil {
		t.Fatal("load resolved a request against a missing ride")
	}
}

func TestGuestsThenStaffShareOneBody(t *testing.T) {
	g, _ := newTestGuests(8, 10)
	activateSlot(g, 0)
	s, _ := newTestStaff()
	s.Hire(PersonHandyman)

	svr := save.NewSaver()
	g.Save(svr)
	s.Save(svr)
	body := svr.Bytes()

	g2, _ := newTestGuests(8, 10)
	s2, _ := newTestStaff()
	ldr := save.NewLoader(body)
	if err := g2.Load(ldr); err != nil {
		t.Fatalf("guests load: %v", err)
	}
	if err := s2.Load(ldr); err != nil {
		t.Fatalf("staff load: %v", err)
	}
	if ldr.Remaining() != 0 {
		t.Fatalf("%d bytes left over", ldr.Remaining())
	}
	if g2.CountActiveGuests() != 1 || s2.Count(PersonHandyman) != 1 {
		t.Fatal("combined body did not restore both subsystems")
	}
}
