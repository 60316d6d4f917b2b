package world

import (
	"go.uber.org/zap"
)

// captureInbox records every notification for assertions.
type captureInbox struct {
	messages []Message
}

func (i *captureInbox) SendMessage(m Message) {
	i.messages = append(i.messages, m)
}

// captureFinances records every wage payment.
type captureFinances struct {
	payments []int64
}

func (f *captureFinances) PayStaffWages(amount int64) {
	f.payments = append(f.payments, amount)
}

// fakeScenario is a Scenario with fixed knobs. spawnProb is returned
// as-is, so 1024 forces every daily spawn trial to succeed.
type fakeScenario struct {
	maxGuests int
	spawnProb int
}

func (s *fakeScenario) MaxGuests() int           { return s.maxGuests }
func (s *fakeScenario) SpawnProbability(int) int { return s.spawnProb }

// fakeRide is a Ride at a fixed mechanic entrance.
type fakeRide struct {
	index    uint16
	entrance XYZ16
}

func (r *fakeRide) Index() uint16           { return r.index }
func (r *fakeRide) MechanicEntrance() XYZ16 { return r.entrance }

// rideTable is a RideLookup over a fixed set of fake rides.
type rideTable map[uint16]*fakeRide

func (t rideTable) ByIndex(idx uint16) Ride {
	r, ok := t[idx]
	if !ok {
		return nil
	}
	return r
}

// testContext builds a Context wired to capture fakes and a small map
// with a valid entry path at (2, 0).
func testContext() (*Context, *captureInbox, *captureFinances) {
	m := NewGridMap(16, 16)
	m.SetPath(2, 0)
	inbox := &captureInbox{}
	fin := &captureFinances{}
	ctx := &Context{
		Map:      m,
		Scenario: &fakeScenario{maxGuests: 100, spawnProb: 1024},
		Inbox:    inbox,
		Finances: fin,
		Rides:    rideTable{},
		Log:      zap.NewNop(),
	}
	return ctx, inbox, fin
}

// newTestGuests builds a population over the test context.
func newTestGuests(blockSize, ticksPerDay int) (*Guests, *captureInbox) {
	ctx, inbox, _ := testContext()
	g := NewGuests(ctx, NewRandom(1), blockSize, ticksPerDay)
	return g, inbox
}

// activateSlot force-activates a slot directly, bypassing OnNewDay.
func activateSlot(g *Guests, idx int) *Guest {
	p := g.Block().Get(idx)
	p.Activate(XYZ16{X: 2, Y: 0}, PersonGuest)
	return p
}
