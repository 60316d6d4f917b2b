package world

// Complaint categories. Each has its own counter, threshold and cooldown
// timer so one noisy category never drowns out the others.
type complaintCategory uint8

const (
	complaintHunger complaintCategory = iota
	complaintThirst
	complaintWaste
	complaintLitter
	complaintVandalism
	numComplaints
)

// ComplaintTimeout is the minimum time between two notifications of the
// same complaint category, in milliseconds (8 minutes).
const ComplaintTimeout = 8 * 60 * 1000

// complaintThreshold is how many complaints of a category must accumulate
// before a notification is considered. Tuned per category, not shared.
var complaintThreshold = [numComplaints]uint16{
	complaintHunger:    80,
	complaintThirst:    80,
	complaintWaste:     30,
	complaintLitter:    25,
	complaintVandalism: 15,
}

var complaintMessage = [numComplaints]MessageCategory{
	complaintHunger:    MessageComplainHungry,
	complaintThirst:    MessageComplainThirsty,
	complaintWaste:     MessageComplainToilet,
	complaintLitter:    MessageComplainLitter,
	complaintVandalism: MessageComplainVandalism,
}

// GuestBlock is fixed storage for all guests. Slots are allocated once and
// recycled in place: a "new" guest is an inactive slot flipped active.
type GuestBlock struct {
	guests []Guest
}

// NewGuestBlock creates a block of size slots with ids counting up from
// baseID. Slot ids never change afterwards.
func NewGuestBlock(baseID uint16, size int) *GuestBlock {
	b := &GuestBlock{guests: make([]Guest, size)}
	for i := range b.guests {
		b.guests[i].ID = baseID + uint16(i)
		b.guests[i].index = i
	}
	return b
}

// Size returns the slot count.
func (b *GuestBlock) Size() int { return len(b.guests) }

// Get returns the guest in the given slot. The index must be in range;
// this is an internal structure, never fed untrusted input.
func (b *GuestBlock) Get(i int) *Guest {
	return &b.guests[i]
}

// Index reverse-maps a guest back to its slot index.
func (b *GuestBlock) Index(g *Guest) int {
	return g.index
}

// Guests manages the whole guest population: the slot block, the free-slot
// cursor, the daily-slice scheduler, the entry point cache and the
// complaint throttling state.
// Accessed only from the simulation goroutine — no locks.
type Guests struct {
	ctx   *Context
	block *GuestBlock
	rnd   *Random

	startVoxel Point16 // cached entry tile; {-1,-1} = unknown
	freeIdx    int     // scan-start hint for the next inactive slot

	// Daily slice cursors: together they spread one DailyUpdate per slot
	// evenly over the ticks of a simulated day.
	dailyFrac      int
	nextDailyIndex int
	ticksPerDay    int

	complaintCounter   [numComplaints]uint16
	timeSinceComplaint [numComplaints]uint32 // ms since last notification
}

// NewGuests creates the population container. blockSize is the fixed guest
// capacity; ticksPerDay drives the daily-slice scheduler.
func NewGuests(ctx *Context, rnd *Random, blockSize, ticksPerDay int) *Guests {
	g := &Guests{
		ctx:         ctx,
		block:       NewGuestBlock(0, blockSize),
		rnd:         rnd,
		ticksPerDay: ticksPerDay,
	}
	g.reset()
	return g
}

// reset restores the bookkeeping to the freshly-constructed state.
// Guest slots themselves are untouched.
func (g *Guests) reset() {
	g.startVoxel = Point16{X: -1, Y: -1}
	g.dailyFrac = 0
	g.nextDailyIndex = 0
	for c := complaintCategory(0); c < numComplaints; c++ {
		g.complaintCounter[c] = 0
		// Start saturated so an early threshold crossing is not held back
		// a full cooldown window.
		g.timeSinceComplaint[c] = ComplaintTimeout
	}
}

// Uninitialize deactivates every guest and resets all bookkeeping.
func (g *Guests) Uninitialize() {
	for i := 0; i < g.block.Size(); i++ {
		p := g.block.Get(i)
		if p.IsActive() {
			p.DeActivate(AnimateRemove)
			g.AddFree(p)
		}
	}
	g.reset()
}

// Block exposes the slot storage (persistence and tests).
func (g *Guests) Block() *GuestBlock { return g.block }

// FindNextFreeGuest advances freeIdx to the next inactive slot.
// Returns whether one was found.
func (g *Guests) FindNextFreeGuest() bool {
	for g.freeIdx < g.block.Size() {
		if !g.block.Get(g.freeIdx).IsActive() {
			return true
		}
		g.freeIdx++
	}
	return false
}

// probeNextFreeGuest is FindNextFreeGuest without moving the cursor,
// used for capacity checks.
func (g *Guests) probeNextFreeGuest() bool {
	for idx := g.freeIdx; idx < g.block.Size(); idx++ {
		if !g.block.Get(idx).IsActive() {
			return true
		}
	}
	return false
}

// HasFreeGuests reports whether an inactive slot remains.
func (g *Guests) HasFreeGuests() bool {
	return g.probeNextFreeGuest()
}

// GetFree claims the next inactive slot and moves the cursor past it.
// HasFreeGuests must hold; calling without it is a programming error.
func (g *Guests) GetFree() *Guest {
	if !g.FindNextFreeGuest() {
		panic("world: GetFree called with no free guest slot")
	}
	p := g.block.Get(g.freeIdx)
	g.freeIdx++
	return p
}

// AddFree records that a guest slot became inactive, pulling the scan
// cursor back so the next allocation starts no later than this hole.
func (g *Guests) AddFree(p *Guest) {
	if idx := g.block.Index(p); idx < g.freeIdx {
		g.freeIdx = idx
	}
}

// CountActiveGuests counts the population. Everything below freeIdx is
// taken as active per the scan invariant; the tail is scanned explicitly.
// Slots below an unvisited freeIdx that went inactive without a rescan are
// overcounted — the original behaves identically, kept on purpose.
func (g *Guests) CountActiveGuests() int {
	count := g.freeIdx
	for i := g.freeIdx; i < g.block.Size(); i++ {
		if g.block.Get(i).IsActive() {
			count++
		}
	}
	return count
}

// CountGuestsInPark counts active guests that are inside the park. Guests
// walking out are active but already off the park grounds.
func (g *Guests) CountGuestsInPark() int {
	count := 0
	for i := 0; i < g.block.Size(); i++ {
		p := g.block.Get(i)
		if p.IsActive() && p.InPark {
			count++
		}
	}
	return count
}

// OnAnimate advances all guest animation by delay milliseconds. A slot may
// deactivate itself mid-loop; the loop simply moves on and never revisits
// a freshly freed slot in the same pass.
func (g *Guests) OnAnimate(delay int) {
	for c := complaintCategory(0); c < numComplaints; c++ {
		g.timeSinceComplaint[c] += uint32(delay)
	}

	for i := 0; i < g.block.Size(); i++ {
		p := g.block.Get(i)
		if !p.IsActive() {
			continue
		}
		if ar := p.OnAnimate(delay); ar != AnimateOK {
			p.DeActivate(ar)
			g.AddFree(p)
		}
	}
}

// OnTick runs one daily slice: the contiguous index range that brings the
// day's progress in line with dailyFrac/ticksPerDay. Over a whole day every
// slot gets exactly one DailyUpdate, whatever the ratio of population size
// to ticks per day.
func (g *Guests) OnTick() {
	g.dailyFrac++
	endIndex := g.dailyFrac * g.block.Size() / g.ticksPerDay
	if endIndex > g.block.Size() {
		endIndex = g.block.Size()
	}
	for g.nextDailyIndex < endIndex {
		p := g.block.Get(g.nextDailyIndex)
		if p.IsActive() && !p.DailyUpdate(g) {
			p.DeActivate(AnimateRemove)
			g.AddFree(p)
		}
		g.nextDailyIndex++
	}
	if g.nextDailyIndex >= g.block.Size() {
		g.dailyFrac = 0
		g.nextDailyIndex = 0
	}
}

// OnNewDay tries to spawn exactly one new guest. Every reason not to —
// park at capacity, failed random trial, no usable entry tile, no free
// slot — is a silent skip; tomorrow is another day.
func (g *Guests) OnNewDay() {
	if g.CountActiveGuests() >= g.ctx.Scenario.MaxGuests() {
		return
	}
	if !g.rnd.Success1024(g.ctx.Scenario.SpawnProbability(512)) {
		return
	}

	if !isGoodEdgeRoad(g.ctx.Map, g.startVoxel.X, g.startVoxel.Y) {
		// Entry tile gone; rescan the map perimeter.
		g.startVoxel = findEdgeRoad(g.ctx.Map)
		if !isGoodEdgeRoad(g.ctx.Map, g.startVoxel.X, g.startVoxel.Y) {
			return
		}
	}

	if !g.HasFreeGuests() {
		return
	}
	p := g.GetFree()
	z := g.ctx.Map.BaseGroundHeight(g.startVoxel.X, g.startVoxel.Y)
	p.Activate(XYZ16{X: g.startVoxel.X, Y: g.startVoxel.Y, Z: z}, PersonGuest)
}

// OnNewMonth has no guest work yet.
func (g *Guests) OnNewMonth() {
}

// NotifyRideDeletion tells every active guest the ride is going away, so
// nobody keeps it in their plans.
func (g *Guests) NotifyRideDeletion(r Ride) {
	for i := 0; i < g.block.Size(); i++ {
		p := g.block.Get(i)
		if !p.IsActive() {
			continue
		}
		p.NotifyRideDeletion(r)
	}
}

// complain bumps one category counter and fires a throttled notification
// when both the threshold and the cooldown allow it.
func (g *Guests) complain(c complaintCategory) {
	g.complaintCounter[c]++
	if g.timeSinceComplaint[c] > ComplaintTimeout && g.complaintCounter[c] >= complaintThreshold[c] {
		g.complaintCounter[c] = 0
		g.timeSinceComplaint[c] = 0
		g.ctx.Inbox.SendMessage(Message{Category: complaintMessage[c]})
	}
}

// ComplainHunger registers a guest who is hungry and cannot buy food.
func (g *Guests) ComplainHunger() { g.complain(complaintHunger) }

// ComplainThirst registers a guest who is thirsty and cannot buy a drink.
func (g *Guests) ComplainThirst() { g.complain(complaintThirst) }

// ComplainWaste registers a guest who needs a toilet and cannot find one.
func (g *Guests) ComplainWaste() { g.complain(complaintWaste) }

// ComplainLitter registers a guest bothered by dirty paths.
func (g *Guests) ComplainLitter() { g.complain(complaintLitter) }

// ComplainVandalism registers a guest bothered by demolished path objects.
func (g *Guests) ComplainVandalism() { g.complain(complaintVandalism) }
