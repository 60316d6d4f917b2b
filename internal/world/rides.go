package world

// Ride is the slice of a ride instance the population code touches:
// identity for persistence, and the tile a mechanic walks to.
type Ride interface {
	Index() uint16
	MechanicEntrance() XYZ16
}

// RideLookup resolves persisted ride indices back to live rides on load.
type RideLookup interface {
	// ByIndex returns the ride with the given index, or nil if unknown.
	ByIndex(idx uint16) Ride
}
