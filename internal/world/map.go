package world

// PathFlatCount is the number of flat path slope codes. Codes at or above it
// are ramps, which cannot serve as a guest entry tile.
const PathFlatCount = 16

// Voxel is one map cell as seen by the population code.
type Voxel interface {
	// HasValidPath reports whether the voxel carries a usable path.
	HasValidPath() bool
	// PathSlope returns the imploded path slope code.
	PathSlope() uint8
}

// ParkMap is the voxel map query surface this subsystem consumes.
// The real map lives elsewhere; tests use GridMap.
type ParkMap interface {
	XSize() int16
	YSize() int16
	BaseGroundHeight(x, y int16) int16
	// Voxel returns the voxel at the position, or nil if absent.
	Voxel(pos XYZ16) Voxel
}

// isGoodEdgeRoad checks that the voxel stack at the coordinate is a usable
// entry point for new guests: a present voxel with a flat valid path.
func isGoodEdgeRoad(m ParkMap, x, y int16) bool {
	if x < 0 || y < 0 {
		return false
	}
	z := m.BaseGroundHeight(x, y)
	v := m.Voxel(XYZ16{X: x, Y: y, Z: z})
	return v != nil && v.HasValidPath() && v.PathSlope() < PathFlatCount
}

// findEdgeRoad scans the map perimeter for the first usable entry tile,
// preferring low x/y. Returns {-1,-1} when the edge has no path at all.
func findEdgeRoad(m ParkMap) Point16 {
	highestX := m.XSize() - 1
	highestY := m.YSize() - 1
	for x := int16(1); x < highestX; x++ {
		if isGoodEdgeRoad(m, x, 0) {
			return Point16{X: x, Y: 0}
		}
		if isGoodEdgeRoad(m, x, highestY) {
			return Point16{X: x, Y: highestY}
		}
	}
	for y := int16(1); y < highestY; y++ {
		if isGoodEdgeRoad(m, 0, y) {
			return Point16{X: 0, Y: y}
		}
		if isGoodEdgeRoad(m, highestX, y) {
			return Point16{X: highestX, Y: y}
		}
	}
	return Point16{X: -1, Y: -1}
}

// GridVoxel is the voxel type of GridMap.
type GridVoxel struct {
	Path  bool
	Slope uint8
}

func (v *GridVoxel) HasValidPath() bool { return v.Path }
func (v *GridVoxel) PathSlope() uint8   { return v.Slope }

// GridMap is a flat in-memory ParkMap, enough for the standalone binary and
// for tests. Ground height is zero everywhere; paths are laid per tile.
type GridMap struct {
	xsize, ysize int16
	voxels       map[Point16]*GridVoxel
}

func NewGridMap(xsize, ysize int16) *GridMap {
	return &GridMap{
		xsize:  xsize,
		ysize:  ysize,
		voxels: make(map[Point16]*GridVoxel),
	}
}

func (m *GridMap) XSize() int16 { return m.xsize }
func (m *GridMap) YSize() int16 { return m.ysize }

func (m *GridMap) BaseGroundHeight(x, y int16) int16 { return 0 }

func (m *GridMap) Voxel(pos XYZ16) Voxel {
	if pos.X < 0 || pos.Y < 0 || pos.X >= m.xsize || pos.Y >= m.ysize || pos.Z != 0 {
		return nil
	}
	v, ok := m.voxels[Point16{X: pos.X, Y: pos.Y}]
	if !ok {
		return nil
	}
	return v
}

// SetPath lays a flat path on a tile.
func (m *GridMap) SetPath(x, y int16) {
	m.voxels[Point16{X: x, Y: y}] = &GridVoxel{Path: true}
}

// SetRamp lays a ramp path on a tile (never a valid entry point).
func (m *GridMap) SetRamp(x, y int16, slope uint8) {
	m.voxels[Point16{X: x, Y: y}] = &GridVoxel{Path: true, Slope: slope}
}

// ClearPath removes the voxel at a tile entirely.
func (m *GridMap) ClearPath(x, y int16) {
	delete(m.voxels, Point16{X: x, Y: y})
}
