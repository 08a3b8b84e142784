package world

import (
	"log/slog"

	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/motion/transition"
	"github.com/sasha-s/go-deadlock"
)

// DefaultCellSize is the edge length of a cell if none is given to New.
const DefaultCellSize float32 = 24

var currentWorldId uint64

// World is an outdoor landscape split into square cells on a grid. Each cell holds the boxes that
// overlap it, expressed relative to the cell's origin.
type World struct {
	id       uint64
	cellSize float32

	cells map[uint32]*Cell

	logger **slog.Logger

	deadlock.RWMutex
}

// New creates an empty world with cells of the given size.
func New(cellSize float32, logger **slog.Logger) *World {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	currentWorldId++
	return &World{
		id:       currentWorldId,
		cellSize: cellSize,
		cells:    make(map[uint32]*Cell),
		logger:   logger,
	}
}

// ID returns the unique ID of the world.
func (w *World) ID() uint64 {
	return w.id
}

// CellSize returns the edge length of the cells of the world.
func (w *World) CellSize() float32 {
	return w.cellSize
}

func (w *World) log() *slog.Logger {
	if w.logger == nil {
		return nil
	}
	return *w.logger
}

// CellID returns the ID of the cell at grid coordinates x and y.
func CellID(x, y int32) uint32 {
	return uint32(uint16(x+0x8000))<<16 | uint32(uint16(y+0x8000))
}

// CellCoords returns the grid coordinates of the cell with the given ID.
func CellCoords(id uint32) (x, y int32) {
	return int32(id>>16) - 0x8000, int32(id&0xffff) - 0x8000
}

// Origin returns the world position of the origin of the cell with the given ID.
func (w *World) Origin(id uint32) mgl32.Vec3 {
	x, y := CellCoords(id)
	return mgl32.Vec3{float32(x) * w.cellSize, float32(y) * w.cellSize, 0}
}

// gridAt returns the grid coordinates of the cell containing the world position v.
func (w *World) gridAt(v mgl32.Vec3) (x, y int32) {
	return int32(math32.Floor(v.X() / w.cellSize)), int32(math32.Floor(v.Y() / w.cellSize))
}

// AddCell adds an empty cell at grid coordinates x and y, returning the existing cell if there
// already is one.
func (w *World) AddCell(x, y int32) *Cell {
	w.Lock()
	defer w.Unlock()
	return w.addCell(x, y)
}

func (w *World) addCell(x, y int32) *Cell {
	id := CellID(x, y)
	if c, ok := w.cells[id]; ok {
		return c
	}
	c := &Cell{id: id, world: w}
	w.cells[id] = c
	if l := w.log(); l != nil {
		l.Debug("added cell", "id", id, "x", x, "y", y)
	}
	return c
}

// AddBox adds a solid box given in world coordinates. The box is added to every cell its footprint
// overlaps, creating cells where needed.
func (w *World) AddBox(b cube.BBox) {
	w.Lock()
	defer w.Unlock()

	min, max := b.Min(), b.Max()
	minX, minY := w.gridAt(min)
	maxX, maxY := w.gridAt(max)
	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			c := w.addCell(x, y)
			c.solids = append(c.solids, b.Translate(w.Origin(c.id).Mul(-1)))
		}
	}
}

// Cell returns the cell with the given ID, if it exists.
func (w *World) Cell(id uint32) (*Cell, bool) {
	w.RLock()
	c, ok := w.cells[id]
	w.RUnlock()
	return c, ok
}

// CellAt returns the cell containing the world position v, if it exists.
func (w *World) CellAt(v mgl32.Vec3) (*Cell, bool) {
	return w.Cell(CellID(w.gridAt(v)))
}

// Position converts the world position v into a position relative to the cell containing it. It
// returns false if that cell does not exist.
func (w *World) Position(v mgl32.Vec3) (transition.Position, *Cell, bool) {
	c, ok := w.CellAt(v)
	if !ok {
		return transition.Position{}, nil, false
	}
	return transition.NewPosition(c.id, v.Sub(w.Origin(c.id))), c, true
}

// WorldPosition converts a cell relative position back into world coordinates.
func (w *World) WorldPosition(pos transition.Position) mgl32.Vec3 {
	return pos.Frame.Origin.Add(w.Origin(pos.CellID))
}

// Len returns the amount of cells in the world.
func (w *World) Len() int {
	w.RLock()
	defer w.RUnlock()
	return len(w.cells)
}

// PurgeCells removes all cells from the world.
func (w *World) PurgeCells() {
	w.Lock()
	defer w.Unlock()

	for id := range w.cells {
		delete(w.cells, id)
	}
	if l := w.log(); l != nil {
		l.Info("purged cells", "world", w.id)
	}
}

// BlockOffset ...
func (w *World) BlockOffset(from, to uint32) mgl32.Vec3 {
	if from == to {
		return mgl32.Vec3{}
	}
	return w.Origin(to).Sub(w.Origin(from))
}

// AdjustToOutside moves pos into the cell that contains it.
func (w *World) AdjustToOutside(pos transition.Position) (transition.Position, transition.Cell, bool) {
	v := w.WorldPosition(pos)
	adjusted, c, ok := w.Position(v)
	if !ok {
		return pos, nil, false
	}
	adjusted.Frame.Orientation = pos.Frame.Orientation
	return adjusted, c, true
}

// FindCellList returns the cells overlapped by the candidate spheres of path. The cell containing the
// first sphere comes first, and is nil if the world has no cell there.
func (w *World) FindCellList(path *transition.SpherePath) transition.CellList {
	if path.NumSphere == 0 {
		return transition.CellList{}
	}
	origin := w.Origin(path.CheckPos.CellID)

	w.RLock()
	defer w.RUnlock()

	centre := path.GlobalSphere[0].Center.Add(origin)
	cx, cy := w.gridAt(centre)
	list := transition.CellList{Cells: make([]transition.Cell, 0, 4)}
	if c, ok := w.cells[CellID(cx, cy)]; ok {
		list.Cells = append(list.Cells, c)
	} else {
		list.Cells = append(list.Cells, nil)
	}

	minX, minY, maxX, maxY := cx, cy, cx, cy
	for i := 0; i < path.NumSphere; i++ {
		s := path.GlobalSphere[i]
		c := s.Center.Add(origin)
		r := mgl32.Vec3{s.Radius, s.Radius, 0}
		x0, y0 := w.gridAt(c.Sub(r))
		x1, y1 := w.gridAt(c.Add(r))
		minX, minY = min(minX, x0), min(minY, y0)
		maxX, maxY = max(maxX, x1), max(maxY, y1)
	}
	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			if x == cx && y == cy {
				continue
			}
			if c, ok := w.cells[CellID(x, y)]; ok {
				list.Cells = append(list.Cells, c)
			}
		}
	}
	return list
}
