package colony

import (
	"math"
	"sort"
)

//Cell is the coordinate of a cell on the int32 plane
//positions outside the plane are never alive, so neighbourhood walks do not wrap
type Cell struct {
	X int32
	Y int32
}

//CellSet is the set of live cells
type CellSet map[Cell]struct{}

//Contains reports whether the cell is in the set
func (s CellSet) Contains(c Cell) bool {
	_, ok := s[c]
	return ok
}

//Len returns the number of cells in the set
func (s CellSet) Len() int {
	return len(s)
}

func (s CellSet) add(c Cell) {
	s[c] = struct{}{}
}

//Sorted returns the cells ordered by row, then by column
func (s CellSet) Sorted() []Cell {
	cells := make([]Cell, 0, len(s))
	for c := range s {
		cells = append(cells, c)
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Y != cells[j].Y {
			return cells[i].Y < cells[j].Y
		}
		return cells[i].X < cells[j].X
	})
	return cells
}

//Bounds returns the bounding box of the set, ok is false for the empty set
func (s CellSet) Bounds() (min Cell, max Cell, ok bool) {
	for c := range s {
		if !ok {
			min, max, ok = c, c, true
			continue
		}
		if c.X < min.X {
			min.X = c.X
		}
		if c.Y < min.Y {
			min.Y = c.Y
		}
		if c.X > max.X {
			max.X = c.X
		}
		if c.Y > max.Y {
			max.Y = c.Y
		}
	}
	return
}

//block calls fn for the cell and its 8 neighbours, skipping positions off the plane
func (c Cell) block(fn func(n Cell)) {
	for dy := int64(-1); dy <= 1; dy++ {
		ny := int64(c.Y) + dy
		if ny < math.MinInt32 || ny > math.MaxInt32 {
			continue
		}
		for dx := int64(-1); dx <= 1; dx++ {
			nx := int64(c.X) + dx
			if nx < math.MinInt32 || nx > math.MaxInt32 {
				continue
			}
			fn(Cell{int32(nx), int32(ny)})
		}
	}
}
