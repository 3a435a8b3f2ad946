/*
Package colony implements an unbounded sparse Game of Life colony.

Only live cells are stored. A generation is computed by evaluating every live
cell and its Moore neighbourhood once against the previous state; regions with
no live cell nearby are never visited.

A Colony is not safe for concurrent use.
*/
package colony

import "colonylife/src/rules"

//Colony is the set of live cells plus the generation counter
type Colony struct {
	cells      CellSet
	generation uint64
}

//New creates an empty colony at generation 1
func New() *Colony {
	return &Colony{
		cells:      CellSet{},
		generation: 1,
	}
}

//AddCell marks the cell x,y alive
func (c *Colony) AddCell(x int32, y int32) {
	c.cells.add(Cell{x, y})
}

//Toggle flips the live/dead state of the cell x,y
func (c *Colony) Toggle(x int32, y int32) {
	cell := Cell{x, y}
	if c.cells.Contains(cell) {
		delete(c.cells, cell)
		return
	}
	c.cells.add(cell)
}

//Cells returns a copy of the live cells
func (c *Colony) Cells() CellSet {
	cells := make(CellSet, len(c.cells))
	for cell := range c.cells {
		cells.add(cell)
	}
	return cells
}

//CountNeighbours counts live cells among the 8 cells surrounding x,y
func (c *Colony) CountNeighbours(x int32, y int32) int {
	center := Cell{x, y}
	count := 0
	center.block(func(n Cell) {
		if n != center && c.cells.Contains(n) {
			count++
		}
	})
	return count
}

//Generation returns the generation counter, 1 for a new colony
func (c *Colony) Generation() uint64 {
	return c.generation
}

//CellCount returns the number of live cells
func (c *Colony) CellCount() int {
	return len(c.cells)
}

//Advance computes the next generation and replaces the live cells with it
func (c *Colony) Advance() {
	next := CellSet{}
	tested := make(CellSet, len(c.cells)*9)
	for cell := range c.cells {
		cell.block(func(n Cell) {
			if tested.Contains(n) {
				return
			}
			tested.add(n)
			//counts always use the previous generation
			if rules.ApplyConwayRules(c.CountNeighbours(n.X, n.Y), c.cells.Contains(n)) {
				next.add(n)
			}
		})
	}
	c.cells = next
	c.generation++
}
