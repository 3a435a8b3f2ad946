package pattern

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"

	"colonylife/src/colony"
)

//Placement tells where a pattern is positioned inside the view
type Placement string

const (
	PlacementCenter  Placement = "center"
	PlacementTopLeft Placement = "topleft"
	PlacementLeft    Placement = "left"
)

//margin used by the anchored placements
const edgeMargin = 2

const liveRune = 'O'

//Valid reports whether p is a known placement
func (p Placement) Valid() bool {
	switch p {
	case PlacementCenter, PlacementTopLeft, PlacementLeft:
		return true
	}
	return false
}

//UnmarshalJSON accepts only the known placement names, empty means center
func (p *Placement) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.Wrap(err, "[Placement] expected a string")
	}
	v := Placement(strings.ToLower(strings.TrimSpace(s)))
	if v == "" {
		v = PlacementCenter
	}
	if !v.Valid() {
		return errors.Errorf("[Placement] unknown placement %q", s)
	}
	*p = v
	return nil
}

//Pattern is a named shape: rows of 'O' (alive) and any other rune (dead)
type Pattern struct {
	Name      string    `json:"name"`
	Placement Placement `json:"placement"`
	Rows      []string  `json:"rows"`
}

//Size returns the largest column index and the largest row index of the shape
func (p Pattern) Size() (maxX int, maxY int) {
	for _, row := range p.Rows {
		if l := len([]rune(row)) - 1; l > maxX {
			maxX = l
		}
	}
	if len(p.Rows) > 0 {
		maxY = len(p.Rows) - 1
	}
	return
}

//Offset returns the displacement placing the shape inside a viewW x viewH view
func (p Pattern) Offset(viewW int, viewH int) (ox int, oy int) {
	maxX, maxY := p.Size()
	switch p.Placement {
	case PlacementTopLeft:
		return edgeMargin, edgeMargin
	case PlacementLeft:
		return edgeMargin, (viewH - maxY) / 2
	default:
		return (viewW - maxX) / 2, (viewH - maxY) / 2
	}
}

//Cells returns the live cells of the shape with its top-left corner at 0,0
func (p Pattern) Cells() []colony.Cell {
	var cells []colony.Cell
	for y, row := range p.Rows {
		for x, r := range []rune(row) {
			if r == liveRune {
				cells = append(cells, colony.Cell{X: int32(x), Y: int32(y)})
			}
		}
	}
	return cells
}

//Seed adds the live cells of the pattern to the colony
func Seed(c *colony.Colony, p Pattern) {
	for _, cell := range p.Cells() {
		c.AddCell(cell.X, cell.Y)
	}
}
