package pattern

import (
	"golang.org/x/exp/rand"

	"colonylife/src/colony"
)

//Scatter adds random live cells inside the w x h window at 0,0
//each cell is alive with the given probability
func Scatter(c *colony.Colony, w int, h int, density float64, rng *rand.Rand) {
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if rng.Float64() < density {
				c.AddCell(int32(x), int32(y))
			}
		}
	}
}

//NewRand returns a generator seeded with seed
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
