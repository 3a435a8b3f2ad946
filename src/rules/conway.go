package rules

/*
ApplyConwayRules decides whether a cell is alive in the next generation.

Conway's Game of Life rules: (alive && neighbours == 2) || neighbours == 3
Any count above 3 is treated the same as 4.
*/
func ApplyConwayRules(neighbours int, alive bool) bool {
	return (alive && neighbours == 2) || neighbours == 3
}
