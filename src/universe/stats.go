package universe

import (
	"crypto/md5"
	"encoding/binary"
	"fmt"
	"time"

	"colonylife/src/colony"
)

//historySize is how many previous generations are compared for stagnation
const historySize = 3

//Stats for performance monitoring
type Stats struct {
	GenerationsPerSecond float64
	AveragePopulation    float64
	StartTime            time.Time
	lastStep             time.Time
}

func NewStats(now time.Time) *Stats {
	return &Stats{StartTime: now, lastStep: now}
}

func (s *Stats) Update(population int, now time.Time) {
	if d := now.Sub(s.lastStep); d > 0 {
		s.GenerationsPerSecond = 1.0 / d.Seconds()
	}
	s.lastStep = now

	// Simple moving average for population
	if s.AveragePopulation == 0 {
		s.AveragePopulation = float64(population)
	} else {
		s.AveragePopulation = (s.AveragePopulation * 0.9) + (float64(population) * 0.1)
	}
}

//history keeps hashes of recent generations to detect still lifes and short oscillators
type history struct {
	hashes []string
	streak int //consecutive stagnant generations
}

func newHistory(cells colony.CellSet) *history {
	return &history{hashes: []string{hashCells(cells)}}
}

//observe records the generation and reports whether it repeats a recent one
func (h *history) observe(cells colony.CellSet) bool {
	sum := hashCells(cells)
	stagnant := false
	for _, prev := range h.hashes {
		if prev == sum {
			stagnant = true
			break
		}
	}
	h.hashes = append(h.hashes, sum)
	if len(h.hashes) > historySize {
		h.hashes = h.hashes[1:]
	}
	if stagnant {
		h.streak++
	} else {
		h.streak = 0
	}
	return stagnant
}

//hashCells returns the MD5 hash of the cell set
func hashCells(cells colony.CellSet) string {
	h := md5.New()
	var b [8]byte
	for _, c := range cells.Sorted() {
		binary.BigEndian.PutUint32(b[:4], uint32(c.X))
		binary.BigEndian.PutUint32(b[4:], uint32(c.Y))
		h.Write(b[:])
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

//boundingBoxSize returns the area of the box holding all live cells
func boundingBoxSize(cells colony.CellSet) int {
	min, max, ok := cells.Bounds()
	if !ok {
		return 0
	}
	return (int(max.X) - int(min.X) + 1) * (int(max.Y) - int(min.Y) + 1)
}
