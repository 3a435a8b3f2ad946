package universe

import (
	"math"
	"time"

	"colonylife/src/colony"
)

//Universe drives a colony: seeding, editing, stepping on a timer and reporting
type Universe interface {
	Status() Status
	Options() Options
	Frame() Frame
	StateCh() chan Status
	Patterns() []string
	Reset(name string) error
	NextPattern()
	Scatter()
	ToggleAt(col int, row int)
	Resize(w int, h int)
	RegisterViewer(v Viewer)
	Run()
	Stop()
	Step()
	Clear()
	Close()
}

//Viewer is the interface to any Viewer - the object who can display simulation data or control the engine
type Viewer interface {
	Refresh()
	Register(u Universe)
	Start()
}

//Options represents the Universe's configurable options
type Options struct {
	Width               int //view width in cells
	Height              int //view height in cells
	Interval            time.Duration
	MaxSteps            int //0 means no limit
	StopWhenStagnant    bool
	StagnationThreshold int
	RandomDensity       float64
	RandomSeed          uint64
}

//Status represents the status of the Universe at concrete moment
type Status struct {
	Generation           uint64
	Steps                int //steps since the last reset
	LiveCells            int
	RunningMode          RunningState
	IterationTime        time.Duration
	GenerationsPerSecond float64
	AveragePopulation    float64
	BoundingBoxSize      int
	Stagnant             bool
	Pattern              string
}

//Frame is a snapshot of the colony for rendering
//view position col,row shows the colony cell col-OffsetX,row-OffsetY
type Frame struct {
	Cells      colony.CellSet
	Generation uint64
	CellCount  int
	OffsetX    int
	OffsetY    int
}

//AliveAt reports whether the cell shown at view position col,row is alive
func (f Frame) AliveAt(col int, row int) bool {
	c, ok := toCell(col-f.OffsetX, row-f.OffsetY)
	return ok && f.Cells.Contains(c)
}

//The universe running status at the concrete moment
type RunningState int

//default options
const (
	DefSimulationInterval  = time.Millisecond * 100
	DefMaxSteps            = 1000
	DefWidth               = 74
	DefHeight              = 53
	DefStagnationThreshold = 5
	DefRandomDensity       = 0.15
)

const (
	RunningStateManual   RunningState = 0x0
	RunningStateRun      RunningState = 0x1
	RunningStateFinished RunningState = 0x2
)

//RandomPattern is the pattern name reported after Scatter
const RandomPattern = "Random"

var DefaultUniverseOptions = Options{
	Width:               DefWidth,
	Height:              DefHeight,
	Interval:            DefSimulationInterval,
	MaxSteps:            DefMaxSteps,
	StopWhenStagnant:    true,
	StagnationThreshold: DefStagnationThreshold,
	RandomDensity:       DefRandomDensity,
	RandomSeed:          1,
}

func (s RunningState) String() string {
	switch s {
	case RunningStateManual:
		return "waiting"
	case RunningStateRun:
		return "running"
	case RunningStateFinished:
		return "finished"
	}
	return "unknown"
}

//toCell converts view arithmetic back to colony coordinates
func toCell(x int, y int) (colony.Cell, bool) {
	if x < math.MinInt32 || x > math.MaxInt32 || y < math.MinInt32 || y > math.MaxInt32 {
		return colony.Cell{}, false
	}
	return colony.Cell{X: int32(x), Y: int32(y)}, true
}
