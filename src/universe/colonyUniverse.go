package universe

import (
	"sync"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/exp/rand"

	"colonylife/src/colony"
	"colonylife/src/pattern"
)

//ColonyUniverse implements Universe on top of a sparse colony
//all commands are executed one by one by the main loop goroutine
type ColonyUniverse struct {
	options  Options
	patterns *pattern.Registry
	rng      *rand.Rand

	//mu guards the colony and everything describing it, readers take snapshots
	mu      sync.Mutex
	colony  *colony.Colony
	status  Status
	ox, oy  int
	stats   *Stats
	history *history
	views   []Viewer

	stateCh   chan Status
	controlCh chan func()
	closeCh   chan struct{}
	doneCh    chan struct{}
	closeOnce sync.Once
	ticker    *time.Ticker //owned by the main loop
	viewW     int          //owned by the main loop
	viewH     int          //owned by the main loop
	edited    bool         //owned by the main loop, set by ToggleAt until the next replace
}

//NewColonyUniverse creates the universe with an empty colony and starts its main loop
//stateCh is optional, when set it receives the Status after every command; the consumer must drain it
func NewColonyUniverse(o *Options, patterns *pattern.Registry, stateCh chan Status) *ColonyUniverse {
	if o == nil {
		o = &DefaultUniverseOptions
	}
	if patterns == nil {
		patterns = pattern.Default()
	}
	u := ColonyUniverse{
		options:   *o,
		patterns:  patterns,
		rng:       pattern.NewRand(o.RandomSeed),
		stateCh:   stateCh,
		controlCh: make(chan func(), 1),
		closeCh:   make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
	if u.options.Interval <= 0 {
		u.options.Interval = DefSimulationInterval
	}
	if u.options.StagnationThreshold < 1 {
		u.options.StagnationThreshold = 1
	}
	u.viewW, u.viewH = u.options.Width, u.options.Height
	u.replace(colony.New(), u.ox, u.oy, "")
	go u.mainLoop()
	return &u
}

//Status returns current universe status represented by Status struct
func (u *ColonyUniverse) Status() Status {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.status
}

//Options returns current universe configuration represented by Options struct
func (u *ColonyUniverse) Options() Options {
	return u.options
}

//Frame returns a snapshot of the colony and the view offset
func (u *ColonyUniverse) Frame() Frame {
	u.mu.Lock()
	defer u.mu.Unlock()
	return Frame{
		Cells:      u.colony.Cells(),
		Generation: u.colony.Generation(),
		CellCount:  u.colony.CellCount(),
		OffsetX:    u.ox,
		OffsetY:    u.oy,
	}
}

//StateCh returns the channel with the universe's status updates
func (u *ColonyUniverse) StateCh() chan Status {
	return u.stateCh
}

//Patterns returns the names of the patterns Reset accepts
func (u *ColonyUniverse) Patterns() []string {
	return u.patterns.Names()
}

//Reset replaces the colony with the named pattern placed inside the view, returns immediately
func (u *ColonyUniverse) Reset(name string) error {
	p, ok := u.patterns.Get(name)
	if !ok {
		return errors.Errorf("[Reset] unknown pattern %q", name)
	}
	u.submit(func() { u.reset(p) })
	return nil
}

//NextPattern resets to the pattern following the current one, returns immediately
func (u *ColonyUniverse) NextPattern() {
	u.submit(func() {
		name := u.Status().Pattern
		p, ok := u.patterns.Get(u.patterns.Next(name))
		if !ok {
			return
		}
		u.reset(p)
	})
}

//Scatter replaces the colony with random cells filling the view, returns immediately
func (u *ColonyUniverse) Scatter() {
	u.submit(u.scatter)
}

//ToggleAt flips the cell shown at view position col,row, returns immediately
func (u *ColonyUniverse) ToggleAt(col int, row int) {
	u.submit(func() { u.toggleAt(col, row) })
}

//Resize sets the view size used to place patterns, returns immediately
//a pattern that has not been stepped or edited yet is placed again
func (u *ColonyUniverse) Resize(w int, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	u.submit(func() { u.resize(w, h) })
}

//RegisterViewer registers the viewer - the universe will call the viewer when the state is changed
func (u *ColonyUniverse) RegisterViewer(v Viewer) {
	u.mu.Lock()
	u.views = append(u.views, v)
	u.mu.Unlock()
	v.Register(u)
}

//Run starts the universe simulation, returns immediately
func (u *ColonyUniverse) Run() {
	u.submit(u.run)
}

//Stop stops the universe simulation, returns immediately
func (u *ColonyUniverse) Stop() {
	u.submit(u.stop)
}

//Step do one simulation step, returns immediately
func (u *ColonyUniverse) Step() {
	u.submit(u.step)
}

//Clear replaces the colony with an empty one and stops the simulation, returns immediately
func (u *ColonyUniverse) Clear() {
	u.submit(u.clear)
}

//Close stops the main loop and waits for it to exit, the universe can not be used afterwards
func (u *ColonyUniverse) Close() {
	u.closeOnce.Do(func() { close(u.closeCh) })
	<-u.doneCh
}

//submit hands the command to the main loop, commands sent after Close are dropped
func (u *ColonyUniverse) submit(cmd func()) {
	select {
	case u.controlCh <- cmd:
	case <-u.doneCh:
	}
}

//mainLoop - the main cycle, should start as a goroutine
//waits for command or timer tick and executes
func (u *ColonyUniverse) mainLoop() {
	defer close(u.doneCh)
	defer u.stopTicker()
	for {
		select {
		case cmd := <-u.controlCh:
			cmd()
		case <-u.tick():
			u.step()
		case <-u.closeCh:
			return
		}
	}
}

func (u *ColonyUniverse) tick() <-chan time.Time {
	if u.ticker == nil {
		return nil
	}
	return u.ticker.C
}

func (u *ColonyUniverse) stopTicker() {
	if u.ticker != nil {
		u.ticker.Stop()
		u.ticker = nil
	}
}

//replace installs a new colony and resets all counters
func (u *ColonyUniverse) replace(c *colony.Colony, ox int, oy int, name string) {
	u.edited = false
	u.mu.Lock()
	defer u.mu.Unlock()
	cells := c.Cells()
	u.colony = c
	u.ox, u.oy = ox, oy
	u.stats = NewStats(time.Now())
	u.history = newHistory(cells)
	u.status = Status{
		Generation:      c.Generation(),
		LiveCells:       c.CellCount(),
		RunningMode:     RunningStateManual,
		BoundingBoxSize: boundingBoxSize(cells),
		Pattern:         name,
	}
}

func (u *ColonyUniverse) reset(p pattern.Pattern) {
	u.stopTicker()
	c := colony.New()
	pattern.Seed(c, p)
	ox, oy := p.Offset(u.viewW, u.viewH)
	u.replace(c, ox, oy, p.Name)
	u.changed()
}

func (u *ColonyUniverse) scatter() {
	u.stopTicker()
	c := colony.New()
	pattern.Scatter(c, u.viewW, u.viewH, u.options.RandomDensity, u.rng)
	u.replace(c, 0, 0, RandomPattern)
	u.changed()
}

//clear keeps the view offset and the pattern name so the next reset can reuse them
func (u *ColonyUniverse) clear() {
	u.stopTicker()
	st := u.Status()
	u.mu.Lock()
	ox, oy := u.ox, u.oy
	u.mu.Unlock()
	u.replace(colony.New(), ox, oy, st.Pattern)
	u.changed()
}

func (u *ColonyUniverse) toggleAt(col int, row int) {
	u.mu.Lock()
	c, ok := toCell(col-u.ox, row-u.oy)
	if !ok {
		u.mu.Unlock()
		return
	}
	u.colony.Toggle(c.X, c.Y)
	cells := u.colony.Cells()
	u.history = newHistory(cells)
	u.edited = true
	//an edited colony gets a fresh MaxSteps budget
	u.status.Steps = 0
	u.status.LiveCells = u.colony.CellCount()
	u.status.BoundingBoxSize = boundingBoxSize(cells)
	u.status.Stagnant = false
	u.mu.Unlock()
	u.changed()
}

func (u *ColonyUniverse) resize(w int, h int) {
	u.viewW, u.viewH = w, h
	st := u.Status()
	if !u.edited && st.Steps == 0 && st.Pattern != RandomPattern {
		if p, ok := u.patterns.Get(st.Pattern); ok {
			ox, oy := p.Offset(w, h)
			u.mu.Lock()
			u.ox, u.oy = ox, oy
			u.mu.Unlock()
		}
	}
	u.changed()
}

//run starts the universe simulation
//simulation will stop on Stop() calling or when the boundary conditions are reached
func (u *ColonyUniverse) run() {
	if u.ticker != nil {
		return
	}
	u.mu.Lock()
	if u.finished() {
		u.status.RunningMode = RunningStateFinished
	} else {
		u.status.RunningMode = RunningStateRun
		u.stats.lastStep = time.Now()
		u.ticker = time.NewTicker(u.options.Interval)
	}
	u.mu.Unlock()
	u.changed()
}

//stop stops the universe running cycle
func (u *ColonyUniverse) stop() {
	if u.ticker == nil {
		return
	}
	u.stopTicker()
	u.mu.Lock()
	u.status.RunningMode = RunningStateManual
	u.mu.Unlock()
	u.changed()
}

//step advances the colony by one generation and updates all related metrics
func (u *ColonyUniverse) step() {
	u.mu.Lock()
	start := time.Now()
	u.colony.Advance()
	u.status.IterationTime = time.Since(start)

	cells := u.colony.Cells()
	u.status.Generation = u.colony.Generation()
	u.status.Steps++
	u.status.LiveCells = u.colony.CellCount()
	u.status.BoundingBoxSize = boundingBoxSize(cells)
	u.status.Stagnant = u.history.observe(cells)
	u.stats.Update(u.status.LiveCells, time.Now())
	u.status.GenerationsPerSecond = u.stats.GenerationsPerSecond
	u.status.AveragePopulation = u.stats.AveragePopulation

	finished := u.finished()
	if finished {
		u.status.RunningMode = RunningStateFinished
	}
	u.mu.Unlock()

	if finished {
		u.stopTicker()
	}
	u.changed()
}

//finished checks the boundary conditions, u.mu must be held
func (u *ColonyUniverse) finished() bool {
	switch {
	case u.options.MaxSteps > 0 && u.status.Steps >= u.options.MaxSteps:
		return true
	case u.status.LiveCells == 0:
		return true
	case u.options.StopWhenStagnant && u.history.streak >= u.options.StagnationThreshold:
		return true
	}
	return false
}

//changed publishes the status and refreshes the views
func (u *ColonyUniverse) changed() {
	if u.stateCh != nil {
		st := u.Status()
		select {
		case u.stateCh <- st:
		case <-u.closeCh:
		}
	}
	u.refreshView()
}

//refreshView calls Refresh event for all registered views
func (u *ColonyUniverse) refreshView() {
	u.mu.Lock()
	views := append([]Viewer(nil), u.views...)
	u.mu.Unlock()
	for _, v := range views {
		v.Refresh()
	}
}
