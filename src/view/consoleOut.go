package view

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/logrusorgru/aurora"

	"colonylife/src/universe"
)

//progressEvery is how often (in steps) ConsoleOut reports progress
const progressEvery = 10

//ConsoleOut prints the simulation progress for non-interactive runs
type ConsoleOut struct {
	u         universe.Universe
	w         io.Writer
	session   string
	startTime time.Time
	lastSteps int
}

func NewConsoleOut() *ConsoleOut {
	return NewConsoleOutTo(os.Stdout)
}

func NewConsoleOutTo(w io.Writer) *ConsoleOut {
	return &ConsoleOut{w: w, session: uuid.New().String(), lastSteps: -1}
}

//Session returns the identifier printed with every report
func (c *ConsoleOut) Session() string {
	return c.session
}

func (c *ConsoleOut) Refresh() {
	st := c.u.Status()
	if st.RunningMode == universe.RunningStateFinished {
		c.Summary("Finished", st)
	} else if st.RunningMode == universe.RunningStateRun {
		if st.Steps != c.lastSteps && st.Steps > 0 && st.Steps%progressEvery == 0 {
			c.lastSteps = st.Steps
			fmt.Fprintf(c.w, "  Generation: %v, Cells: %v\n", st.Generation, st.LiveCells)
		}
	}
}

func (c *ConsoleOut) Register(u universe.Universe) {
	c.u = u
	o := c.u.Options()
	fmt.Fprintf(c.w, "Session %v\n", c.session)
	fmt.Fprintln(c.w, "Running configuration:")
	c.printHashData(map[string]interface{}{
		"View":               fmt.Sprintf("%v x %v", o.Width, o.Height),
		"Interval":           o.Interval,
		"Max steps":          o.MaxSteps,
		"Stop when stagnant": o.StopWhenStagnant,
	})
}

func (c *ConsoleOut) Start() {
	c.startTime = time.Now()
	fmt.Fprintln(c.w, "\nSimulation started...")
}

//Summary prints the final report under the given title
func (c *ConsoleOut) Summary(title string, st universe.Status) {
	totalTime := time.Since(c.startTime).Round(time.Millisecond)
	resultData := map[string]interface{}{
		"Pattern":        st.Pattern,
		"Generation":     st.Generation,
		"Steps":          st.Steps,
		"Total time":     totalTime,
		"Cells":          st.LiveCells,
		"Stagnant":       st.Stagnant,
		"Avg population": fmt.Sprintf("%.1f", st.AveragePopulation),
	}
	fmt.Fprintf(c.w, "\n%v:\n", aurora.Bold(title))
	c.printHashData(resultData)
}

func (c *ConsoleOut) printHashData(d map[string]interface{}) {
	propNames := make([]string, 0, len(d))
	for k := range d {
		propNames = append(propNames, k)
	}
	sort.Strings(propNames)
	for _, propName := range propNames {
		fmt.Fprintf(c.w, "  %s: %v\n", propName, d[propName])
	}
}
