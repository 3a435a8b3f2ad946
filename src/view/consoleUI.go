package view

import (
	"bytes"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/jroimartin/gocui"
	"github.com/logrusorgru/aurora"

	"colonylife/src/universe"
)

type keyBindings struct {
	key      interface{}
	name     string
	descr    string
	handler  func(v *gocui.View) error
	viewName string
}

//ConsoleUI is the interactive terminal front end: it renders the colony and edits it with the mouse
type ConsoleUI struct {
	u          universe.Universe
	g          *gocui.Gui
	k          []keyBindings
	liveFiller string
	deadFiller string
	fieldW     int
	fieldH     int
}

var (
	runningStateDescr = map[universe.RunningState]string{
		universe.RunningStateManual:   aurora.Colorize("waiting", aurora.BlueFg).String(),
		universe.RunningStateRun:      aurora.Colorize("running", aurora.CyanFg).String(),
		universe.RunningStateFinished: aurora.Colorize("finished", aurora.RedFg).String(),
	}
)

func NewViewTerminal() *ConsoleUI {

	var err error
	t := ConsoleUI{
		liveFiller: aurora.Green("█").BgBrightGreen().String(),
		deadFiller: "░",
	}

	t.g, err = gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		log.Panicln(err)
	}

	t.g.Mouse = true
	t.k = []keyBindings{
		{gocui.KeyCtrlC, "^C", "Exit", t.cmdQuit, ""},
		{'n', "N", "Next step", t.cmdNextRound, ""},
		{'r', "R", "Run", t.cmdRun, ""},
		{'s', "S", "Stop", t.cmdStop, ""},
		{'c', "C", "Clear", t.cmdClear, ""},
		{'x', "X", "Reset", t.cmdReset, ""},
		{'p', "P", "Next pattern", t.cmdNextPattern, ""},
		{'w', "W", "Settle with random", t.cmdSettleWithRandom, ""},
		{gocui.MouseLeft, "MOUSE", "Toggle the cell", t.cmdMouseClick, "field"},
	}
	t.g.SetManagerFunc(t.layout)

	t.initKeyBindings(t.k)

	return &t
}

func (t *ConsoleUI) initKeyBindings(k []keyBindings) {
	for _, kb := range k {
		h := kb.handler
		if err := t.g.SetKeybinding(kb.viewName, kb.key, gocui.ModNone, func(gui *gocui.Gui, view *gocui.View) error { return h(view) }); err != nil {
			log.Panicln(err)
		}
	}
}

func (t *ConsoleUI) Register(u universe.Universe) {
	t.u = u
}

func (t *ConsoleUI) Start() {
	if err := t.g.MainLoop(); err != nil && err != gocui.ErrQuit {
		log.Panicln(err)
	}
	t.g.Close()
}

func (t *ConsoleUI) Refresh() {
	t.renderField()
	t.renderStatus()
}

func (t *ConsoleUI) renderField() {
	f := t.u.Frame()
	t.g.Update(func(g *gocui.Gui) error {
		return drawField(g, f, t.liveFiller, t.deadFiller)
	})
}

//viewFinder looks up a pane by name, implemented by *gocui.Gui
type viewFinder interface {
	View(name string) (*gocui.View, error)
}

//drawField draws the frame into the field pane
//the pane is deleted while the terminal is too small, then there is nothing to draw
func drawField(g viewFinder, f universe.Frame, live string, dead string) error {
	v, e := g.View("field")
	if e != nil || v == nil {
		return nil
	}
	v.Clear()
	maxW, maxH := v.Size()
	_, _ = fmt.Fprint(v, renderRows(f, maxW, maxH, live, dead))
	return nil
}

//renderRows draws the w x h window of the frame, one rune per cell
func renderRows(f universe.Frame, w int, h int, live string, dead string) string {
	var b bytes.Buffer
	for row := 0; row < h; row++ {
		if row != 0 {
			b.WriteByte('\n')
		}
		for col := 0; col < w; col++ {
			if f.AliveAt(col, row) {
				b.WriteString(live)
			} else {
				b.WriteString(dead)
			}
		}
	}
	return b.String()
}

//resizeField tells the universe the size of the field pane, placements are computed against it
func (t *ConsoleUI) resizeField(w int, h int) {
	if w == t.fieldW && h == t.fieldH {
		return
	}
	t.fieldW, t.fieldH = w, h
	t.u.Resize(w, h)
}

func (t *ConsoleUI) renderStatus() {
	s := t.u.Status()
	t.g.Update(func(g *gocui.Gui) error {
		if v, e := t.g.View("status"); e == nil {
			v.Clear()
			_, _ = fmt.Fprintln(v, t.renderProp("Generation", "%v", s.Generation))
			_, _ = fmt.Fprintln(v, t.renderProp("Cells", "%v", s.LiveCells))
			_, _ = fmt.Fprintln(v, t.renderProp("Pattern", "%v", s.Pattern))
			_, _ = fmt.Fprintln(v, t.renderProp("Steps", "%v", s.Steps))
			_, _ = fmt.Fprintln(v, t.renderProp("Evaluation time", "%v", s.IterationTime.Round(time.Microsecond)))
			_, _ = fmt.Fprintln(v, t.renderProp("Gen/sec", "%.1f", s.GenerationsPerSecond))
			_, _ = fmt.Fprintln(v, t.renderProp("Avg population", "%.1f", s.AveragePopulation))
			_, _ = fmt.Fprintln(v, t.renderProp("Bounding box", "%v", s.BoundingBoxSize))
			_, _ = fmt.Fprintln(v, t.renderProp("Stagnant", "%v", s.Stagnant))
			_, _ = fmt.Fprintln(v, t.renderProp("Mode", "%v", runningStateDescr[s.RunningMode]))
		}
		return nil
	})
}

func (t *ConsoleUI) renderConfiguration() {
	//it needs to call Update when calls from goroutine
	t.g.Update(func(g *gocui.Gui) error {
		c := t.u.Options()
		if v, e := g.View("configuration"); e == nil {
			v.Clear()
			_, _ = fmt.Fprintln(v, t.renderProp("View", "%v x %v", c.Width, c.Height))
			_, _ = fmt.Fprintln(v, t.renderProp("Interval", "%v", c.Interval))
			_, _ = fmt.Fprintln(v, t.renderProp("Max steps", "%v", c.MaxSteps))
			_, _ = fmt.Fprintln(v, t.renderProp("Stop when stagnant", "%v", c.StopWhenStagnant))
		}
		return nil
	})
}

func (t *ConsoleUI) renderProp(name string, valueformat string, values ...interface{}) string {
	return fmt.Sprintf(" "+aurora.Colorize(name, aurora.GreenFg).String()+": "+valueformat, values...)
}

func (t *ConsoleUI) layout(g *gocui.Gui) error {

	maxX, maxY := g.Size()
	leftColumnWidth := 32
	minWindowHeight := 24

	if maxY < minWindowHeight {
		if _, err := t.headerLayout(g, maxY, "Terminal height too small"); err != nil {
			if err != gocui.ErrUnknownView {
				return err
			}
		}
		_ = g.DeleteView("configuration")
		_ = g.DeleteView("status")
		_ = g.DeleteView("field")
		return nil

	} else {
		if _, err := t.headerLayout(g, 3, "Life - choose a shape and press run, or click on cells to change them"); err != nil {
			if err != gocui.ErrUnknownView {
				return err
			}
		}
	}

	if v, err := g.SetView("configuration", 0, 3, leftColumnWidth, 9); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Configuration"
		v.Frame = true
		t.renderConfiguration()
	}

	if v, err := g.SetView("status", 0, 10, leftColumnWidth, maxY-5); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Status"
		v.Frame = true
		t.renderStatus()
	}

	if v, err := g.SetView("field", leftColumnWidth+1, 3, maxX-1, maxY-5); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Colony"
		v.Frame = true
	}
	if v, err := g.View("field"); err == nil {
		t.resizeField(v.Size())
	}
	t.renderField()

	if v, err := g.SetView("help", -1, maxY-5, maxX, maxY-3); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Frame = false
		v.Wrap = true
		b := bytes.Buffer{}
		b.WriteString("KEYBINDINGS: ")
		for i, k := range t.k {
			if i != 0 {
				b.WriteString(", ")
			}
			b.WriteString(aurora.Green(k.name).String())
			b.WriteString(": ")
			b.WriteString(k.descr)
		}
		_, _ = fmt.Fprintln(v, b.String())
	}

	return nil
}

func (t *ConsoleUI) headerLayout(g *gocui.Gui, height int, text string) (v *gocui.View, err error) {
	maxX, _ := g.Size()
	if v, err = g.SetView("header", -1, -1, maxX+1, height); err != nil {
		if err == gocui.ErrUnknownView && v != nil {
			v.Frame = false
			v.BgColor = gocui.ColorCyan
			v.FgColor = gocui.ColorBlack
		}
	}
	if v != nil {
		v.Clear()
		pad := 0
		if maxX > len(text) {
			pad = (maxX - len(text)) / 2
		}
		_, _ = fmt.Fprintln(v, strings.Repeat("\n", height/2+1)+strings.Repeat(" ", pad)+text)
	}
	return
}

func (t *ConsoleUI) cmdQuit(_ *gocui.View) error {
	return gocui.ErrQuit
}

func (t *ConsoleUI) cmdNextRound(_ *gocui.View) error {
	t.u.Step()
	return nil
}

func (t *ConsoleUI) cmdRun(_ *gocui.View) error {
	t.u.Run()
	return nil
}

func (t *ConsoleUI) cmdStop(_ *gocui.View) error {
	t.u.Stop()
	return nil
}

func (t *ConsoleUI) cmdClear(_ *gocui.View) error {
	t.u.Clear()
	return nil
}

//cmdReset reloads the last requested pattern
func (t *ConsoleUI) cmdReset(_ *gocui.View) error {
	name := t.u.Status().Pattern
	if name == universe.RandomPattern {
		t.u.Scatter()
		return nil
	}
	if err := t.u.Reset(name); err != nil {
		//the colony was cleared or never seeded
		t.u.Clear()
	}
	return nil
}

func (t *ConsoleUI) cmdNextPattern(_ *gocui.View) error {
	t.u.NextPattern()
	return nil
}

func (t *ConsoleUI) cmdSettleWithRandom(_ *gocui.View) error {
	t.u.Scatter()
	return nil
}

func (t *ConsoleUI) cmdMouseClick(v *gocui.View) error {
	cx, cy := v.Cursor()
	t.u.ToggleAt(cx, cy)
	return nil
}
