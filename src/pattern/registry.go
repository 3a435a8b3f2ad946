package pattern

import "github.com/pkg/errors"

//DefaultPattern is the pattern shown on start
const DefaultPattern = "F-pentomino"

//Registry is an immutable set of named patterns
type Registry struct {
	names    []string
	patterns map[string]Pattern
}

//NewRegistry builds the registry, names must be unique and not empty
func NewRegistry(ps ...Pattern) (*Registry, error) {
	return (&Registry{}).With(ps...)
}

//With returns a new registry holding r's patterns followed by ps
func (r *Registry) With(ps ...Pattern) (*Registry, error) {
	n := &Registry{
		names:    make([]string, 0, len(r.names)+len(ps)),
		patterns: make(map[string]Pattern, len(r.names)+len(ps)),
	}
	for _, name := range r.names {
		n.names = append(n.names, name)
		n.patterns[name] = r.patterns[name]
	}
	for _, p := range ps {
		if p.Name == "" {
			return nil, errors.New("[Registry] pattern without a name")
		}
		if _, ok := n.patterns[p.Name]; ok {
			return nil, errors.Errorf("[Registry] duplicate pattern %q", p.Name)
		}
		if p.Placement == "" {
			p.Placement = PlacementCenter
		}
		if !p.Placement.Valid() {
			return nil, errors.Errorf("[Registry] pattern %q: unknown placement %q", p.Name, p.Placement)
		}
		p.Rows = append([]string(nil), p.Rows...)
		n.names = append(n.names, p.Name)
		n.patterns[p.Name] = p
	}
	return n, nil
}

//Get returns the pattern by name
func (r *Registry) Get(name string) (Pattern, bool) {
	p, ok := r.patterns[name]
	if !ok {
		return Pattern{}, false
	}
	p.Rows = append([]string(nil), p.Rows...)
	return p, true
}

//Names returns the pattern names in registration order
func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}

//Next returns the name following name, wrapping around
func (r *Registry) Next(name string) string {
	if len(r.names) == 0 {
		return ""
	}
	for i, n := range r.names {
		if n == name {
			return r.names[(i+1)%len(r.names)]
		}
	}
	return r.names[0]
}

//Default returns the built-in patterns
func Default() *Registry {
	r, err := NewRegistry(builtin...)
	if err != nil {
		panic(err)
	}
	return r
}

var builtin = []Pattern{
	{"Empty", PlacementCenter, nil},
	{"F-pentomino", PlacementCenter, []string{
		".OO",
		"OO.",
		".O.",
	}},
	{"Acorn", PlacementCenter, []string{
		".O.....",
		"...O...",
		"OO..OOO",
	}},
	{"Bunnies", PlacementCenter, []string{
		"O.....O.",
		"..O...O.",
		"..O..O.O",
		".O.O....",
	}},
	{"Lidka", PlacementCenter, []string{
		".O.......",
		"O.O......",
		".O.......",
		".........",
		".........",
		".........",
		".........",
		".........",
		".........",
		".........",
		"........O",
		"......O.O",
		".....OO.O",
		".........",
		"....OOO..",
	}},
	{"Glider", PlacementTopLeft, []string{
		".O.",
		"..O",
		"OOO",
	}},
	{"Lightweight Spaceship", PlacementLeft, []string{
		"O..O.",
		"....O",
		"O...O",
		".OOOO",
	}},
	{"Gosper Glider Gun", PlacementTopLeft, []string{
		"........................O",
		"......................O.O",
		"............OO......OO............OO",
		"...........O...O....OO............OO",
		"OO........O.....O...OO",
		"OO........O...O.OO....O.O",
		"..........O.....O.......O",
		"...........O...O",
		"............OO",
	}},
	{"Puffer Train", PlacementLeft, []string{
		"...O.",
		"....O",
		"O...O",
		".OOOO",
		".....",
		".....",
		".....",
		"O....",
		".OO..",
		"..O..",
		"..O..",
		".O...",
		".....",
		".....",
		"...O.",
		"....O",
		"O...O",
		".OOOO",
	}},
}
