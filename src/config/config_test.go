package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"colonylife/src/pattern"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	name := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(name, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return name
}

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestLoadConfig(t *testing.T) {
	name := writeFile(t, `{
		"width": 40,
		"interval": "250ms",
		"pattern": "Glider",
		"patterns": [{"name": "Block", "placement": "left", "rows": ["OO", "OO"]}]
	}`)
	c, err := LoadConfig(name)
	if err != nil {
		t.Fatal(err)
	}
	if c.Width != 40 || c.Height != DefaultConfig().Height {
		t.Errorf("size = %vx%v", c.Width, c.Height)
	}
	if time.Duration(c.Interval) != 250*time.Millisecond {
		t.Errorf("interval = %v", time.Duration(c.Interval))
	}
	if c.Pattern != "Glider" {
		t.Errorf("pattern = %q", c.Pattern)
	}
	r, err := c.Registry()
	if err != nil {
		t.Fatal(err)
	}
	if b, ok := r.Get("Block"); !ok || b.Placement != pattern.PlacementLeft {
		t.Errorf("block = %+v, %v", b, ok)
	}
}

func TestLoadConfigNanoseconds(t *testing.T) {
	c, err := LoadConfig(writeFile(t, `{"interval": 5000000}`))
	if err != nil {
		t.Fatal(err)
	}
	if time.Duration(c.Interval) != 5*time.Millisecond {
		t.Errorf("interval = %v", time.Duration(c.Interval))
	}
}

func TestLoadConfigErrors(t *testing.T) {
	for _, content := range []string{`{`, `{"interval": "soon"}`, `{"patterns": [{"name": "a", "placement": "up"}]}`} {
		if _, err := LoadConfig(writeFile(t, content)); err == nil {
			t.Errorf("%s: expected an error", content)
		}
	}
}

func TestLoadOrDefault(t *testing.T) {
	c, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatal(err)
	}
	if c.Width != DefaultConfig().Width {
		t.Errorf("width = %v", c.Width)
	}
	if _, err := LoadOrDefault(writeFile(t, `[]`)); err == nil {
		t.Error("malformed file accepted")
	}
}

func TestRegistryDuplicate(t *testing.T) {
	c := DefaultConfig()
	c.Patterns = []pattern.Pattern{{Name: "Glider"}}
	if _, err := c.Registry(); err == nil {
		t.Error("duplicate of a built-in pattern accepted")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{"width", func(c *Config) { c.Width = 0 }},
		{"height", func(c *Config) { c.Height = -1 }},
		{"interval", func(c *Config) { c.Interval = 0 }},
		{"max steps", func(c *Config) { c.MaxSteps = -1 }},
		{"density", func(c *Config) { c.RandomDensity = 1.5 }},
		{"threshold", func(c *Config) { c.StagnationThreshold = 0 }},
	}
	for _, tt := range tests {
		c := DefaultConfig()
		tt.modify(&c)
		if err := c.Validate(); err == nil {
			t.Errorf("%s: expected an error", tt.name)
		}
	}
}
