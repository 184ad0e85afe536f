// Package layout loads demo worlds from YAML files checked against an
// embedded JSON Schema
package layout

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/transit-overlay/core"
	"github.com/lixenwraith/transit-overlay/item"
	"github.com/lixenwraith/transit-overlay/sim"
	"github.com/lixenwraith/transit-overlay/vmath"
)

//go:embed schema.json
var schemaJSON []byte

//go:embed default.yaml
var defaultYAML []byte

const (
	schemaURL       = "layout.schema.json"
	DefaultTileSize = 8.0
)

// ErrInvalidLayout wraps every schema and semantic failure
var ErrInvalidLayout = errors.New("invalid layout")

// Layout is the decoded layout document
type Layout struct {
	Name      string     `yaml:"name"`
	Width     int        `yaml:"width"`
	Height    int        `yaml:"height"`
	TileSize  float64    `yaml:"tile_size"`
	Items     []ItemSpec `yaml:"items"`
	Buildings []Building `yaml:"buildings"`
}

type ItemSpec struct {
	Name  string `yaml:"name"`
	Glyph string `yaml:"glyph"`
	Color string `yaml:"color"`
}

type Building struct {
	Block     string  `yaml:"block"`
	At        []int   `yaml:"at"`
	Dir       string  `yaml:"dir"`
	Link      []int   `yaml:"link"`
	Item      string  `yaml:"item"`
	Period    float64 `yaml:"period"`
	Speed     float64 `yaml:"speed"`
	TimeScale float64 `yaml:"time_scale"`
	Capacity  int     `yaml:"capacity"`
}

var dirNames = map[string]int{
	"":      vmath.DirRight,
	"right": vmath.DirRight,
	"up":    vmath.DirUp,
	"left":  vmath.DirLeft,
	"down":  vmath.DirDown,
}

var schema = mustCompile()

func mustCompile() *jsonschema.Schema {
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
		panic(fmt.Sprintf("layout schema: %v", err))
	}
	return c.MustCompile(schemaURL)
}

// Load reads a layout file; an empty path selects the built-in layout
func Load(path string) (*sim.World, *item.Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Parse(defaultYAML)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	w, c, err := Parse(b)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return w, c, nil
}

// Default returns the built-in layout source
func Default() []byte { return defaultYAML }

// Parse validates and builds a layout document
func Parse(data []byte) (*sim.World, *item.Catalog, error) {
	l, err := Decode(data)
	if err != nil {
		return nil, nil, err
	}
	return l.Build()
}

// Decode validates data against the schema and decodes it
func Decode(data []byte) (Layout, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Layout{}, fmt.Errorf("%w: %v", ErrInvalidLayout, err)
	}
	// The validator wants JSON-shaped values; round-trip the YAML tree
	doc, err := json.Marshal(raw)
	if err != nil {
		return Layout{}, fmt.Errorf("%w: %v", ErrInvalidLayout, err)
	}
	dec := json.NewDecoder(bytes.NewReader(doc))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return Layout{}, fmt.Errorf("%w: %v", ErrInvalidLayout, err)
	}
	if err := schema.Validate(v); err != nil {
		return Layout{}, fmt.Errorf("%w: %v", ErrInvalidLayout, err)
	}

	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("%w: %v", ErrInvalidLayout, err)
	}
	if l.TileSize == 0 {
		l.TileSize = DefaultTileSize
	}
	return l, nil
}

// Build creates the world and item catalog described by l
func (l Layout) Build() (*sim.World, *item.Catalog, error) {
	cat := item.NewCatalog()
	for _, it := range l.Items {
		color, err := core.ParseHex(it.Color)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: item %q: %v", ErrInvalidLayout, it.Name, err)
		}
		glyph, _ := utf8.DecodeRuneInString(it.Glyph)
		if _, err := cat.Add(it.Name, glyph, color); err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrInvalidLayout, err)
		}
	}

	w := sim.NewWorld(l.Width, l.Height, l.TileSize)
	for i, spec := range l.Buildings {
		b, err := l.building(spec, cat)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: building %d: %v", ErrInvalidLayout, i, err)
		}
		if err := w.Place(b); err != nil {
			return nil, nil, fmt.Errorf("%w: building %d: %v", ErrInvalidLayout, i, err)
		}
	}
	return w, cat, nil
}

func (l Layout) building(spec Building, cat *item.Catalog) (*sim.Building, error) {
	block, ok := sim.ParseBlock(spec.Block)
	if !ok {
		return nil, fmt.Errorf("unknown block %q", spec.Block)
	}
	dir, ok := dirNames[spec.Dir]
	if !ok {
		return nil, fmt.Errorf("unknown dir %q", spec.Dir)
	}
	b := sim.NewBuilding(block, core.Point{X: spec.At[0], Y: spec.At[1]}, dir)

	if len(spec.Link) == 2 {
		if block != sim.BlockBufferedBridge {
			return nil, fmt.Errorf("%s at %v cannot link", spec.Block, spec.At)
		}
		b.Link, b.HasLink = core.Point{X: spec.Link[0], Y: spec.Link[1]}, true
	}
	if block == sim.BlockSource {
		id, ok := cat.Lookup(spec.Item)
		if !ok {
			return nil, fmt.Errorf("source at %v: unknown item %q", spec.At, spec.Item)
		}
		b.Item = id
	}
	if spec.Period > 0 {
		b.Period = spec.Period
	}
	if spec.Speed > 0 {
		b.Speed = spec.Speed
	}
	if spec.TimeScale > 0 {
		b.TimeScale = spec.TimeScale
	}
	if spec.Capacity > 0 {
		b.Capacity = spec.Capacity
	}
	return b, nil
}
