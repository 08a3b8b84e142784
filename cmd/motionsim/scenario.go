package main

import (
	"fmt"
	"os"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// Scenario describes the world and the objects of a simulation run.
type Scenario struct {
	Name     string  `yaml:"name"`
	CellSize float32 `yaml:"cell_size"`
	Ticks    int     `yaml:"ticks"`
	// TickRate is the amount of ticks per second.
	TickRate float32 `yaml:"tick_rate"`
	Gravity  float32 `yaml:"gravity"`

	Boxes   []BoxSpec    `yaml:"boxes"`
	Objects []ObjectSpec `yaml:"objects"`
}

// BoxSpec is a solid box in world coordinates.
type BoxSpec struct {
	Min [3]float32 `yaml:"min"`
	Max [3]float32 `yaml:"max"`
}

// ObjectSpec is a moving object and the way it moves.
type ObjectSpec struct {
	Name     string     `yaml:"name"`
	Position [3]float32 `yaml:"position"`
	Velocity [3]float32 `yaml:"velocity"`
	Radius   float32    `yaml:"radius"`

	StepUpHeight   float32 `yaml:"step_up_height"`
	StepDownHeight float32 `yaml:"step_down_height"`

	// Walking objects start on the ground and follow it.
	Walking   bool `yaml:"walking"`
	EdgeSlide bool `yaml:"edge_slide"`
	Gravity   bool `yaml:"gravity"`
	// Place runs a placement at Position before the first tick.
	Place bool `yaml:"place"`
}

// Box converts the spec into a bounding box.
func (b BoxSpec) Box() cube.BBox {
	return cube.Box(b.Min[0], b.Min[1], b.Min[2], b.Max[0], b.Max[1], b.Max[2])
}

// LoadScenario reads and parses the scenario at path.
func LoadScenario(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("scenario: read %s: %w", path, err)
	}
	s, err := ParseScenario(data)
	if err != nil {
		return Scenario{}, fmt.Errorf("scenario: %s: %w", path, err)
	}
	return s, nil
}

// ParseScenario parses a YAML scenario and fills in defaults.
func ParseScenario(data []byte) (Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Scenario{}, fmt.Errorf("parse: %w", err)
	}
	if s.Name == "" {
		s.Name = "default"
	}
	if s.Ticks <= 0 {
		s.Ticks = 20
	}
	if s.TickRate <= 0 {
		s.TickRate = 20
	}
	for i := range s.Objects {
		o := &s.Objects[i]
		if o.Name == "" {
			o.Name = fmt.Sprintf("object-%d", i)
		}
		if o.Radius <= 0 {
			return Scenario{}, fmt.Errorf("object %s: radius must be positive", o.Name)
		}
	}
	for i, b := range s.Boxes {
		if b.Min == b.Max {
			return Scenario{}, fmt.Errorf("box %d: empty box", i)
		}
	}
	return s, nil
}

func vec(v [3]float32) mgl32.Vec3 {
	return mgl32.Vec3{v[0], v[1], v[2]}
}
