package main

import (
	"context"
	"encoding/binary"
	"fmt"
	"log/slog"
	"math"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/motion/settings"
	"github.com/oomph-ac/motion/transition"
	"github.com/oomph-ac/motion/worker"
	"github.com/oomph-ac/motion/world"
	"github.com/sirupsen/logrus"
	"github.com/zeebo/xxh3"
)

// object is a simulated object together with the collision state it carries between ticks.
type object struct {
	spec ObjectSpec

	pos   transition.Position
	cell  transition.Cell
	vel   mgl32.Vec3
	state transition.ObjectState

	contact        *transition.Contact
	lastKnown      *transition.Contact
	sliding        *mgl32.Vec3
	stationaryFall int
}

// StopVelocity ...
func (o *object) StopVelocity() {
	o.vel = mgl32.Vec3{}
}

func (o *object) spheres() []transition.Sphere {
	r := o.spec.Radius
	return []transition.Sphere{{Center: mgl32.Vec3{0, 0, r}, Radius: r}}
}

func (o *object) request() transition.Request {
	return transition.Request{
		Object:                o,
		State:                 o.state,
		StepUpHeight:          o.spec.StepUpHeight,
		StepDownHeight:        o.spec.StepDownHeight,
		Spheres:               o.spheres(),
		Cell:                  o.cell,
		Begin:                 o.pos,
		ContactPlane:          o.contact,
		LastKnownContactPlane: o.lastKnown,
		SlidingNormal:         o.sliding,
		StationaryFall:        o.stationaryFall,
	}
}

func (o *object) apply(res transition.Result) {
	o.pos, o.cell = res.Position, res.Cell
	o.state = res.State
	o.contact, o.lastKnown = res.ContactPlane, res.LastKnownContactPlane
	o.sliding = res.SlidingNormal
	o.stationaryFall = res.StationaryFall
	if o.state.Has(transition.InContact) && o.vel.Z() < 0 {
		o.vel[2] = 0
	}
}

// Simulation moves the objects of a scenario through its world tick by tick.
type Simulation struct {
	scenario Scenario
	world    *world.World
	manager  *worker.Manager
	objects  []*object
	log      *logrus.Logger
	tick     int
}

// NewSimulation builds the world of s and places its objects.
func NewSimulation(ctx context.Context, s Scenario, set settings.Settings, log *logrus.Logger, slogger *slog.Logger) (*Simulation, error) {
	w := world.New(s.CellSize, &slogger)
	for _, b := range s.Boxes {
		w.AddBox(b.Box())
	}

	sim := &Simulation{
		scenario: s,
		world:    w,
		manager:  worker.NewManager(worker.Options{Settings: &set, Logger: slogger}),
		log:      log,
	}
	region, err := sim.manager.AddRegion(s.Name, w, w)
	if err != nil {
		return nil, err
	}

	for _, spec := range s.Objects {
		pos, cell, ok := w.Position(vec(spec.Position))
		if !ok {
			_ = sim.Close()
			return nil, fmt.Errorf("object %s: no cell at %v", spec.Name, spec.Position)
		}
		o := &object{spec: spec, pos: pos, cell: cell, vel: vec(spec.Velocity)}
		if spec.Walking {
			o.state |= transition.InContact | transition.OnWalkable
		}
		if spec.EdgeSlide {
			o.state |= transition.EdgeSlide
		}
		if spec.Gravity {
			o.state |= transition.Gravity
		}

		if spec.Place {
			req := o.request()
			req.Mode = transition.ModePlacement
			req.End = pos
			req.AllowSliding = true
			res, err := region.Resolve(ctx, req)
			if err != nil {
				_ = sim.Close()
				return nil, fmt.Errorf("object %s: place: %w", spec.Name, err)
			}
			if !res.OK {
				log.Warnf("object %s could not be placed at %v", spec.Name, spec.Position)
			}
			o.apply(res)
		}
		sim.objects = append(sim.objects, o)
	}
	return sim, nil
}

// Tick advances every object by one tick.
func (s *Simulation) Tick(ctx context.Context) error {
	dt := 1 / s.scenario.TickRate
	reqs := make([]transition.Request, len(s.objects))
	for i, o := range s.objects {
		if o.spec.Gravity && !o.state.Has(transition.OnWalkable) {
			o.vel[2] -= s.scenario.Gravity * dt
		}
		req := o.request()
		req.End = o.pos
		req.End.Frame.Origin = o.pos.Frame.Origin.Add(o.vel.Mul(dt))
		reqs[i] = req
	}

	results, err := s.manager.Tick(ctx, map[string][]transition.Request{s.scenario.Name: reqs})
	if err != nil {
		return fmt.Errorf("tick %d: %w", s.tick, err)
	}
	for i, res := range results[s.scenario.Name] {
		o := s.objects[i]
		o.apply(res)
		s.log.Debug(OrderedMapToString(*s.report(o, res)))
	}
	s.tick++
	return nil
}

func (s *Simulation) report(o *object, res transition.Result) *orderedmap.OrderedMap[string, any] {
	data := orderedmap.NewOrderedMap[string, any]()
	data.Set("tick", s.tick)
	data.Set("object", o.spec.Name)
	data.Set("ok", res.OK)
	data.Set("pos", s.world.WorldPosition(o.pos))
	data.Set("cell", fmt.Sprintf("%08x", o.pos.CellID))
	data.Set("walkable", o.state.Has(transition.OnWalkable))
	if res.CollisionNormal != nil {
		data.Set("normal", *res.CollisionNormal)
	}
	if res.StationaryFall > 0 {
		data.Set("stationary", res.StationaryFall)
	}
	return data
}

// Run runs every tick of the scenario.
func (s *Simulation) Run(ctx context.Context) error {
	for s.tick < s.scenario.Ticks {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.Tick(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Positions returns the world positions of all objects.
func (s *Simulation) Positions() map[string]mgl32.Vec3 {
	m := make(map[string]mgl32.Vec3, len(s.objects))
	for _, o := range s.objects {
		m[o.spec.Name] = s.world.WorldPosition(o.pos)
	}
	return m
}

// Digest hashes the final poses of all objects, so that two runs of the same scenario can be
// compared.
func (s *Simulation) Digest() uint64 {
	h := xxh3.New()
	var buf [4]byte
	for _, o := range s.objects {
		_, _ = h.Write([]byte(o.spec.Name))
		binary.LittleEndian.PutUint32(buf[:], o.pos.CellID)
		_, _ = h.Write(buf[:])
		for _, f := range o.pos.Frame.Origin {
			binary.LittleEndian.PutUint32(buf[:], math.Float32bits(f))
			_, _ = h.Write(buf[:])
		}
	}
	return h.Sum64()
}

// Close stops the regions of the simulation.
func (s *Simulation) Close() error {
	return s.manager.Close()
}
