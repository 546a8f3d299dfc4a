package model

import (
	"github.com/cpmech/gosl/chk"

	"github.com/equinor/ecalc-sub000/chart"
	"github.com/equinor/ecalc-sub000/fluid"
	"github.com/equinor/ecalc-sub000/train"
	"github.com/equinor/ecalc-sub000/turbine"
)

// Graph is the component graph the external YAML loader must produce,
// stored in maps keyed by name. Stages hold their chart.Chart directly, not
// an index into Charts; the model is referentially acyclic by construction:
// chart -> stage -> train, turbine is sibling to train, never
// back-referenced.
type Graph struct {
	Fluids   map[string]*fluid.Model
	Charts   map[string]chart.Chart
	Trains   map[string]train.Train
	Turbines map[string]turbine.Turbine
}

// NewGraph returns an empty Graph with initialized arenas.
func NewGraph() *Graph {
	return &Graph{
		Fluids:   map[string]*fluid.Model{},
		Charts:   map[string]chart.Chart{},
		Trains:   map[string]train.Train{},
		Turbines: map[string]turbine.Turbine{},
	}
}

func (g *Graph) Fluid(name string) (*fluid.Model, error) {
	m, ok := g.Fluids[name]
	if !ok {
		return nil, chk.Err("model graph: fluid model %q not found", name)
	}
	return m, nil
}

func (g *Graph) Chart(name string) (chart.Chart, error) {
	c, ok := g.Charts[name]
	if !ok {
		return nil, chk.Err("model graph: chart %q not found", name)
	}
	return c, nil
}

func (g *Graph) Train(name string) (train.Train, error) {
	t, ok := g.Trains[name]
	if !ok {
		return nil, chk.Err("model graph: train %q not found", name)
	}
	return t, nil
}

func (g *Graph) Turbine(name string) (turbine.Turbine, error) {
	t, ok := g.Turbines[name]
	if !ok {
		return turbine.Turbine{}, chk.Err("model graph: turbine %q not found", name)
	}
	return t, nil
}
