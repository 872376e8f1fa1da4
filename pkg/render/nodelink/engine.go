package nodelink

import (
	"context"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/radialflow/pkg/cluster"
	"github.com/matzehuels/radialflow/pkg/errors"
)

// Engine lays out cluster graphs with Graphviz. It implements
// [cluster.Engine] for every algorithm except [cluster.Random].
type Engine struct {
	Width, Height float64
}

// NewEngine returns an engine fitting layouts into a width x height viewport.
func NewEngine(width, height float64) *Engine {
	return &Engine{Width: width, Height: height}
}

// Run implements cluster.Engine.
func (e *Engine) Run(ctx context.Context, elements []cluster.Element, a cluster.Algorithm) error {
	cfg := cluster.ConfigFor(a)
	if cfg.Engine == "" {
		return errors.New(errors.ErrCodeInvalidAlgorithm, "graphviz cannot run %s", a)
	}
	if err := errors.ValidateViewport(e.Width, e.Height); err != nil {
		return err
	}

	pos, err := Positions(ctx, ToDOT(elements, Options{Algorithm: a}), cfg.Engine)
	if err != nil {
		return errors.Wrap(errors.ErrCodeLayoutEngine, err, "%s layout", a)
	}
	for i, el := range elements {
		if el.IsEdge() || el.IsCluster() {
			continue
		}
		if p, ok := pos[el.Data.ID]; ok {
			// Graphviz y grows upward.
			elements[i].Position = &cluster.Position{X: p.X, Y: -p.Y}
		}
	}
	cluster.Fit(elements, e.Width, e.Height, cfg.Padding)
	return nil
}

// Auto dispatches Random to a seeded [cluster.RandomEngine] and everything
// else to Graphviz.
type Auto struct {
	Graphviz *Engine
	Seed     uint64
}

// Run implements cluster.Engine.
func (a Auto) Run(ctx context.Context, elements []cluster.Element, alg cluster.Algorithm) error {
	if alg == cluster.Random {
		r := cluster.RandomEngine{Width: a.Graphviz.Width, Height: a.Graphviz.Height, Seed: a.Seed}
		return r.Run(ctx, elements, alg)
	}
	return a.Graphviz.Run(ctx, elements, alg)
}

var (
	nodeStmtRe = regexp.MustCompile(`(?m)^\s*("(?:[^"\\]|\\.)*"|[\w.]+)\s*\[((?:[^\]"]|"(?:[^"\\]|\\.)*")*)\]`)
	posAttrRe  = regexp.MustCompile(`\bpos="?(-?[0-9.eE+-]+),(-?[0-9.eE+-]+)!?"?`)
)

// Positions runs Graphviz over dot and returns the node centres it computed,
// in points with y growing upward.
func Positions(ctx context.Context, dot, engine string) (map[string]cluster.Position, error) {
	out, err := render(ctx, dot, engine, graphviz.Format("dot"))
	if err != nil {
		return nil, err
	}
	return parsePositions(out), nil
}

func parsePositions(out []byte) map[string]cluster.Position {
	pos := make(map[string]cluster.Position)
	for _, m := range nodeStmtRe.FindAllSubmatch(out, -1) {
		id := string(m[1])
		switch id {
		case "graph", "node", "edge":
			continue
		}
		if unq, err := strconv.Unquote(id); err == nil {
			id = unq
		}
		p := posAttrRe.FindSubmatch(m[2])
		if p == nil {
			continue
		}
		x, errX := strconv.ParseFloat(string(p[1]), 64)
		y, errY := strconv.ParseFloat(string(p[2]), 64)
		if errX != nil || errY != nil {
			continue
		}
		pos[id] = cluster.Position{X: x, Y: y}
	}
	return pos
}
