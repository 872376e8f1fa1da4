package cluster

import (
	"context"
	"math"
	"math/rand/v2"

	"github.com/matzehuels/radialflow/pkg/errors"
)

// Engine assigns positions to the nodes in elements. Implementations mutate
// Element.Position in place and never reorder, add or remove elements.
type Engine interface {
	Run(ctx context.Context, elements []Element, a Algorithm) error
}

// RandomEngine places nodes uniformly inside the padded viewport. It only
// implements [Random]; other algorithms are rejected.
type RandomEngine struct {
	Width, Height float64
	Seed          uint64
}

// Run implements Engine.
func (r RandomEngine) Run(ctx context.Context, elements []Element, a Algorithm) error {
	if a != Random {
		return errors.New(errors.ErrCodeInvalidAlgorithm, "random engine cannot run %s", a)
	}
	if err := errors.ValidateViewport(r.Width, r.Height); err != nil {
		return err
	}
	pad := ConfigFor(a).Padding
	w, h := math.Max(r.Width-2*pad, 0), math.Max(r.Height-2*pad, 0)
	rng := rand.New(rand.NewPCG(r.Seed, r.Seed^0x9e3779b97f4a7c15))
	for i := range elements {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !elements[i].IsNode() || elements[i].IsCluster() {
			continue
		}
		elements[i].Position = &Position{X: pad + rng.Float64()*w, Y: pad + rng.Float64()*h}
	}
	PlaceCompounds(elements)
	return nil
}

// Fit scales and translates node positions so their bounding box fills the
// viewport minus padding, keeping the aspect ratio. A graph with a single
// position is centred.
func Fit(elements []Element, width, height, padding float64) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	n := 0
	for _, e := range elements {
		if e.Position == nil || e.IsEdge() || e.IsCluster() {
			continue
		}
		minX, maxX = math.Min(minX, e.Position.X), math.Max(maxX, e.Position.X)
		minY, maxY = math.Min(minY, e.Position.Y), math.Max(maxY, e.Position.Y)
		n++
	}
	if n == 0 {
		return
	}

	bw, bh := maxX-minX, maxY-minY
	aw, ah := math.Max(width-2*padding, 0), math.Max(height-2*padding, 0)
	scale := 1.0
	switch {
	case bw > 0 && bh > 0:
		scale = math.Min(aw/bw, ah/bh)
	case bw > 0:
		scale = aw / bw
	case bh > 0:
		scale = ah / bh
	}
	cx, cy := (minX+maxX)/2, (minY+maxY)/2

	for i := range elements {
		p := elements[i].Position
		if p == nil || elements[i].IsEdge() || elements[i].IsCluster() {
			continue
		}
		elements[i].Position = &Position{
			X: width/2 + (p.X-cx)*scale,
			Y: height/2 + (p.Y-cy)*scale,
		}
	}
	PlaceCompounds(elements)
}

// PlaceCompounds positions every cluster node at the centroid of its placed
// members. Clusters without placed members keep no position.
func PlaceCompounds(elements []Element) {
	type acc struct {
		x, y float64
		n    int
	}
	sums := make(map[string]*acc)
	for _, e := range elements {
		if e.Position == nil || e.IsEdge() || e.IsCluster() || e.Data.Parent == "" {
			continue
		}
		a := sums[e.Data.Parent]
		if a == nil {
			a = &acc{}
			sums[e.Data.Parent] = a
		}
		a.x += e.Position.X
		a.y += e.Position.Y
		a.n++
	}
	for i, e := range elements {
		if !e.IsCluster() {
			continue
		}
		if a := sums[e.Data.ID]; a != nil {
			elements[i].Position = &Position{X: a.x / float64(a.n), Y: a.y / float64(a.n)}
		} else {
			elements[i].Position = nil
		}
	}
}
